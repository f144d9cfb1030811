package bind_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-binder/bind"
	"map-binder/descriptor"
	"map-binder/provider"
)

func TestExecuteBuildsInstance(t *testing.T) {
	desc, ctor := personTarget(t)
	binder := bind.New(bind.DefaultConfig())

	plan, err := binder.Plan(desc, ctor, provider.NewMapValueProvider(map[string]any{
		"name":    "alice",
		"age":     30,
		"email":   ptr("a@example.com"),
		"level":   7,
		"country": "NL",
	}))
	require.NoError(t, err)
	require.False(t, plan.HasErrors())

	out, err := binder.Execute(plan)
	require.NoError(t, err)

	got, ok := out.(*person)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, 30, got.Age)
	require.NotNil(t, got.Email)
	assert.Equal(t, "a@example.com", *got.Email)
	assert.Equal(t, int64(7), got.Level)
	assert.Equal(t, "NL", got.Country)
	assert.Empty(t, got.ID, "read-only properties stay untouched")
}

func TestExecuteRefusesPlansWithErrors(t *testing.T) {
	counting := &fakeCallable{
		name: "Counting",
		params: []descriptor.Parameter{
			{Name: "required", Kind: descriptor.KindValue, Type: reflect.TypeOf(0)},
		},
		result: &person{},
	}

	desc, err := descriptor.ForStruct(reflect.TypeOf(person{}), counting)
	require.NoError(t, err)

	binder := strictBinder()

	plan, err := binder.Plan(desc, counting, provider.NewMapValueProvider(map[string]any{}))
	require.NoError(t, err)
	require.True(t, plan.HasErrors())

	_, err = binder.Execute(plan)
	assert.ErrorIs(t, err, bind.ErrPlanNotExecutable)
	assert.Zero(t, counting.calls.Load(), "the callable must never be invoked")
}

func TestExecutePropagatesAndLogsCallFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := &fakeCallable{name: "Failing", err: boom}

	desc, err := descriptor.ForStruct(reflect.TypeOf(struct{}{}), failing)
	require.NoError(t, err)

	var logs bytes.Buffer

	cfg := bind.DefaultConfig()
	cfg.Logger = zerolog.New(&logs)
	binder := bind.New(cfg)

	plan, err := binder.Plan(desc, failing, provider.NewMapValueProvider(map[string]any{}))
	require.NoError(t, err)
	require.False(t, plan.HasErrors())

	_, err = binder.Execute(plan)
	require.ErrorIs(t, err, boom)

	assert.Contains(t, logs.String(), "constructor invocation failed")
	assert.Contains(t, logs.String(), "Failing")
}

func TestExecutePropagatesSetterFailure(t *testing.T) {
	// The callable returns a value instead of a pointer, so property
	// assignment cannot work and must surface as a construction failure.
	valueResult := &fakeCallable{name: "ByValue", result: person{}}

	desc, err := descriptor.ForStruct(reflect.TypeOf(person{}), valueResult)
	require.NoError(t, err)

	binder := bind.New(bind.DefaultConfig())

	plan, err := binder.Plan(desc, valueResult,
		provider.NewMapValueProvider(map[string]any{"country": "NL"}))
	require.NoError(t, err)
	require.False(t, plan.HasErrors())

	_, err = binder.Execute(plan)
	assert.ErrorIs(t, err, descriptor.ErrNotAPointer)
}

func TestDefaultBinderSharesCache(t *testing.T) {
	desc, ctor := personTarget(t)
	source := map[string]any{"name": "zed", "age": 1}

	first, err := bind.BuildPlan(desc, ctor, provider.NewMapValueProvider(source))
	require.NoError(t, err)

	second, err := bind.BuildPlan(desc, ctor, provider.NewMapValueProvider(source))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, bind.Default(), bind.Default())

	out, err := bind.Execute(first)
	require.NoError(t, err)
	assert.Equal(t, "zed", out.(*person).Name)
}
