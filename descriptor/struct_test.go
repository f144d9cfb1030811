package descriptor_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-binder/descriptor"
)

type profile struct {
	Name    string
	Age     int
	Email   *string
	ID      string `bind:"id,readonly"`
	Alias   string `bind:"nickname"`
	secret  string `bind:"secret"` //nolint:unused // unexported fields must be skipped
	Skipped string `bind:"-"`
}

func profileDescriptor(t *testing.T, callables ...descriptor.Callable) *descriptor.StructDescriptor {
	t.Helper()

	d, err := descriptor.ForStruct(reflect.TypeOf(profile{}), callables...)
	require.NoError(t, err)

	return d
}

func TestForStructProperties(t *testing.T) {
	d := profileDescriptor(t)

	assert.Equal(t, reflect.TypeOf(profile{}), d.TargetType())

	props := d.Properties()
	require.Len(t, props, 5)

	byName := map[string]descriptor.Property{}
	for _, p := range props {
		byName[p.Name] = p
	}

	assert.Contains(t, byName, "Name")
	assert.Contains(t, byName, "nickname", "tag renames the field")
	assert.NotContains(t, byName, "Alias")
	assert.NotContains(t, byName, "secret", "unexported fields are invisible")
	assert.NotContains(t, byName, "Skipped")

	assert.True(t, byName["Name"].Mutable)
	assert.False(t, byName["id"].Mutable, "readonly option")
	assert.True(t, byName["Email"].Nullable)
	assert.False(t, byName["Age"].Nullable)
}

func TestForStructAcceptsPointerType(t *testing.T) {
	d, err := descriptor.ForStruct(reflect.TypeOf(&profile{}))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(profile{}), d.TargetType())
}

func TestForStructRejectsNonStruct(t *testing.T) {
	_, err := descriptor.ForStruct(reflect.TypeOf(42))
	assert.ErrorIs(t, err, descriptor.ErrNotAStruct)
}

func TestStructDescriptorOwns(t *testing.T) {
	ctor, err := descriptor.NewFuncCallable(newAccount, "owner", "balance")
	require.NoError(t, err)

	factory, err := descriptor.NewFactoryCallable(accountFactory{}, "Open", "owner")
	require.NoError(t, err)

	stray, err := descriptor.NewFuncCallable(newCheckedAccount, "owner", "balance")
	require.NoError(t, err)

	d, err := descriptor.ForStruct(reflect.TypeOf(account{}), ctor, factory)
	require.NoError(t, err)

	assert.Equal(t, []descriptor.Callable{ctor}, d.Constructors())
	assert.Equal(t, []descriptor.Callable{factory}, d.Factories())

	assert.True(t, d.Owns(ctor))
	assert.True(t, d.Owns(factory))
	assert.False(t, d.Owns(stray))
}

func TestStructDescriptorSet(t *testing.T) {
	d := profileDescriptor(t)

	p := &profile{}

	require.NoError(t, d.Set(p, "Name", "alice"))
	assert.Equal(t, "alice", p.Name)

	require.NoError(t, d.Set(p, "nickname", "al"))
	assert.Equal(t, "al", p.Alias)

	// Lossless conversion on assignment.
	require.NoError(t, d.Set(p, "Age", int32(30)))
	assert.Equal(t, 30, p.Age)

	// Nil clears nullable fields.
	email := "a@example.com"
	p.Email = &email
	require.NoError(t, d.Set(p, "Email", nil))
	assert.Nil(t, p.Email)
}

func TestStructDescriptorSetFailures(t *testing.T) {
	d := profileDescriptor(t)

	p := &profile{}

	assert.ErrorIs(t, d.Set(p, "unknown", 1), descriptor.ErrNoSuchProperty)
	assert.ErrorIs(t, d.Set(p, "id", "x"), descriptor.ErrPropertyReadOnly)
	assert.ErrorIs(t, d.Set(p, "Name", struct{}{}), descriptor.ErrPropertyType)
	assert.ErrorIs(t, d.Set(profile{}, "Name", "x"), descriptor.ErrNotAPointer)
	assert.ErrorIs(t, d.Set((*profile)(nil), "Name", "x"), descriptor.ErrNotAPointer)
}
