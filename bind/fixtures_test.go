package bind_test

import (
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"map-binder/descriptor"
)

type person struct {
	Name    string  `bind:"name"`
	Age     int     `bind:"age"`
	Email   *string `bind:"email"`
	Level   int64   `bind:"level"`
	Country string  `bind:"country"`
	ID      string  `bind:"id,readonly"`
}

func newPerson(name string, age int) *person {
	return &person{Name: name, Age: age}
}

type contact struct {
	Name string  `bind:"name"`
	Nick *string `bind:"nick"`
}

func newContact(name string, nick *string) *contact {
	return &contact{Name: name, Nick: nick}
}

// personTarget wires the person struct with its constructor.
func personTarget(t *testing.T) (*descriptor.StructDescriptor, *descriptor.FuncCallable) {
	t.Helper()

	ctor, err := descriptor.NewFuncCallable(newPerson, "name", "age")
	require.NoError(t, err)

	desc, err := descriptor.ForStruct(reflect.TypeOf(person{}), ctor)
	require.NoError(t, err)

	return desc, ctor
}

func contactTarget(t *testing.T) (*descriptor.StructDescriptor, *descriptor.FuncCallable) {
	t.Helper()

	ctor, err := descriptor.NewFuncCallable(newContact, "name", "nick")
	require.NoError(t, err)

	desc, err := descriptor.ForStruct(reflect.TypeOf(contact{}), ctor)
	require.NoError(t, err)

	return desc, ctor
}

// fakeCallable lets tests shape parameter lists the reflect implementation
// cannot produce (extension receivers, unnamed parameters) and observe
// invocations.
type fakeCallable struct {
	name   string
	params []descriptor.Parameter
	recv   any
	result any
	err    error
	calls  atomic.Int32
}

func (c *fakeCallable) Name() string { return c.name }

func (c *fakeCallable) Parameters() []descriptor.Parameter { return c.params }

func (c *fakeCallable) Receiver() (any, bool) { return c.recv, c.recv != nil }

func (c *fakeCallable) Call([]descriptor.Argument) (any, error) {
	c.calls.Add(1)
	return c.result, c.err
}

func ptr[T any](v T) *T { return &v }
