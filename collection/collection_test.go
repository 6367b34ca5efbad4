package collection_test

import (
	"container/list"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	truemapper "github.com/iuliansilitra/TrueMapper"
	"github.com/iuliansilitra/TrueMapper/collection"
)

// intStack is a last-in-first-out container used by the shape-fidelity
// tests.
type intStack struct {
	items []int
}

func (s *intStack) Push(v int) { s.items = append(s.items, v) }

func (s *intStack) Pop() (int, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// intQueue is a first-in-first-out container.
type intQueue struct {
	items []int
}

func (q *intQueue) Enqueue(v int) { q.items = append(q.items, v) }

func (q *intQueue) Dequeue() (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

func ints(vals ...int) []reflect.Value {
	out := make([]reflect.Value, len(vals))
	for i, v := range vals {
		out[i] = reflect.ValueOf(v)
	}
	return out
}

func rebuild[T any](t *testing.T, elems []reflect.Value) T {
	t.Helper()
	out, err := collection.Rebuild(reflect.TypeOf((*T)(nil)).Elem(), elems)
	require.NoError(t, err)
	return out.Interface().(T)
}

func TestRebuild_Slice(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, rebuild[[]int](t, ints(1, 2, 3)))
	assert.Empty(t, rebuild[[]int](t, nil))
}

func TestRebuild_Array(t *testing.T) {
	assert.Equal(t, [3]int{1, 2, 3}, rebuild[[3]int](t, ints(1, 2, 3)))

	// Short input leaves zero tail slots; surplus input is dropped.
	assert.Equal(t, [3]int{1, 0, 0}, rebuild[[3]int](t, ints(1)))
	assert.Equal(t, [2]int{1, 2}, rebuild[[2]int](t, ints(1, 2, 3)))
}

func TestRebuild_Set(t *testing.T) {
	set := rebuild[map[int]struct{}](t, ints(1, 1, 2))
	assert.Len(t, set, 2, "duplicates collapse per the map's key equality")
	assert.Contains(t, set, 1)
	assert.Contains(t, set, 2)

	boolSet := rebuild[map[int]bool](t, ints(4))
	assert.True(t, boolSet[4])
}

func TestRebuild_Stack(t *testing.T) {
	s := rebuild[intStack](t, ints(1, 2, 3))

	// Popping yields the original input order.
	for _, want := range []int{1, 2, 3} {
		got, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestRebuild_Queue(t *testing.T) {
	q := rebuild[intQueue](t, ints(1, 2, 3))

	// Dequeuing yields the original input order.
	for _, want := range []int{1, 2, 3} {
		got, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestRebuild_Channel(t *testing.T) {
	ch := rebuild[chan int](t, ints(1, 2, 3))
	require.Len(t, ch, 3)

	for _, want := range []int{1, 2, 3} {
		assert.Equal(t, want, <-ch)
	}

	recv := rebuild[<-chan int](t, ints(7))
	assert.Equal(t, 7, <-recv)
}

func TestRebuild_List(t *testing.T) {
	// container/list qualifies through its PushBack method.
	elems := []reflect.Value{reflect.ValueOf(any(1)), reflect.ValueOf(any(2))}
	out, err := collection.Rebuild(reflect.TypeOf(list.List{}), elems)
	require.NoError(t, err)

	l := out.Interface().(list.List)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.Front().Value)
	assert.Equal(t, 2, l.Back().Value)
}

func TestRebuild_AnyFallback(t *testing.T) {
	got := rebuild[any](t, ints(1, 2))
	assert.Equal(t, []any{1, 2}, got)
}

func TestRebuild_PointerTarget(t *testing.T) {
	s := rebuild[*intStack](t, ints(5))
	got, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestRebuild_NilElementsPreserved(t *testing.T) {
	elems := []reflect.Value{
		reflect.ValueOf(ptr(1)),
		reflect.Zero(reflect.TypeOf((**int)(nil)).Elem()),
		reflect.ValueOf(ptr(3)),
	}
	out := rebuild[[]*int](t, elems)

	require.Len(t, out, 3)
	assert.Equal(t, 1, *out[0])
	assert.Nil(t, out[1], "absent elements keep their position")
	assert.Equal(t, 3, *out[2])
}

func TestRebuild_UnsupportedShape(t *testing.T) {
	_, err := collection.Rebuild(reflect.TypeOf((*map[string]int)(nil)).Elem(), ints(1))
	assert.ErrorIs(t, err, truemapper.ErrUnsupportedShape, "a value-carrying map is not a sequence shape")

	_, err = collection.Rebuild(reflect.TypeOf((*struct{ X int })(nil)).Elem(), ints(1))
	assert.ErrorIs(t, err, truemapper.ErrUnsupportedShape)

	_, err = collection.Rebuild(reflect.TypeOf((*func())(nil)).Elem(), ints(1))
	assert.ErrorIs(t, err, truemapper.ErrUnsupportedShape)
}

func ptr[T any](v T) *T { return &v }
