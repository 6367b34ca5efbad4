// Package collection rebuilds concrete containers from ordered element
// sequences. Elements arrive already converted to the container's element
// type; this package only decides how to materialize the target shape and
// in which order to insert.
package collection

import (
	"reflect"

	truemapper "github.com/iuliansilitra/TrueMapper"
)

// Recognized insertion method names, in lookup order. A method qualifies
// when it takes exactly one parameter assignable from the element type.
var (
	lifoMethod = "Push"
	fifoMethod = "Enqueue"
	addMethods = []string{"Add", "Append", "PushBack", "Insert"}
)

// Rebuild constructs a container of the target type holding the given
// elements in order. Absent elements are preserved as zero entries at their
// position, not dropped.
//
// Shapes are recognized in this order: arrays (assign by index), slices
// (append in order), set-like maps (insert as keys), channels (buffered,
// sent in order), named types with a Push method (inserted in reverse so
// removal yields input order), an Enqueue method (input order), or one of
// the add-like methods. Interface targets receive a plain []any. A target
// matching none of these returns ErrUnsupportedShape, the only failure this
// function can report.
func Rebuild(target reflect.Type, elems []reflect.Value) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, truemapper.ErrUnsupportedShape
	}

	// Pointer targets rebuild the element shape behind a fresh pointer.
	if target.Kind() == reflect.Pointer {
		built, err := Rebuild(target.Elem(), elems)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(target.Elem())
		p.Elem().Set(built)
		return p, nil
	}

	switch target.Kind() {
	case reflect.Array:
		return rebuildArray(target, elems), nil
	case reflect.Slice:
		return rebuildSlice(target, elems), nil
	case reflect.Map:
		if !isSetLike(target) {
			return reflect.Value{}, truemapper.ErrUnsupportedShape
		}
		return rebuildSet(target, elems), nil
	case reflect.Chan:
		return rebuildChan(target, elems), nil
	case reflect.Interface:
		if target.NumMethod() != 0 {
			return reflect.Value{}, truemapper.ErrUnsupportedShape
		}
		return rebuildAnySlice(elems), nil
	case reflect.Struct:
		return rebuildByMethod(target, elems)
	default:
		return reflect.Value{}, truemapper.ErrUnsupportedShape
	}
}

// ElementType reports the element type a container shape accepts, so
// callers can convert elements before handing them to Rebuild. The second
// result is false for shapes with no single element type, such as empty
// interfaces and unsupported targets.
func ElementType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Chan:
		return t.Elem(), true
	case reflect.Map:
		if isSetLike(t) {
			return t.Key(), true
		}
		return nil, false
	case reflect.Struct:
		holder := reflect.New(t)
		names := append([]string{lifoMethod, fifoMethod}, addMethods...)
		for _, name := range names {
			if m, ok := insertionMethod(holder, name); ok {
				return m.Type().In(0), true
			}
		}
	}
	return nil, false
}

// SetLike reports whether a map type acts as a set and therefore counts as
// a sequence shape.
func SetLike(t reflect.Type) bool {
	return t.Kind() == reflect.Map && isSetLike(t)
}

// isSetLike reports whether a map type acts as a set: element keys with a
// presence-only value.
func isSetLike(t reflect.Type) bool {
	switch t.Elem().Kind() {
	case reflect.Bool:
		return true
	case reflect.Struct:
		return t.Elem().NumField() == 0
	default:
		return false
	}
}

func rebuildArray(target reflect.Type, elems []reflect.Value) reflect.Value {
	out := reflect.New(target).Elem()
	n := target.Len()
	for i, e := range elems {
		if i >= n {
			break
		}
		setElem(out.Index(i), e)
	}
	return out
}

func rebuildSlice(target reflect.Type, elems []reflect.Value) reflect.Value {
	out := reflect.MakeSlice(target, 0, len(elems))
	for _, e := range elems {
		out = reflect.Append(out, coerce(e, target.Elem()))
	}
	return out
}

func rebuildSet(target reflect.Type, elems []reflect.Value) reflect.Value {
	out := reflect.MakeMapWithSize(target, len(elems))
	present := reflect.Zero(target.Elem())
	if target.Elem().Kind() == reflect.Bool {
		present = reflect.ValueOf(true).Convert(target.Elem())
	}
	// Duplicates collapse per the map's own key equality.
	for _, e := range elems {
		out.SetMapIndex(coerce(e, target.Key()), present)
	}
	return out
}

func rebuildChan(target reflect.Type, elems []reflect.Value) reflect.Value {
	bidi := target
	if target.ChanDir() != reflect.BothDir {
		bidi = reflect.ChanOf(reflect.BothDir, target.Elem())
	}
	out := reflect.MakeChan(bidi, len(elems))
	for _, e := range elems {
		out.Send(coerce(e, target.Elem()))
	}
	if bidi != target {
		return out.Convert(target)
	}
	return out
}

func rebuildAnySlice(elems []reflect.Value) reflect.Value {
	out := make([]any, len(elems))
	for i, e := range elems {
		if e.IsValid() && e.CanInterface() {
			out[i] = e.Interface()
		}
	}
	return reflect.ValueOf(out)
}

// rebuildByMethod covers named composite containers via their insertion
// methods: Push gives last-in-first-out semantics so elements are inserted
// in reverse, Enqueue and the generic add-like methods preserve input
// order.
func rebuildByMethod(target reflect.Type, elems []reflect.Value) (reflect.Value, error) {
	holder := reflect.New(target)

	if m, ok := insertionMethod(holder, lifoMethod); ok {
		for i := len(elems) - 1; i >= 0; i-- {
			m.Call([]reflect.Value{coerce(elems[i], m.Type().In(0))})
		}
		return holder.Elem(), nil
	}

	names := append([]string{fifoMethod}, addMethods...)
	for _, name := range names {
		m, ok := insertionMethod(holder, name)
		if !ok {
			continue
		}
		for _, e := range elems {
			m.Call([]reflect.Value{coerce(e, m.Type().In(0))})
		}
		return holder.Elem(), nil
	}

	return reflect.Value{}, truemapper.ErrUnsupportedShape
}

// insertionMethod finds a single-parameter method with the given name on
// *T, covering both value and pointer receivers.
func insertionMethod(holder reflect.Value, name string) (reflect.Value, bool) {
	m := holder.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	t := m.Type()
	if t.NumIn() != 1 || t.IsVariadic() {
		return reflect.Value{}, false
	}
	return m, true
}

// setElem assigns e into the addressable slot, substituting the slot's zero
// value for absent or incompatible elements.
func setElem(slot reflect.Value, e reflect.Value) {
	slot.Set(coerce(e, slot.Type()))
}

// coerce makes e safe to place into a container slot of type t. Elements
// are expected to arrive pre-converted; absent or foreign values degrade to
// the zero entry rather than panicking, in line with the best-effort
// policy.
func coerce(e reflect.Value, t reflect.Type) reflect.Value {
	if !e.IsValid() {
		return reflect.Zero(t)
	}
	if e.Type().AssignableTo(t) {
		return e
	}
	return reflect.Zero(t)
}
