package shape

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Kind is the structural category of a type, as seen by the mapper.
type Kind int

const (
	// Invalid marks types the mapper cannot traverse (func, unsafe pointer).
	Invalid Kind = iota
	// Primitive covers the boolean, integer and floating-point kinds.
	Primitive
	// Text covers string kinds.
	Text
	// Enum covers named integer types registered with RegisterEnum.
	Enum
	// Temporal covers time.Time and time.Duration.
	Temporal
	// Identifier covers uuid.UUID.
	Identifier
	// Container covers slices, arrays, maps and channels.
	Container
	// Composite covers structs, mapped by recursing member by member.
	Composite
	// Dynamic covers interface types whose shape is known only at runtime.
	Dynamic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Text:
		return "text"
	case Enum:
		return "enum"
	case Temporal:
		return "temporal"
	case Identifier:
		return "identifier"
	case Container:
		return "container"
	case Composite:
		return "composite"
	case Dynamic:
		return "dynamic"
	default:
		return "invalid"
	}
}

// IsScalar reports whether values of this kind are converted in one step
// rather than traversed.
func (k Kind) IsScalar() bool {
	switch k {
	case Primitive, Text, Enum, Temporal, Identifier:
		return true
	default:
		return false
	}
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
)

// Classify returns the structural category of t. Pointers are transparent:
// a *T classifies as T. The function is pure; registered enums are consulted
// through the read-only registry view.
func Classify(t reflect.Type) Kind {
	if t == nil {
		return Invalid
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// Named scalar types checked before raw kinds: time.Duration is an
	// int64 and uuid.UUID is a [16]byte.
	switch t {
	case timeType, durationType:
		return Temporal
	case uuidType:
		return Identifier
	}
	if IsEnum(t) {
		return Enum
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Primitive
	case reflect.String:
		return Text
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return Container
	case reflect.Struct:
		return Composite
	case reflect.Interface:
		return Dynamic
	default:
		return Invalid
	}
}

// IsIterable reports whether values of t can be read as an element sequence
// without consuming them. Strings are iterable in Go but never treated as
// sequences by the mapper; channels are excluded because receiving drains
// them.
func IsIterable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == uuidType {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}
