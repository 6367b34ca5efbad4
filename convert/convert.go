package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iuliansilitra/TrueMapper/shape"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
)

// Convert converts v into the target type, best effort. The result is
// always valid and assignable to target; on any failure it is target's zero
// value. An absent source (invalid value or nil pointer) also yields the
// zero value, which for pointer targets is nil.
//
// When the source is directly assignable to the target the value is passed
// through as-is. For reference-like values (slices, maps, pointers held in
// interfaces) this aliases state with the source rather than deep-copying.
func Convert(v reflect.Value, target reflect.Type) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if isAbsent(v) {
		return reflect.Zero(target)
	}

	// Pointer targets receive the converted element behind a fresh pointer.
	if target.Kind() == reflect.Pointer {
		p := reflect.New(target.Elem())
		p.Elem().Set(Convert(v, target.Elem()))
		return p
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(target)
		}
		v = v.Elem()
	}

	if v.Type().AssignableTo(target) {
		return v
	}

	sk := shape.Classify(v.Type())
	switch shape.Classify(target) {
	case shape.Enum:
		return toEnum(v, sk, target)
	case shape.Text:
		return reflect.ValueOf(toText(v, sk)).Convert(target)
	case shape.Primitive:
		if target.Kind() == reflect.Bool {
			return reflect.ValueOf(toBool(v, sk)).Convert(target)
		}
		return toNumeric(v, sk, target)
	case shape.Temporal:
		return toTemporal(v, sk, target)
	case shape.Identifier:
		return toIdentifier(v, sk)
	}

	// Generic best-effort tail for everything unhandled above. Text
	// sources never take this path into numeric targets, so the rune
	// semantics of Go string conversions cannot leak in here.
	if v.Type().ConvertibleTo(target) {
		return v.Convert(target)
	}
	return reflect.Zero(target)
}

// ToString renders v in its locale-invariant text form; absent values
// render as the empty string.
func ToString(v reflect.Value) string {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if isAbsent(v) {
		return ""
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return toText(v, shape.Classify(v.Type()))
}

func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// toEnum resolves v into the registered enumeration target. Text parses
// case-insensitively by member name; numeric sources reinterpret their
// value as the enumeration's underlying value. Any failure yields the first
// registered member, never an error.
func toEnum(v reflect.Value, sk shape.Kind, target reflect.Type) reflect.Value {
	switch sk {
	case shape.Text:
		if n, ok := shape.EnumValue(target, v.String()); ok {
			return enumFromUnderlying(target, n)
		}
	case shape.Primitive, shape.Enum:
		if v.Kind() == reflect.Bool {
			break
		}
		// Reinterpret the numeric value as the enumeration's underlying
		// value; the target's own integer kind provides the range check.
		if out, ok := toNumericChecked(v, sk, target); ok {
			return out
		}
	}

	first, _ := shape.EnumFirst(target)
	return enumFromUnderlying(target, first)
}

func enumFromUnderlying(target reflect.Type, n int64) reflect.Value {
	out := reflect.New(target).Elem()
	if out.CanUint() {
		out.SetUint(uint64(n))
	} else {
		out.SetInt(n)
	}
	return out
}

// toText renders any scalar in its invariant form. Composite and container
// values fall back to fmt's default formatting.
func toText(v reflect.Value, sk shape.Kind) string {
	switch sk {
	case shape.Text:
		return v.String()
	case shape.Enum:
		if name, ok := shape.EnumName(v.Type(), underlyingValue(v)); ok {
			return name
		}
		return strconv.FormatInt(underlyingValue(v), 10)
	case shape.Temporal:
		if v.Type() == durationType {
			return time.Duration(v.Int()).String()
		}
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case shape.Identifier:
		return v.Interface().(uuid.UUID).String()
	case shape.Primitive:
		switch {
		case v.Kind() == reflect.Bool:
			return strconv.FormatBool(v.Bool())
		case v.CanInt():
			return strconv.FormatInt(v.Int(), 10)
		case v.CanUint():
			return strconv.FormatUint(v.Uint(), 10)
		case v.CanFloat():
			return strconv.FormatFloat(v.Float(), 'g', -1, 64)
		}
	}
	if v.CanInterface() {
		return fmt.Sprintf("%v", v.Interface())
	}
	return ""
}

func underlyingValue(v reflect.Value) int64 {
	if v.CanUint() {
		return int64(v.Uint())
	}
	return v.Int()
}

// toIdentifier parses text into a UUID; unparsable text and non-text
// sources yield the nil UUID.
func toIdentifier(v reflect.Value, sk shape.Kind) reflect.Value {
	if sk == shape.Text {
		if id, err := uuid.Parse(v.String()); err == nil {
			return reflect.ValueOf(id)
		}
	}
	return reflect.Zero(uuidType)
}
