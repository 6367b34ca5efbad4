package convert

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iuliansilitra/TrueMapper/shape"
)

// Boolean token sets, checked case-insensitively before standard boolean
// parsing.
var boolTokens = map[string]bool{
	"true": true, "yes": true, "y": true, "1": true, "on": true,
	"false": false, "no": false, "n": false, "0": false, "off": false,
}

// toBool derives a boolean from text (token sets, then strconv.ParseBool)
// or from numbers (nonzero is true). Unrecognized text is false.
func toBool(v reflect.Value, sk shape.Kind) bool {
	switch sk {
	case shape.Text:
		s := strings.ToLower(strings.TrimSpace(v.String()))
		if b, ok := boolTokens[s]; ok {
			return b
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		return b
	case shape.Primitive, shape.Enum:
		switch {
		case v.Kind() == reflect.Bool:
			return v.Bool()
		case v.CanInt():
			return v.Int() != 0
		case v.CanUint():
			return v.Uint() != 0
		case v.CanFloat():
			return v.Float() != 0
		}
	}
	return false
}

// toNumeric converts v into the numeric target. Failures of any sort
// (unparsable text, NaN, out-of-range values) yield the target's zero.
func toNumeric(v reflect.Value, sk shape.Kind, target reflect.Type) reflect.Value {
	out, _ := toNumericChecked(v, sk, target)
	return out
}

// toNumericChecked additionally reports whether the conversion succeeded,
// for callers that substitute a different fallback than zero.
func toNumericChecked(v reflect.Value, sk shape.Kind, target reflect.Type) (reflect.Value, bool) {
	// Temporal sources use the explicit per-pair rules: a Duration is
	// nanoseconds to integer targets and seconds to floating targets; a
	// Time is Unix seconds to integer targets.
	if sk == shape.Temporal {
		switch {
		case v.Type() == durationType && isIntegerKind(target.Kind()):
			return decimalInto(decimal.NewFromInt(v.Int()), target)
		case v.Type() == durationType && isFloatKind(target.Kind()):
			return decimalInto(decimal.NewFromFloat(time.Duration(v.Int()).Seconds()), target)
		case v.Type() == timeType && isIntegerKind(target.Kind()):
			return decimalInto(decimal.NewFromInt(v.Interface().(time.Time).Unix()), target)
		}
		return reflect.Zero(target), false
	}

	d, ok := toDecimal(v)
	if !ok {
		return reflect.Zero(target), false
	}
	return decimalInto(d, target)
}

// toDecimal lifts a scalar into the wide decimal intermediate.
func toDecimal(v reflect.Value) (decimal.Decimal, bool) {
	switch {
	case v.Kind() == reflect.Bool:
		if v.Bool() {
			return decimal.NewFromInt(1), true
		}
		return decimal.Decimal{}, true
	case v.CanInt():
		return decimal.NewFromInt(v.Int()), true
	case v.CanUint():
		return decimal.NewFromUint64(v.Uint()), true
	case v.CanFloat():
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(f), true
	case v.Kind() == reflect.String:
		d, err := decimal.NewFromString(strings.TrimSpace(v.String()))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// decimalInto narrows the wide intermediate into the target's domain.
// Integer targets truncate toward zero; any value outside the target's
// range yields the target's zero, never a wrapped or truncated bit pattern.
func decimalInto(d decimal.Decimal, target reflect.Type) (reflect.Value, bool) {
	out := reflect.New(target).Elem()
	k := target.Kind()

	switch {
	case isSignedKind(k):
		bi := d.Truncate(0).BigInt()
		if !bi.IsInt64() {
			return out, false
		}
		n := bi.Int64()
		lo, hi := signedRange(target.Bits())
		if n < lo || n > hi {
			return out, false
		}
		out.SetInt(n)
	case isUnsignedKind(k):
		bi := d.Truncate(0).BigInt()
		if bi.Sign() < 0 || !bi.IsUint64() {
			return out, false
		}
		n := bi.Uint64()
		if n > unsignedMax(target.Bits()) {
			return out, false
		}
		out.SetUint(n)
	case k == reflect.Float32:
		f, _ := d.Float64()
		if math.Abs(f) > math.MaxFloat32 {
			return out, false
		}
		out.SetFloat(f)
	case k == reflect.Float64:
		f, _ := d.Float64()
		if math.IsInf(f, 0) {
			return out, false
		}
		out.SetFloat(f)
	default:
		return out, false
	}
	return out, true
}

func isIntegerKind(k reflect.Kind) bool {
	return isSignedKind(k) || isUnsignedKind(k)
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func signedRange(bits int) (int64, int64) {
	if bits == 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi := int64(1)<<(bits-1) - 1
	return -hi - 1, hi
}

func unsignedMax(bits int) uint64 {
	if bits == 64 {
		return math.MaxUint64
	}
	return uint64(1)<<bits - 1
}
