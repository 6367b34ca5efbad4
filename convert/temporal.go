package convert

import (
	"reflect"
	"time"

	"github.com/iuliansilitra/TrueMapper/shape"
)

// timeLayouts are the layouts tried, in order, when parsing text into a
// time.Time. All are locale-invariant.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime parses text using the well-known invariant layouts.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toTemporal converts into time.Time or time.Duration using the explicit
// per-pair rules:
//
//	text    -> Time      RFC 3339 (with fallbacks above)
//	integer -> Time      Unix seconds, UTC
//	text    -> Duration  time.ParseDuration form ("2h45m")
//	integer -> Duration  nanoseconds
//	float   -> Duration  seconds
//
// Every other pairing yields the zero value.
func toTemporal(v reflect.Value, sk shape.Kind, target reflect.Type) reflect.Value {
	if target == durationType {
		return toDuration(v, sk)
	}

	switch sk {
	case shape.Text:
		if t, ok := parseTime(v.String()); ok {
			return reflect.ValueOf(t)
		}
	case shape.Primitive:
		if v.CanInt() {
			return reflect.ValueOf(time.Unix(v.Int(), 0).UTC())
		}
		if v.CanUint() {
			return reflect.ValueOf(time.Unix(int64(v.Uint()), 0).UTC())
		}
	}
	return reflect.Zero(target)
}

func toDuration(v reflect.Value, sk shape.Kind) reflect.Value {
	switch sk {
	case shape.Text:
		if d, err := time.ParseDuration(v.String()); err == nil {
			return reflect.ValueOf(d)
		}
	case shape.Primitive:
		switch {
		case v.CanInt():
			return reflect.ValueOf(time.Duration(v.Int()))
		case v.CanUint():
			return reflect.ValueOf(time.Duration(v.Uint()))
		case v.CanFloat():
			return reflect.ValueOf(time.Duration(v.Float() * float64(time.Second)))
		}
	}
	return reflect.Zero(durationType)
}
