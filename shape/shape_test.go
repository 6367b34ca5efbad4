package shape_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuliansilitra/TrueMapper/shape"
)

type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

func init() {
	shape.RegisterEnum(
		shape.EnumMember[color]{Name: "Red", Value: colorRed},
		shape.EnumMember[color]{Name: "Green", Value: colorGreen},
		shape.EnumMember[color]{Name: "Blue", Value: colorBlue},
	)
}

type address struct {
	City string
	zip  string //nolint:unused // exercises unexported member description
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want shape.Kind
	}{
		{"int", reflect.TypeOf(0), shape.Primitive},
		{"float", reflect.TypeOf(1.5), shape.Primitive},
		{"bool", reflect.TypeOf(true), shape.Primitive},
		{"string", reflect.TypeOf(""), shape.Text},
		{"time", reflect.TypeOf(time.Time{}), shape.Temporal},
		{"duration", reflect.TypeOf(time.Second), shape.Temporal},
		{"uuid", reflect.TypeOf(uuid.UUID{}), shape.Identifier},
		{"enum", reflect.TypeOf(colorRed), shape.Enum},
		{"slice", reflect.TypeOf([]int{}), shape.Container},
		{"array", reflect.TypeOf([3]int{}), shape.Container},
		{"map", reflect.TypeOf(map[string]int{}), shape.Container},
		{"chan", reflect.TypeOf(make(chan int)), shape.Container},
		{"struct", reflect.TypeOf(address{}), shape.Composite},
		{"pointer unwraps", reflect.TypeOf(&address{}), shape.Composite},
		{"interface", reflect.TypeOf((*error)(nil)).Elem(), shape.Dynamic},
		{"func", reflect.TypeOf(func() {}), shape.Invalid},
		{"nil", nil, shape.Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shape.Classify(tt.typ))
		})
	}
}

func TestKind_IsScalar(t *testing.T) {
	assert.True(t, shape.Primitive.IsScalar())
	assert.True(t, shape.Text.IsScalar())
	assert.True(t, shape.Enum.IsScalar())
	assert.True(t, shape.Temporal.IsScalar())
	assert.True(t, shape.Identifier.IsScalar())
	assert.False(t, shape.Container.IsScalar())
	assert.False(t, shape.Composite.IsScalar())
	assert.False(t, shape.Dynamic.IsScalar())
}

func TestIsIterable(t *testing.T) {
	assert.True(t, shape.IsIterable(reflect.TypeOf([]int{})))
	assert.True(t, shape.IsIterable(reflect.TypeOf([2]int{})))
	assert.True(t, shape.IsIterable(reflect.TypeOf(map[int]bool{})))
	assert.False(t, shape.IsIterable(reflect.TypeOf("text")))
	assert.False(t, shape.IsIterable(reflect.TypeOf(make(chan int))))
	assert.False(t, shape.IsIterable(reflect.TypeOf(uuid.UUID{})), "uuid is an array but never a sequence")
	assert.False(t, shape.IsIterable(reflect.TypeOf(address{})))
}

func TestDescribe_Composite(t *testing.T) {
	d := shape.Describe(reflect.TypeOf(address{}))
	require.Equal(t, shape.Composite, d.Kind)
	require.Len(t, d.Members, 2)

	city, ok := d.Member("City")
	require.True(t, ok)
	assert.True(t, city.CanRead)
	assert.True(t, city.CanWrite)
	assert.Equal(t, reflect.TypeOf(""), city.Type)

	zip, ok := d.Member("zip")
	require.True(t, ok)
	assert.False(t, zip.CanRead, "unexported members are not readable")
	assert.False(t, zip.CanWrite)

	_, ok = d.Member("Country")
	assert.False(t, ok)
}

func TestDescribe_Container(t *testing.T) {
	d := shape.Describe(reflect.TypeOf(map[string][]int{}))
	require.Equal(t, shape.Container, d.Kind)
	assert.Equal(t, reflect.TypeOf(""), d.Key)
	assert.Equal(t, reflect.TypeOf([]int{}), d.Elem)

	d = shape.Describe(reflect.TypeOf([]address{}))
	assert.Equal(t, reflect.TypeOf(address{}), d.Elem)
}

func TestDescribe_Cached(t *testing.T) {
	typ := reflect.TypeOf(address{})
	first := shape.Describe(typ)
	second := shape.Describe(typ)
	assert.Same(t, first, second, "descriptors must be computed once per type")
}

func TestEnumRegistry(t *testing.T) {
	typ := reflect.TypeOf(colorRed)

	require.True(t, shape.IsEnum(typ))
	assert.False(t, shape.IsEnum(reflect.TypeOf(0)))

	v, ok := shape.EnumValue(typ, "green")
	require.True(t, ok, "name lookup is case-insensitive")
	assert.Equal(t, int64(colorGreen), v)

	_, ok = shape.EnumValue(typ, "magenta")
	assert.False(t, ok)

	name, ok := shape.EnumName(typ, int64(colorBlue))
	require.True(t, ok)
	assert.Equal(t, "Blue", name)

	first, ok := shape.EnumFirst(typ)
	require.True(t, ok)
	assert.Equal(t, int64(colorRed), first)

	assert.Equal(t, []string{"Red", "Green", "Blue"}, shape.EnumNames(typ))
}

func TestRegisterEnum_Panics(t *testing.T) {
	assert.Panics(t, func() {
		shape.RegisterEnum[int](shape.EnumMember[int]{Name: "One", Value: 1})
	}, "unnamed builtin types are not enumerations")

	assert.Panics(t, func() {
		shape.RegisterEnum[color]()
	}, "an enumeration needs at least one member")
}
