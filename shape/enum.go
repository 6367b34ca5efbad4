package shape

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// EnumMember pairs one enumeration member name with its value.
type EnumMember[E any] struct {
	Name  string
	Value E
}

// enumInfo holds the registered members of one enumeration type. Member
// order is registration order; the first member doubles as the fallback
// value for unresolvable conversions.
type enumInfo struct {
	names   []string
	byName  map[string]int64 // lower-cased name -> underlying value
	byValue map[int64]string // underlying value -> first registered name
}

var (
	enumMu    sync.RWMutex
	enumInfos = map[reflect.Type]*enumInfo{}
)

// RegisterEnum registers the members of the enumeration type E, in
// declaration order. E must be a defined type with an integer underlying
// kind and at least one member must be given; violations panic, as
// registration happens at program start and a silently unusable enum would
// be much harder to diagnose.
//
// Registering the same type again replaces its members, so repeated
// registration is idempotent rather than accumulating.
func RegisterEnum[E any](members ...EnumMember[E]) {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if t.PkgPath() == "" || !isIntegerKind(t.Kind()) {
		panic(fmt.Sprintf("shape: RegisterEnum requires a defined integer type, got %v", t))
	}
	if len(members) == 0 {
		panic(fmt.Sprintf("shape: RegisterEnum of %v requires at least one member", t))
	}

	info := &enumInfo{
		byName:  make(map[string]int64, len(members)),
		byValue: make(map[int64]string, len(members)),
	}
	for _, m := range members {
		if m.Name == "" {
			panic(fmt.Sprintf("shape: RegisterEnum of %v has a member with an empty name", t))
		}
		v := underlyingValue(reflect.ValueOf(m.Value))
		info.names = append(info.names, m.Name)
		info.byName[strings.ToLower(m.Name)] = v
		if _, ok := info.byValue[v]; !ok {
			info.byValue[v] = m.Name
		}
	}

	enumMu.Lock()
	enumInfos[t] = info
	enumMu.Unlock()
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func underlyingValue(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}
	return int64(v.Uint())
}

// IsEnum reports whether t has been registered as an enumeration.
func IsEnum(t reflect.Type) bool {
	enumMu.RLock()
	_, ok := enumInfos[t]
	enumMu.RUnlock()
	return ok
}

// EnumValue resolves a member name, case-insensitively, to the underlying
// value of the enumeration t.
func EnumValue(t reflect.Type, name string) (int64, bool) {
	enumMu.RLock()
	info, ok := enumInfos[t]
	enumMu.RUnlock()
	if !ok {
		return 0, false
	}
	v, ok := info.byName[strings.ToLower(name)]
	return v, ok
}

// EnumName resolves an underlying value to its registered member name.
func EnumName(t reflect.Type, value int64) (string, bool) {
	enumMu.RLock()
	info, ok := enumInfos[t]
	enumMu.RUnlock()
	if !ok {
		return "", false
	}
	n, ok := info.byValue[value]
	return n, ok
}

// EnumFirst returns the underlying value of the first registered member of
// t, the documented fallback for unresolvable enum conversions.
func EnumFirst(t reflect.Type) (int64, bool) {
	enumMu.RLock()
	info, ok := enumInfos[t]
	enumMu.RUnlock()
	if !ok || len(info.names) == 0 {
		return 0, false
	}
	return info.byName[strings.ToLower(info.names[0])], true
}

// EnumNames returns the registered member names of t in declaration order.
func EnumNames(t reflect.Type) []string {
	enumMu.RLock()
	info, ok := enumInfos[t]
	enumMu.RUnlock()
	if !ok {
		return nil
	}
	out := make([]string, len(info.names))
	copy(out, info.names)
	return out
}
