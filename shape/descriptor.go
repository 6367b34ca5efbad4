package shape

import (
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/iuliansilitra/TrueMapper/cache"
)

// Member describes one named member of a composite shape.
type Member struct {
	Name  string
	Index []int // reflect field index path
	Type  reflect.Type

	// Exported struct fields are both readable and writable; unexported
	// fields are neither but are still listed so callers can see the full
	// declaration.
	CanRead  bool
	CanWrite bool
}

// Descriptor is the cached structural description of one type. It is
// immutable once built: queried, never mutated.
type Descriptor struct {
	Type reflect.Type
	Kind Kind

	// Members lists a composite's members in declaration order.
	Members []Member
	byName  map[string]int
	folded  map[string]int

	// Elem and Key are set for containers (Key for maps only).
	Elem reflect.Type
	Key  reflect.Type
}

// Member looks up a member by name. An exact match wins; otherwise the
// lookup is case-insensitive, so wire-format keys like "userName" find the
// member UserName.
func (d *Descriptor) Member(name string) (Member, bool) {
	if i, ok := d.byName[name]; ok {
		return d.Members[i], true
	}
	if i, ok := d.folded[strings.ToLower(name)]; ok {
		return d.Members[i], true
	}
	return Member{}, false
}

var descriptorCache atomic.Pointer[cache.Cache[reflect.Type, *Descriptor]]

func init() {
	descriptorCache.Store(cache.New[reflect.Type, *Descriptor](1024))
}

// SetCacheCapacity replaces the descriptor cache with an empty one of the
// given capacity. Descriptors are recomputed on demand.
func SetCacheCapacity(n int) {
	descriptorCache.Store(cache.New[reflect.Type, *Descriptor](n))
}

// CacheStats returns statistics of the descriptor cache.
func CacheStats() cache.Stats {
	return descriptorCache.Load().Stats()
}

// Describe returns the Descriptor for t, computing and caching it on first
// use. Descriptors for pointer types describe the pointed-to type's
// structure under the pointer type's identity.
func Describe(t reflect.Type) *Descriptor {
	return descriptorCache.Load().GetOrCompute(t, func() *Descriptor {
		return describe(t)
	})
}

func describe(t reflect.Type) *Descriptor {
	d := &Descriptor{Type: t, Kind: Classify(t)}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	switch {
	case d.Kind == Composite:
		n := base.NumField()
		d.Members = make([]Member, 0, n)
		d.byName = make(map[string]int, n)
		d.folded = make(map[string]int, n)
		for i := 0; i < n; i++ {
			f := base.Field(i)
			exported := f.IsExported()
			d.byName[f.Name] = len(d.Members)
			d.folded[strings.ToLower(f.Name)] = len(d.Members)
			d.Members = append(d.Members, Member{
				Name:     f.Name,
				Index:    f.Index,
				Type:     f.Type,
				CanRead:  exported,
				CanWrite: exported,
			})
		}
	case d.Kind == Container:
		switch base.Kind() {
		case reflect.Map:
			d.Key = base.Key()
			d.Elem = base.Elem()
		case reflect.Slice, reflect.Array, reflect.Chan:
			d.Elem = base.Elem()
		}
	}

	return d
}
