package engine

import (
	"context"
	"errors"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	truemapper "github.com/iuliansilitra/TrueMapper"
	"github.com/iuliansilitra/TrueMapper/collection"
	"github.com/iuliansilitra/TrueMapper/convert"
	"github.com/iuliansilitra/TrueMapper/pkg/logger"
	"github.com/iuliansilitra/TrueMapper/profile"
	"github.com/iuliansilitra/TrueMapper/shape"
)

// mapRoot dispatches a top-level mapping based on the shapes of source and
// destination. Shape mismatches between scalars and collections are usage
// errors; everything below this level degrades instead of failing.
func (m *Mapper) mapRoot(ctx context.Context, sv, dv reflect.Value, tc *traversal) error {
	sv = unwrap(sv)

	// String-keyed maps are dynamic documents, not sequences, so they take
	// the composite path. Insertion-method structs and channels count as
	// container destinations even though they are not iterable sources.
	srcIterable := sv.IsValid() && shape.IsIterable(sv.Type())
	srcSeq := srcIterable && !stringKeyedMap(sv.Type())
	dstIterable := shape.IsIterable(dv.Type())
	_, dstInsertable := collection.ElementType(dv.Type())

	// A composite source fills an insertion-method struct member-wise, the
	// same as any other struct destination.
	structToInsertable := dstInsertable && !dstIterable &&
		sv.IsValid() && shape.Classify(sv.Type()) == shape.Composite &&
		shape.Classify(dv.Type()) == shape.Composite

	switch {
	case srcSeq && !dstIterable && !dstInsertable:
		return truemapper.ErrCollectionToScalar
	case sv.IsValid() && !srcIterable && (dstIterable || dstInsertable) && !structToInsertable:
		return truemapper.ErrScalarToCollection
	}

	m.mapValue(ctx, sv, dv, tc)
	return nil
}

// mapValue maps sv into the settable dv, choosing structure-wise,
// element-wise or scalar conversion by destination shape. It never fails;
// unresolvable values degrade to defaults and are counted as skipped.
func (m *Mapper) mapValue(ctx context.Context, sv, dv reflect.Value, tc *traversal) {
	sv = unwrap(sv)

	if !sv.IsValid() || absent(sv) {
		if m.opts.PropagateNulls {
			dv.Set(reflect.Zero(dv.Type()))
		} else {
			dv.Set(defaultConstructed(dv.Type()))
		}
		return
	}

	// Pointer destinations map into the pointed-at value, allocating
	// when needed.
	if dv.Kind() == reflect.Pointer {
		if dv.IsNil() {
			dv.Set(reflect.New(dv.Type().Elem()))
		}
		m.mapValue(ctx, sv, dv.Elem(), tc)
		return
	}

	switch shape.Classify(dv.Type()) {
	case shape.Composite:
		src := sv
		for src.Kind() == reflect.Pointer {
			src = src.Elem()
		}
		// Structs exposing an insertion method are collections in
		// disguise; an iterable source fills them element-wise.
		if shape.IsIterable(src.Type()) {
			if _, ok := collection.ElementType(dv.Type()); ok {
				m.mapContainer(ctx, sv, dv, tc)
				return
			}
		}
		if stringKeyedMap(src.Type()) {
			m.mapFromStringMap(ctx, src, dv, tc)
			return
		}
		if src.Kind() == reflect.Struct {
			m.mapStruct(ctx, src, dv, sv, tc)
			return
		}
		// Scalar into composite has no member correspondence.
		tc.skipped++
	case shape.Container:
		m.mapContainer(ctx, sv, dv, tc)
	case shape.Dynamic:
		// Non-empty interface destinations only accept sources that
		// implement them.
		if !sv.Type().AssignableTo(dv.Type()) {
			tc.skipped++
			return
		}
		dv.Set(sv)
	default:
		dv.Set(convert.Convert(sv, dv.Type()))
	}
}

// mapStruct maps a source struct member-wise into a destination struct.
// orig is the pre-deref source; when it is a pointer its address anchors
// cycle detection for the struct it points at.
func (m *Mapper) mapStruct(ctx context.Context, src, dv, orig reflect.Value, tc *traversal) {
	if m.opts.DetectCycles {
		if id, ok := identity(orig); ok {
			if _, seen := tc.visiting[id]; seen {
				tc.cycles++
				m.debugCycle(orig.Type())
				return
			}
			tc.visiting[id] = struct{}{}
			defer delete(tc.visiting, id)
		}
	}

	if tc.depth >= m.opts.MaxDepth {
		tc.truncations++
		return
	}
	tc.depth++
	defer func() { tc.depth-- }()

	prof := m.store.Lookup(src.Type(), dv.Type())
	handled := map[string]struct{}{}

	if prof != nil {
		m.applyMemberRules(prof, src, dv, handled, tc)
		m.applyConditionals(prof, src, dv, tc)
	}

	if ctx != nil && ctx.Err() != nil {
		return
	}

	m.copyMembers(ctx, prof, src, dv, handled, tc)

	if prof != nil {
		m.applyTransforms(prof, dv, tc)
	}
}

func (m *Mapper) applyMemberRules(prof *profile.Profile, src, dv reflect.Value, handled map[string]struct{}, tc *traversal) {
	dd := shape.Describe(dv.Type())
	for _, rule := range prof.MemberRules() {
		dm, ok := dd.Member(rule.Target)
		if !ok || !dm.CanWrite {
			continue
		}
		handled[rule.Target] = struct{}{}
		func() {
			defer m.recoverSkip(tc, "member rule", rule.Target)
			out := rule.Compute(src.Interface())
			dv.FieldByIndex(dm.Index).Set(convert.Convert(reflect.ValueOf(out), dm.Type))
		}()
	}
}

func (m *Mapper) applyConditionals(prof *profile.Profile, src, dv reflect.Value, tc *traversal) {
	if !dv.CanAddr() {
		return
	}
	dst := dv.Addr().Interface()
	for _, cond := range prof.Conditionals() {
		func() {
			defer m.recoverSkip(tc, "conditional", dv.Type().String())
			if cond.When(src.Interface()) {
				cond.Then(src.Interface(), dst)
			} else if cond.Otherwise != nil {
				cond.Otherwise(src.Interface(), dst)
			}
		}()
	}
}

func (m *Mapper) copyMembers(ctx context.Context, prof *profile.Profile, src, dv reflect.Value, handled map[string]struct{}, tc *traversal) {
	sd := shape.Describe(src.Type())
	dd := shape.Describe(dv.Type())

	for _, dm := range dd.Members {
		if !dm.CanWrite {
			continue
		}
		if _, ok := handled[dm.Name]; ok {
			continue
		}
		if prof != nil && prof.IsIgnored(dm.Name) {
			continue
		}
		sm, ok := sd.Member(dm.Name)
		if !ok || !sm.CanRead {
			continue
		}
		m.copyMember(ctx, src.FieldByIndex(sm.Index), dv.FieldByIndex(dm.Index), dm.Name, tc)
	}
}

// copyMember maps one member value, containing any panic to a skip of that
// member alone.
func (m *Mapper) copyMember(ctx context.Context, sv, dv reflect.Value, name string, tc *traversal) {
	defer m.recoverSkip(tc, "member", name)
	m.mapValue(ctx, sv, dv, tc)
}

func (m *Mapper) applyTransforms(prof *profile.Profile, dv reflect.Value, tc *traversal) {
	if !dv.CanAddr() {
		return
	}
	for _, tr := range prof.Transforms() {
		func() {
			defer m.recoverSkip(tc, "transform", dv.Type().String())
			out := tr(dv.Addr().Interface())
			ov := reflect.ValueOf(out)
			if ov.IsValid() && ov.Kind() == reflect.Pointer && !ov.IsNil() && ov.Type() == dv.Addr().Type() {
				dv.Set(ov.Elem())
			}
		}()
	}
}

// mapFromStringMap maps a string-keyed map member-wise into a composite,
// matching keys to member names case-insensitively via the descriptor.
func (m *Mapper) mapFromStringMap(ctx context.Context, src, dv reflect.Value, tc *traversal) {
	if m.opts.DetectCycles {
		if id, ok := identity(src); ok {
			if _, seen := tc.visiting[id]; seen {
				tc.cycles++
				m.debugCycle(src.Type())
				return
			}
			tc.visiting[id] = struct{}{}
			defer delete(tc.visiting, id)
		}
	}
	if tc.depth >= m.opts.MaxDepth {
		tc.truncations++
		return
	}
	tc.depth++
	defer func() { tc.depth-- }()

	dd := shape.Describe(dv.Type())
	it := src.MapRange()
	for it.Next() {
		dm, ok := dd.Member(it.Key().String())
		if !ok || !dm.CanWrite {
			continue
		}
		m.copyMember(ctx, it.Value(), dv.FieldByIndex(dm.Index), dm.Name, tc)
	}
}

// mapContainer rebuilds the destination container from the source's
// elements, mapping each element recursively. Absent source elements are
// preserved as absent in the destination.
func (m *Mapper) mapContainer(ctx context.Context, sv, dv reflect.Value, tc *traversal) {
	src := sv
	for src.Kind() == reflect.Pointer {
		src = src.Elem()
	}
	if !src.IsValid() {
		return
	}

	if m.opts.DetectCycles {
		if id, ok := identity(src); ok {
			if _, seen := tc.visiting[id]; seen {
				tc.cycles++
				m.debugCycle(src.Type())
				return
			}
			tc.visiting[id] = struct{}{}
			defer delete(tc.visiting, id)
		}
	}
	if tc.depth >= m.opts.MaxDepth {
		tc.truncations++
		return
	}
	tc.depth++
	defer func() { tc.depth-- }()

	// A map destination keeps the source map's keys and maps its values.
	if src.Kind() == reflect.Map && dv.Kind() == reflect.Map && !collection.SetLike(dv.Type()) {
		m.mapMap(ctx, src, dv, tc)
		return
	}

	elemType, ok := collection.ElementType(dv.Type())
	if !ok {
		tc.skipped++
		m.debugSkip("container", dv.Type().String(), sv)
		return
	}

	elems := m.mapElements(ctx, src, elemType, tc)
	if elems == nil {
		tc.skipped++
		m.debugSkip("container", dv.Type().String(), sv)
		return
	}

	out, err := collection.Rebuild(dv.Type(), elems)
	if err != nil {
		if errors.Is(err, truemapper.ErrUnsupportedShape) {
			panic(err)
		}
		tc.skipped++
		return
	}
	dv.Set(out)
}

// mapElements maps each source element into elemType, preserving order and
// absence. Set-like map sources contribute their keys. A non-iterable
// source yields nil.
func (m *Mapper) mapElements(ctx context.Context, src reflect.Value, elemType reflect.Type, tc *traversal) []reflect.Value {
	var out []reflect.Value

	mapOne := func(ev reflect.Value) reflect.Value {
		if absent(ev) {
			return reflect.Value{}
		}
		target := reflect.New(elemType).Elem()
		m.mapValue(ctx, ev, target, tc)
		return target
	}

	switch src.Kind() {
	case reflect.Slice, reflect.Array:
		out = make([]reflect.Value, 0, src.Len())
		for i := 0; i < src.Len(); i++ {
			out = append(out, mapOne(src.Index(i)))
		}
	case reflect.Map:
		if !collection.SetLike(src.Type()) {
			return nil
		}
		out = make([]reflect.Value, 0, src.Len())
		it := src.MapRange()
		for it.Next() {
			out = append(out, mapOne(it.Key()))
		}
	default:
		return nil
	}
	return out
}

// mapMap maps a map source into a map destination, converting keys and
// recursively mapping values.
func (m *Mapper) mapMap(ctx context.Context, src, dv reflect.Value, tc *traversal) {
	out := reflect.MakeMapWithSize(dv.Type(), src.Len())
	kt := dv.Type().Key()
	vt := dv.Type().Elem()

	it := src.MapRange()
	for it.Next() {
		key := unwrap(it.Key())
		if !key.IsValid() || !keyConvertible(key.Type(), kt) {
			tc.skipped++
			continue
		}
		v := reflect.New(vt).Elem()
		if !absent(it.Value()) {
			m.mapValue(ctx, it.Value(), v, tc)
		}
		out.SetMapIndex(convert.Convert(key, kt), v)
	}
	dv.Set(out)
}

// keyConvertible reports whether a source key type can be carried into the
// destination key type. Scalar-to-scalar pairs convert; anything else would
// collapse onto the destination's zero key and is skipped instead.
func keyConvertible(src, dst reflect.Type) bool {
	if src.AssignableTo(dst) {
		return true
	}
	return shape.Classify(src).IsScalar() && shape.Classify(dst).IsScalar()
}

// recoverSkip converts a panic from user callbacks or reflection into a
// skipped member. Configuration errors from unsupported destination shapes
// stay fatal and keep unwinding.
func (m *Mapper) recoverSkip(tc *traversal, what, name string) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, truemapper.ErrUnsupportedShape) {
		panic(r)
	}
	tc.skipped++
	if m.log.Enabled(logger.LevelDebug) {
		m.log.Debug("skipped %s %q: %v", what, name, r)
	}
}

func (m *Mapper) debugCycle(t reflect.Type) {
	if m.log.Enabled(logger.LevelDebug) {
		m.log.Debug("cycle detected at %s, branch truncated", t)
	}
}

func (m *Mapper) debugSkip(what, name string, v reflect.Value) {
	if !m.log.Enabled(logger.LevelDebug) {
		return
	}
	m.log.Debug("skipped %s %q, source value:\n%s", what, name, spew.Sdump(v.Interface()))
}

// stringKeyedMap reports whether t is a map keyed by string, the shape
// dynamic documents decode into.
func stringKeyedMap(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// unwrap peels interface wrappers off a source value.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// defaultConstructed returns a present default value of t: fresh instances
// behind pointers, empty maps and slices, zero values otherwise.
func defaultConstructed(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Pointer:
		return reflect.New(t.Elem())
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	default:
		return reflect.Zero(t)
	}
}

// absent reports whether v is a null-like value. Non-nilable kinds are
// never absent.
func absent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// identity returns a stable address for values whose storage can recur in
// a graph. Addressable structs share their first member's address with the
// enclosing value, so only reference kinds participate.
func identity(v reflect.Value) (uintptr, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return 0, false
		}
		return v.Pointer(), true
	default:
		return 0, false
	}
}
