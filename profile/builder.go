package profile

import "reflect"

// Builder is the fluent configuration surface for one (S, D) pair. Every
// method returns the builder for chaining. The typed callbacks are wrapped
// into the untyped rule forms the engine consumes; the engine only applies
// a profile to the exact pair it was registered for, so the wrapped type
// assertions cannot fail at mapping time.
type Builder[S, D any] struct {
	p *Profile
}

// Configure returns a builder for the (S, D) pair, creating or extending
// its profile in the store.
func Configure[S, D any](s *Store) *Builder[S, D] {
	p := s.CreateOrGet(reflect.TypeOf((*S)(nil)).Elem(), reflect.TypeOf((*D)(nil)).Elem())
	return &Builder[S, D]{p: p}
}

// ForMember sets the named destination member from a function of the
// source, replacing default copying for that member.
func (b *Builder[S, D]) ForMember(name string, compute func(S) any) *Builder[S, D] {
	b.p.AddMemberRule(name, func(src any) any {
		return compute(src.(S))
	})
	return b
}

// When registers a conditional action run against the destination when the
// predicate holds for the source.
func (b *Builder[S, D]) When(pred func(S) bool, then func(S, *D)) *Builder[S, D] {
	b.p.AddConditional(
		func(src any) bool { return pred(src.(S)) },
		func(src, dst any) { then(src.(S), dst.(*D)) },
	)
	return b
}

// Otherwise attaches the false-branch action to the preceding When.
func (b *Builder[S, D]) Otherwise(action func(S, *D)) *Builder[S, D] {
	b.p.SetOtherwise(func(src, dst any) { action(src.(S), dst.(*D)) })
	return b
}

// Ignore excludes destination members from default copying.
func (b *Builder[S, D]) Ignore(names ...string) *Builder[S, D] {
	b.p.Ignore(names...)
	return b
}

// Transform appends a post-transform applied after all copying. It may
// return a different destination instance, which replaces the current one.
func (b *Builder[S, D]) Transform(t func(*D) *D) *Builder[S, D] {
	b.p.AddTransform(func(dst any) any {
		return t(dst.(*D))
	})
	return b
}

// Profile exposes the underlying profile, mainly for tests and
// introspection.
func (b *Builder[S, D]) Profile() *Profile {
	return b.p
}
