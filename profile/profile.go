// Package profile holds the custom mapping rules registered for a
// (source type, destination type) pair, and the store that the engine
// consults to find them.
//
// Profiles are created once and read many times: rule registration
// accumulates under a lock, but a profile must not be reconfigured while a
// mapping that uses it is in flight.
package profile

import (
	"sync"
)

// MemberRule computes one destination member directly from the source,
// overriding default member copying for that member.
type MemberRule struct {
	Target  string
	Compute func(src any) any
}

// ConditionalRule evaluates a predicate on the source and runs the matching
// action against the (source, destination) pair. Otherwise may be nil.
type ConditionalRule struct {
	When      func(src any) bool
	Then      func(src, dst any)
	Otherwise func(src, dst any)
}

// Transform rewrites the destination after all copying; it receives the
// current destination and returns a (possibly new) one.
type Transform func(dst any) any

// Profile is the rule set for one type pair. Rules apply in registration
// order.
type Profile struct {
	mu sync.Mutex

	memberRules  []MemberRule
	ruleTargets  map[string]struct{}
	conditionals []ConditionalRule
	ignored      map[string]struct{}
	transforms   []Transform
}

// New returns an empty profile.
func New() *Profile {
	return &Profile{
		ruleTargets: make(map[string]struct{}),
		ignored:     make(map[string]struct{}),
	}
}

// AddMemberRule appends a member rule.
func (p *Profile) AddMemberRule(target string, compute func(src any) any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.memberRules = append(p.memberRules, MemberRule{Target: target, Compute: compute})
	p.ruleTargets[target] = struct{}{}
}

// AddConditional appends a conditional rule.
func (p *Profile) AddConditional(when func(src any) bool, then func(src, dst any)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conditionals = append(p.conditionals, ConditionalRule{When: when, Then: then})
}

// SetOtherwise attaches the false-branch action to the most recently added
// conditional rule. Without a preceding conditional it is a no-op.
func (p *Profile) SetOtherwise(otherwise func(src, dst any)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.conditionals); n > 0 {
		p.conditionals[n-1].Otherwise = otherwise
	}
}

// Ignore excludes destination members from default copying.
func (p *Profile) Ignore(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range names {
		p.ignored[n] = struct{}{}
	}
}

// AddTransform appends a post-transform.
func (p *Profile) AddTransform(t Transform) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transforms = append(p.transforms, t)
}

// MemberRules returns the member rules in registration order.
func (p *Profile) MemberRules() []MemberRule {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memberRules
}

// Conditionals returns the conditional rules in registration order.
func (p *Profile) Conditionals() []ConditionalRule {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conditionals
}

// Transforms returns the post-transforms in registration order.
func (p *Profile) Transforms() []Transform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transforms
}

// IsIgnored reports whether the destination member is excluded from default
// copying.
func (p *Profile) IsIgnored(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ignored[name]
	return ok
}

// HasMemberRule reports whether a member rule targets the given destination
// member, which also excludes it from default copying.
func (p *Profile) HasMemberRule(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ruleTargets[name]
	return ok
}
