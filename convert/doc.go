// Package convert implements best-effort scalar conversion.
//
// Convert never fails: parse errors, overflow and unresolvable enum names
// all resolve to the target type's zero value. This is a deliberate policy
// so the traversal engine never has to unwind a large object graph over one
// bad leaf; the cost is silent data loss, which callers accept by using
// this package.
//
// Numeric conversions go through a wide decimal intermediate with an
// explicit range check against the target's domain, so an out-of-range
// value becomes the target's zero rather than a wrapped one.
package convert
