// Package engine implements the recursive mapping engine.
//
// A Mapper walks a source object graph and populates a structurally
// equivalent destination: scalars go through the convert package,
// containers are rebuilt by the collection package, and composites recurse
// member by member, consulting the profile store for custom rules along the
// way.
//
// The engine itself is stateless. Every top-level call creates a fresh
// traversal context holding the visiting set and depth counter, threads it
// through all recursion, and discards it at the end, so one Mapper can
// serve concurrent callers. The context's visiting set always reflects
// exactly the source objects on the current recursion path: identities are
// pushed on entry and popped on every exit path.
package engine
