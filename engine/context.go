package engine

import "sync"

// traversal is the per-call mutable state of one top-level mapping:
// the identity set of source objects currently being visited and the
// recursion depth, plus the safety-limit tallies flushed into Metrics when
// the call finishes. It must never be shared across concurrent top-level
// calls.
type traversal struct {
	visiting map[uintptr]struct{}
	depth    int

	cycles      uint64
	truncations uint64
	skipped     uint64
}

var traversalPool = sync.Pool{
	New: func() any {
		return &traversal{visiting: make(map[uintptr]struct{}, 16)}
	},
}

func acquireTraversal() *traversal {
	tc := traversalPool.Get().(*traversal)
	tc.depth = 0
	tc.cycles = 0
	tc.truncations = 0
	tc.skipped = 0
	return tc
}

func releaseTraversal(tc *traversal) {
	// The visiting set is empty here whenever the push/pop discipline held.
	// A panic escaping a user callback can leave entries behind, so clear
	// before the context is reused.
	for k := range tc.visiting {
		delete(tc.visiting, k)
	}
	traversalPool.Put(tc)
}
