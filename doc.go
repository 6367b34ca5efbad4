// Package truemapper provides best-effort object-graph mapping between Go
// values: it walks an arbitrary source graph and populates a structurally
// equivalent destination, converting scalars, rebuilding collections, and
// recursing into nested structs, with cycle detection and depth bounding.
//
// This root package holds the shared policy surface: Options, Metrics, and
// the sentinel usage errors. The mapping engine itself lives in the engine
// package.
//
// # Quick Start
//
//	import (
//	    tm "github.com/iuliansilitra/TrueMapper"
//	    "github.com/iuliansilitra/TrueMapper/engine"
//	)
//
//	m := engine.New(tm.WithMaxDepth(32))
//
//	dto, err := engine.MapNew[UserDTO](ctx, m, user)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Custom rules are registered per (source, destination) type pair through a
// fluent builder:
//
//	engine.CreateMap[User, UserDTO](m).
//	    ForMember("DisplayName", func(u User) any { return u.First + " " + u.Last }).
//	    Ignore("Password").
//	    Transform(func(d *UserDTO) *UserDTO { d.Seen = true; return d })
//
// # Failure Philosophy
//
// A mapping call always succeeds with partial data rather than aborting a
// large graph over one bad leaf. Scalar conversion failures resolve to the
// target's zero value, a member that cannot be copied is skipped, and cycles
// or excessive depth truncate that branch silently. The only errors a call
// can return are the usage errors declared in this package. Cycle and
// truncation counts are observable through Metrics.
//
// # Concurrency
//
// The engine is stateless: all per-call traversal state (visiting set, depth
// counter) is created fresh for every top-level call, so one Mapper may be
// shared by any number of goroutines. Profiles and Options are read-only
// during a traversal; do not reconfigure a profile while a mapping that uses
// it is in flight.
package truemapper
