package truemapper

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics tracks mapping activity using lock-free atomic counters. All
// methods are safe for concurrent use. Counters are written by the engine
// once per top-level mapping call; Reset is the only way to zero them.
type Metrics struct {
	// Mapping counts
	mappingsTotal atomic.Uint64

	// Timing (stored as nanoseconds)
	mappingTimeTotal atomic.Uint64
	mappingTimeMin   atomic.Uint64
	mappingTimeMax   atomic.Uint64

	// Safety-limit triggers
	cyclesDetected   atomic.Uint64
	depthTruncations atomic.Uint64

	// Members dropped by the skip-on-failure policy of default copying
	membersSkipped atomic.Uint64

	// Heap sample taken at the end of the most recent mapping
	heapAllocSample atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first recording becomes the minimum
	m.mappingTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordMapping records one completed top-level mapping call together with
// the safety-limit triggers observed during its traversal.
func (m *Metrics) RecordMapping(duration time.Duration, cycles, truncations, skipped uint64) {
	m.mappingsTotal.Add(1)
	m.cyclesDetected.Add(cycles)
	m.depthTruncations.Add(truncations)
	m.membersSkipped.Add(skipped)

	ns := uint64(duration.Nanoseconds())
	m.mappingTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.mappingTimeMin.Load()
		if ns >= old {
			break
		}
		if m.mappingTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.mappingTimeMax.Load()
		if ns <= old {
			break
		}
		if m.mappingTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordMemorySample stores the current heap allocation as the memory
// sample. runtime.ReadMemStats is not free; the engine calls this only when
// metrics collection is enabled.
func (m *Metrics) RecordMemorySample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.heapAllocSample.Store(ms.HeapAlloc)
}

// --- Query Methods ---

// MappingsTotal returns the total number of top-level mapping calls.
func (m *Metrics) MappingsTotal() uint64 {
	return m.mappingsTotal.Load()
}

// TotalMappingTime returns the accumulated mapping duration.
func (m *Metrics) TotalMappingTime() time.Duration {
	return time.Duration(m.mappingTimeTotal.Load())
}

// AverageMappingTime returns the average duration of a mapping call.
func (m *Metrics) AverageMappingTime() time.Duration {
	total := m.mappingsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.mappingTimeTotal.Load() / total)
}

// MinMappingTime returns the minimum mapping duration.
func (m *Metrics) MinMappingTime() time.Duration {
	minVal := m.mappingTimeMin.Load()
	if minVal == ^uint64(0) {
		return 0
	}
	return time.Duration(minVal)
}

// MaxMappingTime returns the maximum mapping duration.
func (m *Metrics) MaxMappingTime() time.Duration {
	return time.Duration(m.mappingTimeMax.Load())
}

// CyclesDetected returns the number of reference cycles short-circuited.
func (m *Metrics) CyclesDetected() uint64 {
	return m.cyclesDetected.Load()
}

// DepthTruncations returns the number of branches truncated at MaxDepth.
func (m *Metrics) DepthTruncations() uint64 {
	return m.depthTruncations.Load()
}

// MembersSkipped returns the number of destination members skipped because
// their value could not be copied.
func (m *Metrics) MembersSkipped() uint64 {
	return m.membersSkipped.Load()
}

// HeapAllocSample returns the heap allocation recorded by the most recent
// memory sample, in bytes.
func (m *Metrics) HeapAllocSample() uint64 {
	return m.heapAllocSample.Load()
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	MappingsTotal      uint64
	TotalMappingTime   time.Duration
	AverageMappingTime time.Duration
	MinMappingTime     time.Duration
	MaxMappingTime     time.Duration
	CyclesDetected     uint64
	DepthTruncations   uint64
	MembersSkipped     uint64
	HeapAllocSample    uint64
}

// Snapshot returns a consistent-enough view of the current counters. Values
// are loaded individually, so a snapshot taken during concurrent mappings
// may mix counters from adjacent calls.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		MappingsTotal:      m.MappingsTotal(),
		TotalMappingTime:   m.TotalMappingTime(),
		AverageMappingTime: m.AverageMappingTime(),
		MinMappingTime:     m.MinMappingTime(),
		MaxMappingTime:     m.MaxMappingTime(),
		CyclesDetected:     m.CyclesDetected(),
		DepthTruncations:   m.DepthTruncations(),
		MembersSkipped:     m.MembersSkipped(),
		HeapAllocSample:    m.HeapAllocSample(),
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.mappingsTotal.Store(0)
	m.mappingTimeTotal.Store(0)
	m.mappingTimeMin.Store(^uint64(0))
	m.mappingTimeMax.Store(0)
	m.cyclesDetected.Store(0)
	m.depthTruncations.Store(0)
	m.membersSkipped.Store(0)
	m.heapAllocSample.Store(0)
}
