package truemapper

import (
	"runtime"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	if !o.DetectCycles {
		t.Error("DetectCycles = false, want true")
	}
	if o.MaxDepth != 64 {
		t.Errorf("MaxDepth = %d, want 64", o.MaxDepth)
	}
	if o.PropagateNulls {
		t.Error("PropagateNulls = true, want false")
	}
	if !o.CollectMetrics {
		t.Error("CollectMetrics = false, want true")
	}
	if o.WorkerCount != runtime.NumCPU() {
		t.Errorf("WorkerCount = %d, want %d", o.WorkerCount, runtime.NumCPU())
	}
	if o.ShapeCacheSize != 1024 {
		t.Errorf("ShapeCacheSize = %d, want 1024", o.ShapeCacheSize)
	}
}

func TestApplyOptions(t *testing.T) {
	o := DefaultOptions().Apply(
		WithCycleDetection(false),
		WithMaxDepth(8),
		WithNullPropagation(true),
		WithMetrics(false),
		WithWorkerCount(2),
		WithShapeCacheSize(64),
	)

	if o.DetectCycles {
		t.Error("DetectCycles = true, want false")
	}
	if o.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d, want 8", o.MaxDepth)
	}
	if !o.PropagateNulls {
		t.Error("PropagateNulls = false, want true")
	}
	if o.CollectMetrics {
		t.Error("CollectMetrics = true, want false")
	}
	if o.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", o.WorkerCount)
	}
	if o.ShapeCacheSize != 64 {
		t.Errorf("ShapeCacheSize = %d, want 64", o.ShapeCacheSize)
	}
}

func TestWithMaxDepthIgnoresInvalid(t *testing.T) {
	for _, depth := range []int{0, -1} {
		o := DefaultOptions().Apply(WithMaxDepth(depth))
		if o.MaxDepth != 64 {
			t.Errorf("WithMaxDepth(%d): MaxDepth = %d, want 64 kept", depth, o.MaxDepth)
		}
	}
}
