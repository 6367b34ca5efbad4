package worker

import (
	"sync/atomic"
	"testing"
)

func TestPool_SubmitAndClose(t *testing.T) {
	p := NewPool(4)

	var sum atomic.Int64
	for i := 1; i <= 100; i++ {
		i := i
		if !p.Submit(func() { sum.Add(int64(i)) }) {
			t.Fatalf("Submit(%d) refused before Close", i)
		}
	}
	p.Close()

	if got := sum.Load(); got != 5050 {
		t.Errorf("sum = %d; want 5050", got)
	}
	if p.Submitted() != 100 {
		t.Errorf("Submitted() = %d; want 100", p.Submitted())
	}
	if p.Completed() != 100 {
		t.Errorf("Completed() = %d; want 100", p.Completed())
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := NewPool(1)
	p.Close()

	if p.Submit(func() {}) {
		t.Error("Submit after Close returned true")
	}
}

func TestPool_CloseTwice(t *testing.T) {
	p := NewPool(1)
	p.Close()
	p.Close() // must not panic
}

func TestRun(t *testing.T) {
	out := make([]int, 8)
	tasks := make([]Task, len(out))
	for i := range tasks {
		i := i
		tasks[i] = func() { out[i] = i * i }
	}

	Run(3, tasks)

	for i, v := range out {
		if v != i*i {
			t.Errorf("out[%d] = %d; want %d", i, v, i*i)
		}
	}
}
