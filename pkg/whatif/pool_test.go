package whatif

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(4, nil)
	var ran atomic.Int64
	for i := 0; i < 50; i++ {
		if !p.Submit(func() { ran.Add(1) }) {
			t.Fatal("Submit returned false on an open pool")
		}
	}
	p.Close()
	if got := ran.Load(); got != 50 {
		t.Errorf("tasks run = %d, want 50", got)
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := NewPool(1, nil)
	p.Close()
	if p.Submit(func() {}) {
		t.Error("Submit after Close = true, want false")
	}
	// Close is idempotent.
	p.Close()
}

func TestPool_RecoversPanics(t *testing.T) {
	p := NewPool(1, nil)
	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Close()
	if !ran.Load() {
		t.Error("task queued after a panicking task never ran")
	}
}

func TestPool_NonPositiveWorkerCount(t *testing.T) {
	p := NewPool(0, nil)
	done := make(chan struct{})
	p.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run on fallback worker")
	}
	p.Close()
}
