package platform

import (
	"sync"
	"testing"
	"time"
)

func TestDispatch_Unregistered(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch succeeded without a dispatcher")
	}

	ran := false
	RunOnUI(func() { ran = true })
	if !ran {
		t.Error("RunOnUI did not run inline")
	}
}

func TestDispatch_Registered(t *testing.T) {
	var queue []func()
	RegisterDispatch(func(cb func()) { queue = append(queue, cb) })
	defer RegisterDispatch(nil)

	ran := false
	RunOnUI(func() { ran = true })
	if ran {
		t.Fatal("RunOnUI ran inline with a dispatcher registered")
	}
	if len(queue) != 1 {
		t.Fatalf("queued %d callbacks, want 1", len(queue))
	}
	queue[0]()
	if !ran {
		t.Error("queued callback did not run")
	}
	if Dispatch(nil) {
		t.Error("Dispatch accepted a nil callback")
	}
}

func TestMainScheduler_FiresOnUI(t *testing.T) {
	var (
		mu    sync.Mutex
		queue []func()
	)
	RegisterDispatch(func(cb func()) {
		mu.Lock()
		queue = append(queue, cb)
		mu.Unlock()
	})
	defer RegisterDispatch(nil)

	fired := make(chan struct{}, 1)
	MainScheduler.After(time.Millisecond, func() { fired <- struct{}{} })

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(queue)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timer never dispatched")
		}
		time.Sleep(time.Millisecond)
	}
	select {
	case <-fired:
		t.Fatal("callback ran off the UI queue")
	default:
	}

	mu.Lock()
	cb := queue[0]
	mu.Unlock()
	cb()
	select {
	case <-fired:
	default:
		t.Error("callback did not run when the queue drained")
	}
}

func TestMainScheduler_Cancel(t *testing.T) {
	RegisterDispatch(nil)
	fired := make(chan struct{}, 1)
	cancel := MainScheduler.After(20*time.Millisecond, func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Error("cancelled callback fired")
	case <-time.After(60 * time.Millisecond):
	}
}
