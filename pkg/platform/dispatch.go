package platform

import (
	"sync"
	"time"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// This should be called once by the host loop during initialization. Pass nil to unregister.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// RunOnUI dispatches callback to the UI thread, or runs it inline when no
// dispatcher is registered (headless use and tests).
func RunOnUI(callback func()) {
	if callback == nil {
		return
	}
	if !Dispatch(callback) {
		callback()
	}
}

// Scheduler posts delayed callbacks onto the UI thread.
type Scheduler interface {
	// After runs fn once d has elapsed. The returned function cancels the
	// callback if it has not fired yet.
	After(d time.Duration, fn func()) (cancel func())
}

// MainScheduler fires timers on a runtime timer and hands the callback to
// [RunOnUI], so it never runs concurrently with other UI work when a
// dispatcher is registered.
var MainScheduler Scheduler = mainScheduler{}

type mainScheduler struct{}

func (mainScheduler) After(d time.Duration, fn func()) func() {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	timer := time.AfterFunc(d, func() {
		RunOnUI(func() {
			mu.Lock()
			stop := cancelled
			mu.Unlock()
			if !stop {
				fn()
			}
		})
	})
	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		timer.Stop()
	}
}
