package platform

import (
	"sync"
)

// LifecycleState represents the current lifecycle state of a host component.
type LifecycleState string

const (
	// LifecycleStateCreated indicates the host exists but has not been shown yet.
	LifecycleStateCreated LifecycleState = "created"

	// LifecycleStateResumed indicates the host is visible and responding to user input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStatePaused indicates the host is not visible but still alive.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the host has been destroyed. No further
	// events are delivered.
	LifecycleStateDetached LifecycleState = "detached"
)

// LifecycleEvent is a transition between lifecycle states.
type LifecycleEvent int

const (
	// LifecycleStart moves the host to resumed.
	LifecycleStart LifecycleEvent = iota + 1
	// LifecycleStop moves the host to paused.
	LifecycleStop
	// LifecycleDestroy moves the host to detached.
	LifecycleDestroy
)

func (e LifecycleEvent) String() string {
	switch e {
	case LifecycleStart:
		return "start"
	case LifecycleStop:
		return "stop"
	case LifecycleDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// LifecycleObserver is called when the owner's lifecycle changes.
type LifecycleObserver func(owner *Lifecycle, event LifecycleEvent)

// Lifecycle tracks the visible/foreground phases of one host component
// (a screen, a TUI program) and notifies observers on every transition.
type Lifecycle struct {
	mu        sync.RWMutex
	state     LifecycleState
	observers map[int]LifecycleObserver
	order     []int
	nextID    int
}

// NewLifecycle returns a lifecycle in the created state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		state:     LifecycleStateCreated,
		observers: make(map[int]LifecycleObserver),
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsResumed returns true if the host is in the resumed state.
func (l *Lifecycle) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// AddObserver registers an observer to be called on lifecycle changes.
// Returns a function that can be called to remove the observer. Removing
// an observer from inside its own callback is allowed.
func (l *Lifecycle) AddObserver(observer LifecycleObserver) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.observers[id] = observer
	l.order = append(l.order, id)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.observers[id]; !ok {
			return
		}
		delete(l.observers, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// ObserverCount returns the number of registered observers.
func (l *Lifecycle) ObserverCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.observers)
}

// Start moves the host to resumed.
func (l *Lifecycle) Start() { l.handle(LifecycleStart) }

// Stop moves the host to paused.
func (l *Lifecycle) Stop() { l.handle(LifecycleStop) }

// Destroy stops the host if needed and moves it to detached.
func (l *Lifecycle) Destroy() {
	if l.State() == LifecycleStateResumed {
		l.handle(LifecycleStop)
	}
	l.handle(LifecycleDestroy)
}

func (l *Lifecycle) handle(event LifecycleEvent) {
	var next LifecycleState
	switch event {
	case LifecycleStart:
		next = LifecycleStateResumed
	case LifecycleStop:
		next = LifecycleStatePaused
	case LifecycleDestroy:
		next = LifecycleStateDetached
	default:
		return
	}

	l.mu.Lock()
	if l.state == next || l.state == LifecycleStateDetached {
		l.mu.Unlock()
		return
	}
	l.state = next
	observers := make([]LifecycleObserver, 0, len(l.order))
	for _, id := range l.order {
		observers = append(observers, l.observers[id])
	}
	l.mu.Unlock()

	for _, o := range observers {
		o(l, event)
	}
}
