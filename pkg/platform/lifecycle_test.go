package platform

import (
	"reflect"
	"testing"
)

func TestLifecycle_Transitions(t *testing.T) {
	l := NewLifecycle()
	var events []LifecycleEvent
	l.AddObserver(func(owner *Lifecycle, event LifecycleEvent) {
		if owner != l {
			t.Errorf("observer got owner %p, want %p", owner, l)
		}
		events = append(events, event)
	})

	if l.State() != LifecycleStateCreated {
		t.Fatalf("initial state = %s", l.State())
	}

	l.Start()
	l.Start()
	if !l.IsResumed() {
		t.Errorf("state = %s, want resumed", l.State())
	}
	l.Stop()
	l.Start()
	l.Destroy()
	l.Start()

	want := []LifecycleEvent{LifecycleStart, LifecycleStop, LifecycleStart, LifecycleStop, LifecycleDestroy}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if l.State() != LifecycleStateDetached {
		t.Errorf("state = %s, want detached", l.State())
	}
}

func TestLifecycle_DestroyFromCreated(t *testing.T) {
	l := NewLifecycle()
	var events []LifecycleEvent
	l.AddObserver(func(_ *Lifecycle, event LifecycleEvent) {
		events = append(events, event)
	})

	l.Destroy()
	if !reflect.DeepEqual(events, []LifecycleEvent{LifecycleDestroy}) {
		t.Errorf("events = %v", events)
	}
}

func TestLifecycle_RemoveObserverDuringCallback(t *testing.T) {
	l := NewLifecycle()
	var remove func()
	calls := 0
	remove = l.AddObserver(func(_ *Lifecycle, event LifecycleEvent) {
		calls++
		remove()
	})
	second := 0
	l.AddObserver(func(_ *Lifecycle, event LifecycleEvent) {
		second++
	})

	l.Start()
	l.Stop()

	if calls != 1 {
		t.Errorf("removed observer called %d times, want 1", calls)
	}
	if second != 2 {
		t.Errorf("remaining observer called %d times, want 2", second)
	}
	if l.ObserverCount() != 1 {
		t.Errorf("ObserverCount() = %d, want 1", l.ObserverCount())
	}
	remove()
	if l.ObserverCount() != 1 {
		t.Errorf("double remove changed count to %d", l.ObserverCount())
	}
}

func TestLifecycleEvent_String(t *testing.T) {
	tests := []struct {
		event LifecycleEvent
		want  string
	}{
		{LifecycleStart, "start"},
		{LifecycleStop, "stop"},
		{LifecycleDestroy, "destroy"},
		{LifecycleEvent(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("LifecycleEvent(%d).String() = %q, want %q", int(tt.event), got, tt.want)
		}
	}
}
