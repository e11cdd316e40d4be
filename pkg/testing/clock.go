package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/go-drift/firelist/pkg/platform"
)

// FakeClock provides controllable time for deterministic timer tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var _ platform.Scheduler = (*FakeScheduler)(nil)

// FakeScheduler is a platform.Scheduler whose callbacks run synchronously
// from Advance, in due-time order, on the caller's goroutine.
type FakeScheduler struct {
	clock *FakeClock

	mu     sync.Mutex
	timers []*fakeTimer
	seq    int
}

type fakeTimer struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
}

// NewFakeScheduler returns a scheduler driven by clock. A nil clock gets a
// fresh FakeClock.
func NewFakeScheduler(clock *FakeClock) *FakeScheduler {
	if clock == nil {
		clock = NewFakeClock()
	}
	return &FakeScheduler{clock: clock}
}

// Clock returns the clock backing the scheduler.
func (s *FakeScheduler) Clock() *FakeClock {
	return s.clock
}

// After registers fn to run once the clock has advanced by d.
func (s *FakeScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	t := &fakeTimer{due: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.seq++
	s.timers = append(s.timers, t)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		t.cancelled = true
		s.mu.Unlock()
	}
}

// Advance moves the clock forward by d and runs every callback that became due.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.clock.Advance(d)
	now := s.clock.Now()

	s.mu.Lock()
	var due, rest []*fakeTimer
	for _, t := range s.timers {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of callbacks that have not fired or been cancelled.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}
