package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeScheduler_FiresWhenDue(t *testing.T) {
	sched := NewFakeScheduler(nil)
	var fired []string
	sched.After(time.Second, func() { fired = append(fired, "late") })
	sched.After(500*time.Millisecond, func() { fired = append(fired, "early") })

	sched.Advance(999 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "early" {
		t.Fatalf("after 999ms fired = %v, want [early]", fired)
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", sched.Pending())
	}

	sched.Advance(time.Millisecond)
	if len(fired) != 2 || fired[1] != "late" {
		t.Fatalf("after 1s fired = %v, want [early late]", fired)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
}

func TestFakeScheduler_Cancel(t *testing.T) {
	sched := NewFakeScheduler(nil)
	fired := false
	cancel := sched.After(time.Second, func() { fired = true })
	cancel()

	sched.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled callback fired")
	}
}
