// Package testing provides test doubles for list bindings.
//
// # Deterministic Timers
//
// [FakeScheduler] implements [platform.Scheduler] on top of a [FakeClock].
// Delayed callbacks fire only when the clock is advanced:
//
//	clk := fltest.NewFakeClock()
//	sched := fltest.NewFakeScheduler(clk)
//	adapter := listbinding.New(array, listbinding.Options[...]{Scheduler: sched})
//	adapter.OnDataChanged()
//	sched.Advance(time.Second)
//
// # Recording Notifications
//
// [RecordingNotifier] implements [widgets.Notifier] and records every call
// so tests can assert on the exact refresh sequence:
//
//	rec := &fltest.RecordingNotifier{}
//	adapter.SetNotifier(rec)
//	...
//	if got := rec.Calls(); !reflect.DeepEqual(got, want) { ... }
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import fltest "github.com/go-drift/firelist/pkg/testing"
package testing
