package testing

import (
	"fmt"
	"sync"

	"github.com/go-drift/firelist/pkg/widgets"
)

var _ widgets.Notifier = (*RecordingNotifier)(nil)

// Call is one recorded notification.
type Call struct {
	// Op is one of "inserted", "changed", "removed", "moved" or "refresh".
	Op string
	// Position is the affected row. For "moved" it is the destination row.
	Position int
	// From is the source row of a move.
	From int
}

func (c Call) String() string {
	switch c.Op {
	case "refresh":
		return "refresh"
	case "moved":
		return fmt.Sprintf("moved(%d->%d)", c.From, c.Position)
	default:
		return fmt.Sprintf("%s(%d)", c.Op, c.Position)
	}
}

// Inserted, Changed, Removed, Moved and Refresh build expected calls.
func Inserted(pos int) Call { return Call{Op: "inserted", Position: pos} }
func Changed(pos int) Call { return Call{Op: "changed", Position: pos} }
func Removed(pos int) Call { return Call{Op: "removed", Position: pos} }
func Moved(from, to int) Call { return Call{Op: "moved", Position: to, From: from} }
func Refresh() Call { return Call{Op: "refresh"} }

// RecordingNotifier records every notification it receives.
type RecordingNotifier struct {
	mu    sync.Mutex
	calls []Call
}

func (r *RecordingNotifier) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *RecordingNotifier) NotifyItemInserted(position int) { r.record(Inserted(position)) }
func (r *RecordingNotifier) NotifyItemChanged(position int) { r.record(Changed(position)) }
func (r *RecordingNotifier) NotifyItemRemoved(position int) { r.record(Removed(position)) }
func (r *RecordingNotifier) NotifyItemMoved(from, to int) { r.record(Moved(from, to)) }
func (r *RecordingNotifier) NotifyDataSetChanged() { r.record(Refresh()) }

// Calls returns a copy of the recorded calls.
func (r *RecordingNotifier) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many calls with the given op were recorded.
func (r *RecordingNotifier) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset discards recorded calls.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
