package testing

import (
	"reflect"
	"testing"
)

func TestRecordingNotifier(t *testing.T) {
	rec := &RecordingNotifier{}
	rec.NotifyItemInserted(0)
	rec.NotifyItemMoved(4, 1)
	rec.NotifyDataSetChanged()
	rec.NotifyDataSetChanged()

	want := []Call{Inserted(0), Moved(4, 1), Refresh(), Refresh()}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Calls() = %v, want %v", got, want)
	}
	if rec.Count("refresh") != 2 {
		t.Errorf("Count(refresh) = %d, want 2", rec.Count("refresh"))
	}
	if got := Moved(4, 1).String(); got != "moved(4->1)" {
		t.Errorf("String() = %q", got)
	}

	rec.Reset()
	if len(rec.Calls()) != 0 {
		t.Error("Reset kept calls")
	}
}
