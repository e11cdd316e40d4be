// Package snapshots provides an observable, ordered collection of remote
// records.
//
// An [Array] mirrors the ordered contents of a [Source] (an in-memory
// collection, a Firestore query) and re-broadcasts every structural change
// to its [ChangeEventListener]s. The first listener starts the source and
// removing the last one stops it, so an idle Array holds no connection.
//
// All mutations of an Array happen on the UI thread (see
// [platform.RunOnUI]); listeners never run concurrently with each other.
package snapshots

import (
	"fmt"

	"github.com/go-drift/firelist/pkg/errors"
)

// Ref identifies the remote location a snapshot was read from.
type Ref struct {
	// ID is the last path segment (document id or child key).
	ID string
	// Path is the full slash-separated path.
	Path string
}

func (r Ref) String() string {
	return r.Path
}

// Snapshot is an immutable copy of one remote record.
type Snapshot interface {
	// Key returns the record key, unique within its collection.
	Key() string
	// Ref returns the record location.
	Ref() Ref
	// DataTo decodes the record into v, which must be a pointer.
	DataTo(v any) error
}

// EventType tags a structural change.
type EventType int

const (
	// Added means a record was inserted at index.
	Added EventType = iota + 1
	// Changed means the record at index has new content.
	Changed
	// Removed means the record at index was deleted.
	Removed
	// Moved means the record at oldIndex now lives at index.
	Moved
)

func (t EventType) String() string {
	switch t {
	case Added:
		return "added"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	case Moved:
		return "moved"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// ChangeEventListener receives the changes of an [Array].
type ChangeEventListener interface {
	// OnChildChanged is called after the array applied a change. oldIndex
	// is only meaningful for Moved and is -1 otherwise.
	OnChildChanged(eventType EventType, snapshot Snapshot, index, oldIndex int)
	// OnDataChanged is called after every complete batch of changes; the
	// first call marks the end of the initial load.
	OnDataChanged()
	// OnCancelled is called when the source stops delivering changes.
	OnCancelled(err error)
}

// Parser converts a snapshot into a model value.
type Parser[T any] func(snapshot Snapshot) (T, error)

// ValueParser returns a Parser that decodes snapshots with DataTo.
func ValueParser[T any]() Parser[T] {
	return func(snapshot Snapshot) (T, error) {
		var v T
		if err := snapshot.DataTo(&v); err != nil {
			var zero T
			return zero, &errors.ParseError{
				Key:      snapshot.Key(),
				DataType: fmt.Sprintf("%T", v),
				Err:      err,
			}
		}
		return v, nil
	}
}
