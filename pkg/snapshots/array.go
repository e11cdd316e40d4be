package snapshots

import (
	"fmt"

	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/platform"
)

// Array is the ordered, observable mirror of a Source.
//
// Array is not safe for concurrent use; call it from the UI thread.
type Array[T any] struct {
	source    Source
	parser    Parser[T]
	snapshots []Snapshot
	cache     map[string]T
	listeners []ChangeEventListener
	loaded    bool
	stop      func()
	// gen identifies the current listen session. Changes queued by an
	// earlier session are dropped once the session ends.
	gen int
}

// NewArray returns an Array over source that parses records with parser.
// A nil parser falls back to ValueParser.
func NewArray[T any](source Source, parser Parser[T]) *Array[T] {
	if parser == nil {
		parser = ValueParser[T]()
	}
	return &Array[T]{
		source: source,
		parser: parser,
		cache:  make(map[string]T),
	}
}

// Name returns the name of the underlying source.
func (a *Array[T]) Name() string {
	return a.source.Name()
}

// Size returns the number of records.
func (a *Array[T]) Size() int {
	return len(a.snapshots)
}

// Get returns the snapshot at index.
func (a *Array[T]) Get(index int) Snapshot {
	return a.snapshots[index]
}

// Object returns the parsed record at index. Parsed values are cached
// until the record changes.
func (a *Array[T]) Object(index int) (T, error) {
	snap := a.snapshots[index]
	if v, ok := a.cache[snap.Key()]; ok {
		return v, nil
	}
	v, err := a.parser(snap)
	if err != nil {
		var zero T
		return zero, err
	}
	a.cache[snap.Key()] = v
	return v, nil
}

// IsLoaded reports whether the initial load of the current session completed.
func (a *Array[T]) IsLoaded() bool {
	return a.loaded
}

// IsListening reports whether listener is registered.
func (a *Array[T]) IsListening(listener ChangeEventListener) bool {
	for _, l := range a.listeners {
		if l == listener {
			return true
		}
	}
	return false
}

// IsListeningAny reports whether any listener is registered.
func (a *Array[T]) IsListeningAny() bool {
	return len(a.listeners) > 0
}

// AddChangeEventListener registers listener. The first listener starts the
// source; later listeners are caught up with one Added per current record
// and, if the initial load finished, OnDataChanged.
func (a *Array[T]) AddChangeEventListener(listener ChangeEventListener) {
	if listener == nil {
		panic(errors.Fatal("snapshots.AddChangeEventListener", errors.KindContract,
			fmt.Errorf("listener must not be nil")))
	}
	wasListening := a.IsListeningAny()
	a.listeners = append(a.listeners, listener)

	if !wasListening {
		a.gen++
		a.stop = a.source.Listen(&arraySink[T]{array: a, gen: a.gen})
		return
	}
	for i, snap := range a.snapshots {
		listener.OnChildChanged(Added, snap, i, -1)
	}
	if a.loaded {
		listener.OnDataChanged()
	}
}

// RemoveChangeEventListener unregisters listener. Removing the last
// listener stops the source and clears the array without notifying anyone.
func (a *Array[T]) RemoveChangeEventListener(listener ChangeEventListener) {
	for i, l := range a.listeners {
		if l == listener {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			break
		}
	}
	if a.IsListeningAny() {
		return
	}
	a.gen++
	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
	a.snapshots = nil
	a.cache = make(map[string]T)
	a.loaded = false
}

func (a *Array[T]) each(fn func(ChangeEventListener)) {
	listeners := make([]ChangeEventListener, len(a.listeners))
	copy(listeners, a.listeners)
	for _, l := range listeners {
		fn(l)
	}
}

func (a *Array[T]) checkIndex(op string, index, limit int) bool {
	if index >= 0 && index <= limit {
		return true
	}
	errors.Report(&errors.Error{
		Op:     op,
		Kind:   errors.KindContract,
		Source: a.source.Name(),
		Err:    fmt.Errorf("index %d out of range [0,%d]", index, limit),
	})
	return false
}

func (a *Array[T]) applyAdded(snap Snapshot, index int) {
	if !a.checkIndex("snapshots.Added", index, len(a.snapshots)) {
		return
	}
	a.snapshots = append(a.snapshots, nil)
	copy(a.snapshots[index+1:], a.snapshots[index:])
	a.snapshots[index] = snap
	delete(a.cache, snap.Key())
	a.each(func(l ChangeEventListener) { l.OnChildChanged(Added, snap, index, -1) })
}

func (a *Array[T]) applyChanged(snap Snapshot, index int) {
	if !a.checkIndex("snapshots.Changed", index, len(a.snapshots)-1) {
		return
	}
	delete(a.cache, a.snapshots[index].Key())
	a.snapshots[index] = snap
	a.each(func(l ChangeEventListener) { l.OnChildChanged(Changed, snap, index, -1) })
}

func (a *Array[T]) applyRemoved(index int) {
	if !a.checkIndex("snapshots.Removed", index, len(a.snapshots)-1) {
		return
	}
	snap := a.snapshots[index]
	a.snapshots = append(a.snapshots[:index], a.snapshots[index+1:]...)
	delete(a.cache, snap.Key())
	a.each(func(l ChangeEventListener) { l.OnChildChanged(Removed, snap, index, -1) })
}

func (a *Array[T]) applyMoved(snap Snapshot, from, to int) {
	if !a.checkIndex("snapshots.Moved", from, len(a.snapshots)-1) ||
		!a.checkIndex("snapshots.Moved", to, len(a.snapshots)-1) {
		return
	}
	old := a.snapshots[from]
	a.snapshots = append(a.snapshots[:from], a.snapshots[from+1:]...)
	a.snapshots = append(a.snapshots, nil)
	copy(a.snapshots[to+1:], a.snapshots[to:])
	a.snapshots[to] = snap
	delete(a.cache, old.Key())
	a.each(func(l ChangeEventListener) { l.OnChildChanged(Moved, snap, to, from) })
}

func (a *Array[T]) applyLoaded() {
	a.loaded = true
	a.each(func(l ChangeEventListener) { l.OnDataChanged() })
}

func (a *Array[T]) applyFailed(err error) {
	a.each(func(l ChangeEventListener) { l.OnCancelled(err) })
}

// arraySink hops every change onto the UI thread and drops it if the
// listen session that produced it has ended.
type arraySink[T any] struct {
	array *Array[T]
	gen   int
}

func (s *arraySink[T]) run(fn func()) {
	platform.RunOnUI(func() {
		if s.array.gen != s.gen {
			return
		}
		fn()
	})
}

func (s *arraySink[T]) Added(snap Snapshot, index int) {
	s.run(func() { s.array.applyAdded(snap, index) })
}

func (s *arraySink[T]) Changed(snap Snapshot, index int) {
	s.run(func() { s.array.applyChanged(snap, index) })
}

func (s *arraySink[T]) Removed(index int) {
	s.run(func() { s.array.applyRemoved(index) })
}

func (s *arraySink[T]) Moved(snap Snapshot, from, to int) {
	s.run(func() { s.array.applyMoved(snap, from, to) })
}

func (s *arraySink[T]) Loaded() {
	s.run(s.array.applyLoaded)
}

func (s *arraySink[T]) Failed(err error) {
	s.run(func() { s.array.applyFailed(err) })
}
