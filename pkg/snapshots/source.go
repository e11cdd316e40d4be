package snapshots

// Sink receives changes from a [Source]. Indexes always refer to the
// ordering after the previous change has been applied.
type Sink interface {
	Added(snapshot Snapshot, index int)
	Changed(snapshot Snapshot, index int)
	Removed(index int)
	Moved(snapshot Snapshot, from, to int)
	// Loaded marks the end of a batch.
	Loaded()
	// Failed reports that the source gave up. No further changes follow.
	Failed(err error)
}

// Source is a remote ordered collection that can stream its changes.
type Source interface {
	// Name describes the collection for error reports.
	Name() string
	// Listen starts delivering changes to sink, beginning with one Added
	// per existing record followed by Loaded. Sources may call sink from
	// any goroutine. The returned function stops delivery.
	Listen(sink Sink) (stop func())
}
