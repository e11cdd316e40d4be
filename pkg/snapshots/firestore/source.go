// Package firestore streams a Cloud Firestore query into a [snapshots.Array].
//
// Firestore reports a modified document together with its old and new
// position. A modification that keeps the position becomes a Changed event;
// one that moves the document becomes Moved followed by Changed, so list
// rows are both relocated and rebound.
package firestore

import (
	"context"
	stderrors "errors"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-drift/firelist/pkg/snapshots"
)

// QuerySource is a snapshots.Source backed by a Firestore query listener.
type QuerySource struct {
	name  string
	query fs.Query
}

var _ snapshots.Source = (*QuerySource)(nil)

// NewQuerySource returns a source that listens to query. name is used in
// error reports; pass the collection path.
func NewQuerySource(name string, query fs.Query) *QuerySource {
	return &QuerySource{name: name, query: query}
}

// Name returns the source name.
func (s *QuerySource) Name() string {
	return s.name
}

// Listen starts a snapshot listener on a background goroutine. The
// listener ends on the first non-cancellation error, which is passed to
// sink.Failed; it is not restarted.
//
// The returned func cancels the listener and blocks until its goroutine
// has exited, so no sink call happens after it returns. It must not be
// called from inside a sink method running on that goroutine.
func (s *QuerySource) Listen(sink snapshots.Sink) func() {
	ctx, cancel := context.WithCancel(context.Background())
	return start(ctx, cancel, s.query.Snapshots(ctx), sink)
}

type snapshotIterator interface {
	Next() (*fs.QuerySnapshot, error)
	Stop()
}

func start(ctx context.Context, cancel context.CancelFunc, it snapshotIterator, sink snapshots.Sink) func() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer it.Stop()
		listen(ctx, it, sink)
	}()
	return func() {
		cancel()
		<-done
	}
}

func listen(ctx context.Context, it snapshotIterator, sink snapshots.Sink) {
	for {
		qs, err := it.Next()
		if err != nil {
			if !cancelled(ctx, err) {
				sink.Failed(err)
			}
			return
		}
		translate(qs.Changes, sink)
		sink.Loaded()
	}
}

func cancelled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if stderrors.Is(err, iterator.Done) || stderrors.Is(err, context.Canceled) {
		return true
	}
	return status.Code(err) == codes.Canceled
}

func translate(changes []fs.DocumentChange, sink snapshots.Sink) {
	for _, change := range changes {
		snap := Snapshot(change.Doc)
		switch change.Kind {
		case fs.DocumentAdded:
			sink.Added(snap, change.NewIndex)
		case fs.DocumentRemoved:
			sink.Removed(change.OldIndex)
		case fs.DocumentModified:
			if change.OldIndex == change.NewIndex {
				sink.Changed(snap, change.NewIndex)
				continue
			}
			sink.Moved(snap, change.OldIndex, change.NewIndex)
			sink.Changed(snap, change.NewIndex)
		}
	}
}

// Snapshot adapts a Firestore document to snapshots.Snapshot.
func Snapshot(doc *fs.DocumentSnapshot) snapshots.Snapshot {
	return documentSnapshot{doc: doc}
}

type documentSnapshot struct {
	doc *fs.DocumentSnapshot
}

func (d documentSnapshot) Key() string {
	if d.doc == nil || d.doc.Ref == nil {
		return ""
	}
	return d.doc.Ref.ID
}

func (d documentSnapshot) Ref() snapshots.Ref {
	if d.doc == nil || d.doc.Ref == nil {
		return snapshots.Ref{}
	}
	return snapshots.Ref{ID: d.doc.Ref.ID, Path: d.doc.Ref.Path}
}

func (d documentSnapshot) DataTo(v any) error {
	return d.doc.DataTo(v)
}
