package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/go-drift/firelist/cmd/firelist/internal/config"
	"github.com/go-drift/firelist/cmd/firelist/internal/demo"
	"github.com/go-drift/firelist/cmd/firelist/internal/model"
	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/listbinding"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/snapshots"
	"github.com/go-drift/firelist/pkg/snapshots/firestore"
	"github.com/go-drift/firelist/pkg/tui"
)

// binding is an opened source and the array mirroring it.
type binding struct {
	source snapshots.Source
	array  *snapshots.Array[model.Message]
	// feed drives the memory source. Nil for other sources.
	feed  *demo.Feed
	close func() error
}

func (b *binding) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// openSource connects to the source described by cfg.
func openSource(ctx context.Context, cfg *config.Resolved) (*binding, error) {
	switch cfg.SourceKind {
	case config.SourceMemory:
		src := snapshots.NewMemorySource(cfg.Collection, snapshots.WithOrder(demo.NewestFirst))
		feed := demo.NewFeed(src, demo.Options{
			Interval: cfg.DemoInterval,
			Burst:    cfg.DemoBurst,
			Seed:     cfg.DemoSeed,
			Max:      cfg.DemoMax,
		})
		feed.Seed(cfg.DemoInitial)
		return &binding{
			source: src,
			array:  snapshots.NewArray[model.Message](src, nil),
			feed:   feed,
		}, nil

	case config.SourceFirestore:
		client, err := firestore.NewClient(ctx, cfg.Project, cfg.Database)
		if err != nil {
			return nil, err
		}
		q := firestore.Query(client, firestore.QueryOptions{
			Collection: cfg.Collection,
			OrderBy:    cfg.OrderBy,
			Descending: cfg.Descending,
			Limit:      cfg.Limit,
		})
		src := firestore.NewQuerySource(cfg.Collection, q)
		return &binding{
			source: src,
			array:  snapshots.NewArray[model.Message](src, nil),
			close:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.SourceKind)
	}
}

// newAdapter binds b to text rows that follow owner.
func newAdapter(b *binding, cfg *config.Resolved, owner *platform.Lifecycle) *listbinding.Adapter[model.Message, *tui.RowHolder] {
	return listbinding.New(b.array, listbinding.Options[model.Message, *tui.RowHolder]{
		Layout:               tui.LayoutText,
		NewViewHolder:        tui.NewRowHolder,
		Populate:             populateRow,
		Owner:                owner,
		ClipToTopOnFirstTime: cfg.ClipToTop,
	})
}

// populateRow shows the author and send time over the message text.
func populateRow(h *tui.RowHolder, m model.Message, position int) {
	h.Title = m.Author
	h.Meta = m.Meta()
	h.Body = m.Text
	h.Position = position
}

// runFeed runs the demo feed, if any, until ctx is done. The returned
// channel is closed once the feed has stopped writing.
func runFeed(ctx context.Context, b *binding) <-chan struct{} {
	done := make(chan struct{})
	if b.feed == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		defer errors.Rethrow("demo.feed")
		if err := b.feed.Run(ctx); err != nil {
			log.Printf("demo feed stopped: %v", err)
		}
	}()
	return done
}

// stopHost destroys owner and waits for the feed before detaching d.
// Destroy returns once the source listener is gone, so nothing can post
// after the wait; detaching earlier would run late changes inline on the
// writer's goroutine. Callbacks still queued belong to the stopped
// session and are dropped by the final drain.
func stopHost(owner *platform.Lifecycle, d *tui.Dispatcher, feedDone <-chan struct{}) {
	owner.Destroy()
	<-feedDone
	d.Detach()
	d.Drain()
}
