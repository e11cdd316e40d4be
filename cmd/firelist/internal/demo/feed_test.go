package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/firelist/pkg/snapshots"
	fltest "github.com/go-drift/firelist/pkg/testing"
)

func newFeed(max int) (*Feed, *snapshots.MemorySource, *fltest.FakeClock) {
	clock := fltest.NewFakeClock()
	src := snapshots.NewMemorySource("messages", snapshots.WithOrder(NewestFirst))
	f := NewFeed(src, Options{Interval: time.Millisecond, Seed: 42, Max: max, Now: clock.Now})
	return f, src, clock
}

func TestFeed_SeedAddsMessages(t *testing.T) {
	f, src, clock := newFeed(0)
	for i := 0; i < 5; i++ {
		f.Seed(1)
		clock.Advance(time.Second)
	}
	assert.Equal(t, 5, src.Len())
	assert.Equal(t, 5, f.Len())
}

func TestFeed_NewestFirst(t *testing.T) {
	f, src, clock := newFeed(0)
	f.Seed(1)
	clock.Advance(time.Minute)
	f.Seed(1)

	var order []string
	stop := src.Listen(&recordingSink{added: func(s snapshots.Snapshot, i int) {
		order = append(order, s.Key())
	}})
	defer stop()

	require.Len(t, order, 2)
	assert.Equal(t, f.keys[1], order[0], "newest message should be first")
}

func TestFeed_StepRespectsMax(t *testing.T) {
	f, src, clock := newFeed(10)
	f.Seed(10)

	seen := map[Op]int{}
	for i := 0; i < 500; i++ {
		clock.Advance(time.Second)
		seen[f.Step()]++
		require.LessOrEqual(t, src.Len(), 10)
		require.Equal(t, f.Len(), src.Len())
	}
	for _, op := range []Op{OpAdd, OpEdit, OpBump, OpDelete} {
		assert.Positive(t, seen[op], "op %s never happened", op)
	}
}

func TestFeed_RunStopsOnCancel(t *testing.T) {
	f, src, _ := newFeed(0)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, f.Run(ctx))
	assert.Positive(t, src.Len())
}

type recordingSink struct {
	added func(snapshots.Snapshot, int)
}

func (s *recordingSink) Added(snap snapshots.Snapshot, index int) { s.added(snap, index) }
func (s *recordingSink) Changed(snapshots.Snapshot, int) {}
func (s *recordingSink) Removed(int) {}
func (s *recordingSink) Moved(snapshots.Snapshot, int, int) {}
func (s *recordingSink) Loaded() {}
func (s *recordingSink) Failed(error) {}
