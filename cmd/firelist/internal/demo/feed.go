// Package demo fills a MemorySource with a synthetic chat room.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/go-drift/firelist/cmd/firelist/internal/model"
	"github.com/go-drift/firelist/pkg/snapshots"
)

// Op is a write performed by the feed.
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpBump   Op = "bump"
	OpDelete Op = "delete"
)

var (
	authors = []string{"ada", "grace", "linus", "ken", "barbara", "edsger"}
	phrases = []string{
		"deploy is green", "who broke main?", "lgtm", "rebasing now",
		"coffee?", "flaky test again", "shipping it", "reverting",
		"standup in 5", "the cache is warm", "pager is quiet", "merged",
	}
)

// Options configures a Feed.
type Options struct {
	// Interval is the average time between writes.
	Interval time.Duration
	// Burst is how many writes may happen back to back.
	Burst int
	// Seed makes the feed reproducible.
	Seed int64
	// Max caps the number of messages; the oldest is deleted beyond it.
	Max int
	// Now returns the send time of new messages. Defaults to time.Now.
	Now func() time.Time
}

// Feed writes messages to a MemorySource at a bounded rate.
type Feed struct {
	src     *snapshots.MemorySource
	limiter *rate.Limiter
	rnd     *rand.Rand
	max     int
	now     func() time.Time
	keys    []string
}

// NewFeed returns a feed writing to src.
func NewFeed(src *snapshots.MemorySource, opts Options) *Feed {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Feed{
		src:     src,
		limiter: rate.NewLimiter(rate.Every(opts.Interval), opts.Burst),
		rnd:     rand.New(rand.NewSource(opts.Seed)),
		max:     opts.Max,
		now:     opts.Now,
	}
}

// NewestFirst orders messages by descending send time, then by id.
func NewestFirst(a, b *snapshots.MemorySnapshot) bool {
	ta, tb := sentAt(a), sentAt(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.Key() < b.Key()
}

func sentAt(s *snapshots.MemorySnapshot) time.Time {
	t, _ := s.Data()[model.FieldSent].(time.Time)
	return t
}

// Seed adds n messages without waiting on the limiter.
func (f *Feed) Seed(n int) {
	for i := 0; i < n; i++ {
		f.add()
	}
}

// Len returns the number of messages the feed believes exist.
func (f *Feed) Len() int {
	return len(f.keys)
}

// Run writes until ctx is done. It returns nil on cancellation.
func (f *Feed) Run(ctx context.Context) error {
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			// Wait fails early when the next token lands after the deadline.
			if _, ok := ctx.Deadline(); ok || ctx.Err() != nil {
				<-ctx.Done()
				return nil
			}
			return fmt.Errorf("demo feed: %w", err)
		}
		f.Step()
	}
}

// Step performs one random write and returns it.
func (f *Feed) Step() Op {
	if f.max > 0 && len(f.keys) >= f.max {
		f.deleteOldest()
		return OpDelete
	}
	if len(f.keys) == 0 {
		f.add()
		return OpAdd
	}
	switch n := f.rnd.Intn(20); {
	case n < 12:
		f.add()
		return OpAdd
	case n < 15:
		f.edit()
		return OpEdit
	case n < 18:
		f.bump()
		return OpBump
	default:
		f.deleteRandom()
		return OpDelete
	}
}

func (f *Feed) message() model.Message {
	return model.Message{
		Author: authors[f.rnd.Intn(len(authors))],
		Text:   phrases[f.rnd.Intn(len(phrases))],
		Sent:   f.now().UTC(),
	}
}

func (f *Feed) add() {
	key := uuid.NewString()
	f.keys = append(f.keys, key)
	f.src.Put(key, f.message().Fields())
}

// edit rewrites a message's text and keeps its position.
func (f *Feed) edit() {
	key := f.keys[f.rnd.Intn(len(f.keys))]
	data, ok := f.src.Data(key)
	if !ok {
		return
	}
	data[model.FieldText] = phrases[f.rnd.Intn(len(phrases))] + " (edited)"
	f.src.Put(key, data)
}

// bump resends a message, moving it to the newest position.
func (f *Feed) bump() {
	key := f.keys[f.rnd.Intn(len(f.keys))]
	data, ok := f.src.Data(key)
	if !ok {
		return
	}
	data[model.FieldSent] = f.now().UTC()
	f.src.Put(key, data)
}

func (f *Feed) deleteRandom() {
	i := f.rnd.Intn(len(f.keys))
	f.remove(i)
}

// deleteOldest removes the earliest message the feed still tracks.
func (f *Feed) deleteOldest() {
	f.remove(0)
}

func (f *Feed) remove(i int) {
	key := f.keys[i]
	f.keys = append(f.keys[:i], f.keys[i+1:]...)
	f.src.Delete(key)
}
