package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/firelist/cmd/firelist/internal/model"
	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/tui"
	"github.com/go-drift/firelist/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tail",
		Short: "Print row notifications as the collection changes",
		Long: `Bind the configured collection to a headless list and print every
row notification it receives:

  +  row inserted      ~  row changed
  -  row removed       >  row moved
  *  full refresh

Flags:
  --for DURATION   Stop after DURATION (default: run until interrupted)`,
		Usage: "firelist tail [--for DURATION]",
		Run:   runTail,
	})
}

func runTail(g *Globals, args []string) error {
	var limit time.Duration
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--for":
			if i+1 >= len(args) {
				return fmt.Errorf("--for requires a duration")
			}
			d, err := time.ParseDuration(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid --for value: %w", err)
			}
			limit = d
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: firelist tail [--for DURATION]", args[i])
		}
	}

	cfg, err := g.Resolve()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: g.Verbose})
	defer errors.SetHandler(nil)
	defer errors.Rethrow("tail")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	b, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	// This goroutine is the UI thread: every callback is drained here.
	wake := make(chan struct{}, 1)
	d := tui.NewDispatcher()
	d.SetSender(func(tea.Msg) {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	platform.RegisterDispatch(d.Post)
	defer d.Detach()

	owner := platform.NewLifecycle()
	adapter := newAdapter(b, cfg, owner)
	printer := newTailNotifier(adapter, log.Default())
	adapter.SetNotifier(printer)

	feedDone := runFeed(ctx, b)

	log.Printf("tailing %s via %s", cfg.Collection, b.source.Name())
	owner.Start()
	for {
		select {
		case <-ctx.Done():
			d.Drain()
			stopHost(owner, d, feedDone)
			log.Printf("done: %s", printer.Summary())
			return nil
		case <-wake:
			d.Drain()
		}
	}
}

// rowSource is the part of the adapter the tail printer reads rows from.
type rowSource interface {
	ItemCount() int
	Item(position int) (model.Message, error)
}

// tailNotifier logs one line per row notification.
type tailNotifier struct {
	rows   rowSource
	logger *log.Logger
	counts map[string]int
}

var _ widgets.Notifier = (*tailNotifier)(nil)

func newTailNotifier(rows rowSource, logger *log.Logger) *tailNotifier {
	return &tailNotifier{rows: rows, logger: logger, counts: make(map[string]int)}
}

func (t *tailNotifier) describe(position int) string {
	m, err := t.rows.Item(position)
	if err != nil {
		return fmt.Sprintf("<unreadable: %v>", err)
	}
	return fmt.Sprintf("%s: %s", m.Author, m.Text)
}

func (t *tailNotifier) NotifyItemInserted(position int) {
	t.counts["inserted"]++
	t.logger.Printf("+ %3d %s", position, t.describe(position))
}

func (t *tailNotifier) NotifyItemChanged(position int) {
	t.counts["changed"]++
	t.logger.Printf("~ %3d %s", position, t.describe(position))
}

func (t *tailNotifier) NotifyItemRemoved(position int) {
	t.counts["removed"]++
	t.logger.Printf("- %3d", position)
}

func (t *tailNotifier) NotifyItemMoved(from, to int) {
	t.counts["moved"]++
	t.logger.Printf("> %3d -> %d", from, to)
}

func (t *tailNotifier) NotifyDataSetChanged() {
	t.counts["refresh"]++
	t.logger.Printf("* refresh (%d rows)", t.rows.ItemCount())
}

// Summary returns the notification counts.
func (t *tailNotifier) Summary() string {
	return fmt.Sprintf("%d inserted, %d changed, %d moved, %d removed, %d refreshes",
		t.counts["inserted"], t.counts["changed"], t.counts["moved"], t.counts["removed"], t.counts["refresh"])
}
