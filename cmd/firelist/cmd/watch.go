package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/tui"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Show a live collection as a scrolling list",
		Long: `Open a full-screen list bound to the configured collection.

Rows are inserted, changed, moved and removed as the collection changes.
The list listens only while the terminal has focus; switching away stops
the listener and switching back reloads it.

Flags:
  --log FILE   Write logs and error reports to FILE (default: discarded)`,
		Usage: "firelist watch [--log FILE]",
		Run:   runWatch,
	})
}

func runWatch(g *Globals, args []string) error {
	var logFile string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--log":
			if i+1 >= len(args) {
				return fmt.Errorf("--log requires a file path")
			}
			logFile = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: firelist watch [--log FILE]", args[i])
		}
	}

	cfg, err := g.Resolve()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The alternate screen owns stdout and stderr.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "firelist")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: g.Verbose, Out: log.Writer()})
	defer errors.SetHandler(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	owner := platform.NewLifecycle()
	adapter := newAdapter(b, cfg, owner)
	m := tui.New(tui.Options{
		Title:      fmt.Sprintf("%s (%s)", cfg.Collection, cfg.SourceKind),
		Adapter:    adapter,
		RowLines:   cfg.RowLines,
		CacheLines: cfg.CacheLines,
		Lifecycle:  owner,
	})
	adapter.SetNotifier(m.List())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	m.Dispatcher().Attach(p)
	defer m.Dispatcher().Detach()

	feedDone := runFeed(ctx, b)

	log.Printf("watching %s via %s", cfg.Collection, b.source.Name())
	_, err = p.Run()
	cancel()
	stopHost(owner, m.Dispatcher(), feedDone)
	return err
}
