package cmd

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/firelist/cmd/firelist/internal/config"
	"github.com/go-drift/firelist/pkg/platform"
)

func memoryConfig(initial int) *config.Resolved {
	return &config.Resolved{
		SourceKind:   config.SourceMemory,
		Collection:   "messages",
		DemoInterval: time.Second,
		DemoBurst:    1,
		DemoSeed:     1,
		DemoInitial:  initial,
		DemoMax:      10,
	}
}

func TestTailNotifierPrintsRows(t *testing.T) {
	cfg := memoryConfig(3)
	b, err := openSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openSource: %v", err)
	}
	defer b.Close()

	owner := platform.NewLifecycle()
	adapter := newAdapter(b, cfg, owner)
	var buf bytes.Buffer
	printer := newTailNotifier(adapter, log.New(&buf, "", 0))
	adapter.SetNotifier(printer)

	owner.Start()
	owner.Stop()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for i, prefix := range []string{"+   0 ", "+   1 ", "+   2 "} {
		if !strings.HasPrefix(lines[i], prefix) || !strings.Contains(lines[i], ": ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if lines[3] != "* refresh (0 rows)" {
		t.Errorf("last line = %q", lines[3])
	}
	if got := printer.Summary(); !strings.HasPrefix(got, "3 inserted") || !strings.HasSuffix(got, "1 refreshes") {
		t.Errorf("Summary() = %q", got)
	}
}

func TestTailNotifierFollowsFeed(t *testing.T) {
	cfg := memoryConfig(0)
	b, err := openSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openSource: %v", err)
	}
	owner := platform.NewLifecycle()
	adapter := newAdapter(b, cfg, owner)
	var buf bytes.Buffer
	adapter.SetNotifier(newTailNotifier(adapter, log.New(&buf, "", 0)))
	owner.Start()

	for i := 0; i < 30; i++ {
		b.feed.Step()
	}
	if adapter.ItemCount() != b.feed.Len() {
		t.Errorf("ItemCount() = %d, feed has %d", adapter.ItemCount(), b.feed.Len())
	}
	if !strings.Contains(buf.String(), "+   0 ") {
		t.Errorf("no inserts printed:\n%s", buf.String())
	}
}
