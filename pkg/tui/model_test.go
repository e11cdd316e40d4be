package tui

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/listbinding"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/snapshots"
	fltest "github.com/go-drift/firelist/pkg/testing"
	"github.com/go-drift/firelist/pkg/widgets"
)

type note struct {
	Text string `yaml:"text"`
}

type harness struct {
	src     *snapshots.MemorySource
	model   *Model
	adapter *listbinding.Adapter[note, *RowHolder]
}

func newHarness(t *testing.T, rows int) *harness {
	t.Helper()
	src := snapshots.NewMemorySource("notes")
	for i := 0; i < rows; i++ {
		src.Put(fmt.Sprintf("n%02d", i), map[string]any{"text": fmt.Sprintf("note %d", i)})
	}
	owner := platform.NewLifecycle()
	adapter := listbinding.New(snapshots.NewArray[note](src, nil), listbinding.Options[note, *RowHolder]{
		Layout:        LayoutText,
		NewViewHolder: NewRowHolder,
		Populate: func(h *RowHolder, n note, _ int) {
			h.Title = n.Text
		},
		Owner:     owner,
		Scheduler: fltest.NewFakeScheduler(nil),
	})
	m := New(Options{Title: "notes", Adapter: adapter, Lifecycle: owner})
	adapter.SetNotifier(m.List())
	return &harness{src: src, model: m, adapter: adapter}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartRendersRows(t *testing.T) {
	h := newHarness(t, 3)
	assert.Contains(t, h.model.View(), "0 rows")

	h.send(startMsg{})
	h.send(tea.WindowSizeMsg{Width: 40, Height: 8})

	view := h.model.View()
	assert.Contains(t, view, "3 rows")
	assert.Contains(t, view, "live")
	for i := 0; i < 3; i++ {
		assert.Contains(t, view, fmt.Sprintf("note %d", i))
	}
}

func TestModel_FocusDrivesLifecycle(t *testing.T) {
	h := newHarness(t, 2)
	h.send(startMsg{})
	require.True(t, h.adapter.IsListening())

	h.send(tea.BlurMsg{})
	assert.False(t, h.adapter.IsListening())
	assert.Equal(t, platform.LifecycleStatePaused, h.model.Lifecycle().State())
	view := h.model.View()
	assert.Contains(t, view, "0 rows")
	assert.Contains(t, view, "paused")

	h.send(tea.FocusMsg{})
	assert.True(t, h.adapter.IsListening())
	assert.Contains(t, h.model.View(), "2 rows")
}

func TestModel_QuitDestroysHost(t *testing.T) {
	h := newHarness(t, 1)
	h.send(startMsg{})

	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, platform.LifecycleStateDetached, h.model.Lifecycle().State())
	assert.Zero(t, h.model.Lifecycle().ObserverCount())
	assert.False(t, h.adapter.IsListening())
}

func TestModel_Scrolling(t *testing.T) {
	h := newHarness(t, 10)
	h.send(startMsg{})
	h.send(tea.WindowSizeMsg{Width: 40, Height: 5})
	list := h.model.List()

	h.send(runes("j"))
	assert.Equal(t, 1, list.FirstVisible())

	h.send(runes("G"))
	assert.Equal(t, 7, list.FirstVisible())

	h.send(runes("k"))
	assert.Equal(t, 6, list.FirstVisible())

	h.send(runes("g"))
	assert.Equal(t, 0, list.FirstVisible())

	view := h.model.View()
	assert.Contains(t, view, "note 0")
	assert.NotContains(t, view, "note 5")
}

func TestModel_HeaderShowsRowsAbove(t *testing.T) {
	h := newHarness(t, 10)
	h.send(startMsg{})
	h.send(tea.WindowSizeMsg{Width: 40, Height: 5})
	assert.NotContains(t, h.model.View(), "above")

	h.send(runes("j"))
	h.send(runes("j"))
	assert.Contains(t, h.model.View(), "2 above")

	// A row inserted above the viewport keeps it anchored.
	h.src.Put("a00", map[string]any{"text": "first"})
	assert.Contains(t, h.model.View(), "3 above")

	h.send(runes("g"))
	assert.NotContains(t, h.model.View(), "above")
}

type panicRecorder struct {
	panics []*errors.PanicError
}

func (r *panicRecorder) HandleError(*errors.Error) {}

func (r *panicRecorder) HandlePanic(err *errors.PanicError) {
	r.panics = append(r.panics, err)
}

func TestModel_ReportsRenderPanics(t *testing.T) {
	rec := &panicRecorder{}
	old := errors.DefaultHandler
	errors.SetHandler(rec)
	defer errors.SetHandler(old)

	src := snapshots.NewMemorySource("notes")
	src.Put("n00", map[string]any{"text": "note 0"})
	owner := platform.NewLifecycle()
	adapter := listbinding.New(snapshots.NewArray[note](src, nil), listbinding.Options[note, *RowHolder]{
		Layout: LayoutText,
		NewViewHolder: func(widgets.View) (*RowHolder, error) {
			return nil, stderrors.New("no row layout")
		},
		Owner:     owner,
		Scheduler: fltest.NewFakeScheduler(nil),
	})
	m := New(Options{Title: "notes", Adapter: adapter, Lifecycle: owner})
	adapter.SetNotifier(m.List())
	m.Update(startMsg{})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		m.View()
	}()

	fatal, ok := recovered.(*errors.Error)
	require.True(t, ok, "View should panic with the construction error, got %v", recovered)
	assert.Equal(t, errors.KindConstruction, fatal.Kind)
	require.Len(t, rec.panics, 1)
	assert.Equal(t, "tui.view", rec.panics[0].Op)
	assert.Same(t, fatal, rec.panics[0].Value)
	assert.Equal(t, fatal.StackTrace, rec.panics[0].StackTrace)
}

func TestModel_DrainsDispatchedChanges(t *testing.T) {
	h := newHarness(t, 2)
	d := h.model.Dispatcher()
	platform.RegisterDispatch(d.Post)
	defer platform.RegisterDispatch(nil)

	h.send(startMsg{})
	require.Positive(t, d.Len())
	assert.Zero(t, h.model.List().ItemCount())

	h.send(drainMsg{})
	assert.Zero(t, d.Len())
	assert.Equal(t, 2, h.model.List().ItemCount())

	h.src.Put("n99", map[string]any{"text": "late"})
	assert.Equal(t, 2, h.model.List().ItemCount())
	h.send(drainMsg{})
	assert.Equal(t, 3, h.model.List().ItemCount())
	assert.Contains(t, h.model.View(), "late")
}

func TestDispatcher_CoalescesWakeups(t *testing.T) {
	d := NewDispatcher()
	woken := make(chan tea.Msg, 4)
	d.SetSender(func(msg tea.Msg) { woken <- msg })

	var order []int
	for i := 0; i < 3; i++ {
		d.Post(func() { order = append(order, i) })
	}

	select {
	case msg := <-woken:
		assert.IsType(t, drainMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("dispatcher never woke the program")
	}
	select {
	case <-woken:
		t.Fatal("dispatcher woke the program twice for one batch")
	case <-time.After(20 * time.Millisecond):
	}

	assert.Equal(t, 3, d.Drain())
	assert.Equal(t, []int{0, 1, 2}, order)

	d.Post(func() {})
	select {
	case <-woken:
	case <-time.After(time.Second):
		t.Fatal("no wakeup after drain")
	}
}

func TestDispatcher_QueuesUntilAttached(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.Post(func() { ran = true })
	assert.Equal(t, 1, d.Len())

	woken := make(chan tea.Msg, 1)
	d.SetSender(func(msg tea.Msg) { woken <- msg })
	select {
	case <-woken:
	case <-time.After(time.Second):
		t.Fatal("queued callbacks were not announced on attach")
	}
	d.Drain()
	assert.True(t, ran)
}

func TestRowHolder_Render(t *testing.T) {
	h := &RowHolder{Title: "alice", Meta: "12:30:05", Body: "body text"}
	one := h.Render(0, 1)
	assert.NotContains(t, one, "\n")
	assert.Contains(t, one, "alice")
	assert.Contains(t, one, "body text")

	lines := strings.Split(h.Render(0, 3), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "alice")
	assert.Contains(t, lines[0], "12:30:05")
	assert.NotContains(t, lines[0], "body text")
	assert.Contains(t, lines[1], "body text")
	assert.Empty(t, lines[2])
}
