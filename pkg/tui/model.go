package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/widgets"
)

// defaultViewport is the list height used until the terminal size is known.
const defaultViewport = 20

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)

// startMsg starts the host lifecycle once the program is running.
type startMsg struct{}

// Options configures a Model.
type Options struct {
	// Title is shown in the header and the terminal title.
	Title string
	// Adapter supplies the rows.
	Adapter widgets.ListAdapter[*RowHolder]
	// RowLines is the height of each row in lines. Defaults to 1.
	RowLines int
	// CacheLines is how many lines of rows to keep bound off screen.
	CacheLines int
	// Dispatcher is drained on the message loop. Nil creates one.
	Dispatcher *Dispatcher
	// Lifecycle is the host lifecycle. Nil creates one.
	Lifecycle *platform.Lifecycle
	// KeyMap overrides DefaultKeyMap.
	KeyMap *KeyMap
}

// Model is a bubbletea model showing one list.
type Model struct {
	title      string
	list       *widgets.ListView[*RowHolder]
	lifecycle  *platform.Lifecycle
	dispatcher *Dispatcher
	keys       KeyMap
	help       help.Model
	rowLines   int
	above      int
	width      int
	height     int
}

var _ tea.Model = (*Model)(nil)

// New returns a model for opts.
func New(opts Options) *Model {
	if opts.RowLines < 1 {
		opts.RowLines = 1
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = NewDispatcher()
	}
	if opts.Lifecycle == nil {
		opts.Lifecycle = platform.NewLifecycle()
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	controller := &widgets.ScrollController{}
	controller.SetViewportExtent(defaultViewport)
	list := &widgets.ListView[*RowHolder]{
		Adapter:     opts.Adapter,
		ItemExtent:  float64(opts.RowLines),
		CacheExtent: float64(opts.CacheLines),
		Controller:  controller,
	}
	m := &Model{
		title:      opts.Title,
		list:       list,
		lifecycle:  opts.Lifecycle,
		dispatcher: opts.Dispatcher,
		keys:       keys,
		help:       help.New(),
		rowLines:   opts.RowLines,
	}
	// Anchoring moves the offset without a key press, so track it here.
	controller.AddListener(func() {
		m.above = list.FirstVisible()
	})
	return m
}

// List returns the list view. Adapters notify it of row changes.
func (m *Model) List() *widgets.ListView[*RowHolder] {
	return m.list
}

// Lifecycle returns the host lifecycle.
func (m *Model) Lifecycle() *platform.Lifecycle {
	return m.lifecycle
}

// Dispatcher returns the dispatcher drained by the model.
func (m *Model) Dispatcher() *Dispatcher {
	return m.dispatcher
}

func (m *Model) Init() tea.Cmd {
	start := func() tea.Msg { return startMsg{} }
	if m.title == "" {
		return start
	}
	return tea.Batch(start, tea.SetWindowTitle(m.title))
}

// Update handles a message. Panics are reported before bubbletea tears
// the program down.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer errors.Rethrow("tui.update")
	switch msg := msg.(type) {
	case startMsg:
		m.lifecycle.Start()
	case drainMsg:
		m.dispatcher.Drain()
	case tea.FocusMsg:
		m.lifecycle.Start()
	case tea.BlurMsg:
		m.lifecycle.Stop()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.Controller.SetViewportExtent(float64(m.listHeight()))
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := m.list.Controller.ViewportExtent()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.lifecycle.Destroy()
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.list.ScrollBy(-m.list.ItemExtent)
	case key.Matches(msg, m.keys.Down):
		m.list.ScrollBy(m.list.ItemExtent)
	case key.Matches(msg, m.keys.PageUp):
		m.list.ScrollBy(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.list.ScrollBy(page)
	case key.Matches(msg, m.keys.Top):
		m.list.ScrollBy(-m.list.Controller.Offset())
	case key.Matches(msg, m.keys.Bottom):
		m.list.ScrollBy(m.list.MaxScrollExtent())
	}
	return nil
}

// listHeight is the terminal height minus the header and help lines.
func (m *Model) listHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) View() string {
	defer errors.Rethrow("tui.view")
	rows := m.list.Layout()

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	for _, row := range rows {
		row.Holder.Position = row.Position
		b.WriteString(row.Holder.Render(m.width, m.rowLines))
		b.WriteString("\n")
	}
	if m.height > 0 {
		for used := len(rows) * m.rowLines; used < m.listHeight(); used++ {
			b.WriteString("\n")
		}
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	state := "paused"
	if m.lifecycle.IsResumed() {
		state = "live"
	}
	text := fmt.Sprintf("%s  %d rows  %s", m.title, m.list.ItemCount(), state)
	if m.above > 0 {
		text += fmt.Sprintf("  %d above", m.above)
	}
	if c, ok := m.list.Adapter.(interface{ ClipsToTop() bool }); ok && c.ClipsToTop() {
		text += "  (loading)"
	}
	return headerStyle.Render(strings.TrimSpace(text))
}
