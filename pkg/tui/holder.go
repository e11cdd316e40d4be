package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/firelist/pkg/widgets"
)

// LayoutText is the layout of a text row: a title line and an optional
// body line. One-line rows show the body after the title.
const LayoutText widgets.LayoutID = 1

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	bodyStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RowHolder is the view holder for text rows.
type RowHolder struct {
	View     widgets.View
	Title    string
	Meta     string
	Body     string
	Position int
}

// NewRowHolder wraps an inflated text row. It matches
// listbinding.ViewHolderFactory.
func NewRowHolder(view widgets.View) (*RowHolder, error) {
	return &RowHolder{View: view}, nil
}

// Render draws the holder in lines lines of width cells.
func (h *RowHolder) Render(width, lines int) string {
	if lines < 1 {
		lines = 1
	}
	head := titleStyle.Render(h.Title)
	if h.Meta != "" {
		head += " " + metaStyle.Render(h.Meta)
	}
	if lines == 1 {
		if h.Body != "" {
			head += " " + h.Body
		}
		return truncate(head, width)
	}
	out := []string{truncate(head, width), truncate(bodyStyle.Render(h.Body), width)}
	for len(out) < lines {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
