package widgets

import "fmt"

// LayoutID identifies a row layout. It doubles as the row's view type:
// rows with the same LayoutID share recycled view holders.
type LayoutID int

// View is an inflated row layout that a view holder wraps.
type View interface {
	// Layout returns the layout the view was inflated from.
	Layout() LayoutID
}

// Inflater creates views from layout ids.
type Inflater interface {
	Inflate(layout LayoutID) (View, error)
}

// InflaterFunc adapts a function to the Inflater interface.
type InflaterFunc func(layout LayoutID) (View, error)

// Inflate calls f(layout).
func (f InflaterFunc) Inflate(layout LayoutID) (View, error) {
	return f(layout)
}

// LayoutRegistry is an Inflater backed by a table of view constructors.
type LayoutRegistry map[LayoutID]func() View

// Inflate builds the view registered for layout.
func (r LayoutRegistry) Inflate(layout LayoutID) (View, error) {
	build, ok := r[layout]
	if !ok {
		return nil, fmt.Errorf("no view registered for layout %d", layout)
	}
	return build(), nil
}
