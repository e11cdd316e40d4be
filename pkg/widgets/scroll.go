package widgets

// ScrollController exposes and controls the scroll offset of a list.
//
// Use a ScrollController to programmatically control or observe scroll position:
//
//	controller := &widgets.ScrollController{}
//	controller.AddListener(func() {
//	    fmt.Println("Offset:", controller.Offset())
//	})
type ScrollController struct {
	// InitialScrollOffset is the starting offset.
	InitialScrollOffset float64

	offset         float64
	started        bool
	viewportExtent float64
	listeners      map[int]func()
	nextListenerID int
}

// Offset returns the current scroll offset.
func (c *ScrollController) Offset() float64 {
	if !c.started {
		return c.InitialScrollOffset
	}
	return c.offset
}

// ViewportExtent returns the current viewport extent.
func (c *ScrollController) ViewportExtent() float64 {
	return c.viewportExtent
}

// SetViewportExtent updates the size of the visible area.
func (c *ScrollController) SetViewportExtent(extent float64) {
	if extent == c.viewportExtent {
		return
	}
	c.viewportExtent = extent
	c.notifyListeners()
}

// AddListener registers a callback for scroll changes.
func (c *ScrollController) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// JumpTo moves to a new offset immediately.
func (c *ScrollController) JumpTo(offset float64) {
	prev := c.Offset()
	c.started = true
	c.offset = offset
	if prev != offset {
		c.notifyListeners()
	}
}

// ScrollBy moves the offset by delta.
func (c *ScrollController) ScrollBy(delta float64) {
	c.JumpTo(c.Offset() + delta)
}

func (c *ScrollController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}
