package widgets

import (
	"math"
)

// Notifier receives row-level change notifications.
type Notifier interface {
	NotifyItemInserted(position int)
	NotifyItemChanged(position int)
	NotifyItemRemoved(position int)
	NotifyItemMoved(from, to int)
	NotifyDataSetChanged()
}

// ListAdapter supplies rows to a ListView.
type ListAdapter[VH any] interface {
	// ItemCount returns the number of rows.
	ItemCount() int
	// ItemViewType returns the layout of the row at position.
	ItemViewType(position int) LayoutID
	// CreateViewHolder builds an unbound holder for viewType.
	CreateViewHolder(viewType LayoutID) VH
	// BindViewHolder fills holder with the row at position.
	BindViewHolder(holder VH, position int)
}

// Row is a bound, visible row produced by Layout.
type Row[VH any] struct {
	Position int
	Holder   VH
}

// ListView is a virtualized list of view holders.
//
// For virtualization to work, ItemExtent must be set to a fixed height.
// Only rows inside the viewport plus CacheExtent on either side hold a
// view holder; the rest are recycled per LayoutID.
//
// Example:
//
//	list := &widgets.ListView[*rowHolder]{
//	    Adapter:     adapter,
//	    ItemExtent:  1,
//	    CacheExtent: 4,
//	}
//	adapter.SetNotifier(list)
//	for _, row := range list.Layout() { ... }
type ListView[VH any] struct {
	// Adapter supplies rows.
	Adapter ListAdapter[VH]
	// ItemExtent is the fixed extent of each row along the scroll axis.
	ItemExtent float64
	// CacheExtent is the extent to keep bound beyond the visible area.
	CacheExtent float64
	// Controller manages scroll position. Created on first use when nil.
	Controller *ScrollController
	// OnNeedsLayout is called whenever a notification invalidates rows.
	OnNeedsLayout func()

	slots []*slot[VH]
	pool  map[LayoutID][]VH
	stats ListStats
}

// ListStats counts holder work done by a ListView.
type ListStats struct {
	Creates   int
	Binds     int
	Refreshes int
}

type slot[VH any] struct {
	holder    VH
	viewType  LayoutID
	hasHolder bool
	bound     bool
}

var _ Notifier = (*ListView[struct{}])(nil)

// Stats returns the holder counters.
func (l *ListView[VH]) Stats() ListStats {
	return l.stats
}

func (l *ListView[VH]) controller() *ScrollController {
	if l.Controller == nil {
		l.Controller = &ScrollController{}
	}
	return l.Controller
}

func (l *ListView[VH]) extent() float64 {
	if l.ItemExtent <= 0 {
		return 1
	}
	return l.ItemExtent
}

// FirstVisible returns the row at the top of the viewport.
func (l *ListView[VH]) FirstVisible() int {
	return int(math.Floor(l.controller().Offset() / l.extent()))
}

// MaxScrollExtent returns the largest valid scroll offset.
func (l *ListView[VH]) MaxScrollExtent() float64 {
	content := float64(len(l.slots)) * l.extent()
	limit := content - l.controller().ViewportExtent()
	if limit < 0 {
		return 0
	}
	return limit
}

// ScrollBy moves the list by delta, clamped to the content.
func (l *ListView[VH]) ScrollBy(delta float64) {
	l.jumpClamped(l.controller().Offset() + delta)
}

func (l *ListView[VH]) jumpClamped(offset float64) {
	if limit := l.MaxScrollExtent(); offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	l.controller().JumpTo(offset)
}

func (l *ListView[VH]) needsLayout() {
	if l.OnNeedsLayout != nil {
		l.OnNeedsLayout()
	}
}

// NotifyItemInserted inserts an unbound row at position.
func (l *ListView[VH]) NotifyItemInserted(position int) {
	if position < 0 || position > len(l.slots) {
		l.NotifyDataSetChanged()
		return
	}
	anchored := position <= l.FirstVisible() && len(l.slots) > 0
	l.slots = append(l.slots, nil)
	copy(l.slots[position+1:], l.slots[position:])
	l.slots[position] = &slot[VH]{}
	if anchored {
		l.controller().ScrollBy(l.extent())
	}
	l.needsLayout()
}

// NotifyItemChanged marks the row at position for rebinding.
func (l *ListView[VH]) NotifyItemChanged(position int) {
	if position < 0 || position >= len(l.slots) {
		l.NotifyDataSetChanged()
		return
	}
	l.slots[position].bound = false
	l.needsLayout()
}

// NotifyItemRemoved drops the row at position.
func (l *ListView[VH]) NotifyItemRemoved(position int) {
	if position < 0 || position >= len(l.slots) {
		l.NotifyDataSetChanged()
		return
	}
	anchored := position < l.FirstVisible()
	l.recycle(l.slots[position])
	l.slots = append(l.slots[:position], l.slots[position+1:]...)
	if anchored {
		l.jumpClamped(l.controller().Offset() - l.extent())
	}
	l.needsLayout()
}

// NotifyItemMoved relocates the row at from to to. The row keeps its
// binding.
func (l *ListView[VH]) NotifyItemMoved(from, to int) {
	if from < 0 || from >= len(l.slots) || to < 0 || to >= len(l.slots) {
		l.NotifyDataSetChanged()
		return
	}
	s := l.slots[from]
	l.slots = append(l.slots[:from], l.slots[from+1:]...)
	l.slots = append(l.slots, nil)
	copy(l.slots[to+1:], l.slots[to:])
	l.slots[to] = s
	l.needsLayout()
}

// NotifyDataSetChanged drops every binding and resynchronizes the row
// count with the adapter on the next layout. The scroll offset is kept.
func (l *ListView[VH]) NotifyDataSetChanged() {
	for _, s := range l.slots {
		l.recycle(s)
	}
	l.slots = nil
	l.stats.Refreshes++
	l.sync()
	l.needsLayout()
}

func (l *ListView[VH]) sync() {
	count := 0
	if l.Adapter != nil {
		count = l.Adapter.ItemCount()
	}
	if count == len(l.slots) {
		return
	}
	for len(l.slots) > count {
		l.recycle(l.slots[len(l.slots)-1])
		l.slots = l.slots[:len(l.slots)-1]
	}
	for len(l.slots) < count {
		l.slots = append(l.slots, &slot[VH]{})
	}
}

func (l *ListView[VH]) recycle(s *slot[VH]) {
	if s == nil || !s.hasHolder {
		return
	}
	if l.pool == nil {
		l.pool = make(map[LayoutID][]VH)
	}
	l.pool[s.viewType] = append(l.pool[s.viewType], s.holder)
	var zero VH
	s.holder = zero
	s.hasHolder = false
	s.bound = false
}

func (l *ListView[VH]) obtain(viewType LayoutID) VH {
	if holders := l.pool[viewType]; len(holders) > 0 {
		h := holders[len(holders)-1]
		l.pool[viewType] = holders[:len(holders)-1]
		return h
	}
	l.stats.Creates++
	return l.Adapter.CreateViewHolder(viewType)
}

// ItemCount returns the number of rows the list currently holds.
func (l *ListView[VH]) ItemCount() int {
	return len(l.slots)
}

// Layout binds the rows in the visible range and returns them in order.
// A row count that disagrees with the adapter is treated as a full refresh.
func (l *ListView[VH]) Layout() []Row[VH] {
	if l.Adapter == nil {
		return nil
	}
	if l.Adapter.ItemCount() != len(l.slots) {
		l.NotifyDataSetChanged()
	}
	l.jumpClamped(l.controller().Offset())

	start, end := l.visibleRange()
	for i, s := range l.slots {
		if i < start || i >= end {
			l.recycle(s)
		}
	}

	rows := make([]Row[VH], 0, end-start)
	for i := start; i < end; i++ {
		s := l.slots[i]
		viewType := l.Adapter.ItemViewType(i)
		if s.hasHolder && s.viewType != viewType {
			l.recycle(s)
		}
		if !s.hasHolder {
			s.holder = l.obtain(viewType)
			s.viewType = viewType
			s.hasHolder = true
			s.bound = false
		}
		if !s.bound {
			l.Adapter.BindViewHolder(s.holder, i)
			l.stats.Binds++
			s.bound = true
		}
		rows = append(rows, Row[VH]{Position: i, Holder: s.holder})
	}

	var out []Row[VH]
	viewStart, viewEnd := l.viewportRange()
	for _, r := range rows {
		if r.Position >= viewStart && r.Position < viewEnd {
			out = append(out, r)
		}
	}
	return out
}

// visibleRange is the bound range: viewport plus cache extent.
func (l *ListView[VH]) visibleRange() (int, int) {
	cache := l.CacheExtent
	if cache < 0 {
		cache = 0
	}
	return l.rangeFor(cache)
}

func (l *ListView[VH]) viewportRange() (int, int) {
	return l.rangeFor(0)
}

func (l *ListView[VH]) rangeFor(cache float64) (int, int) {
	count := len(l.slots)
	if count == 0 {
		return 0, 0
	}
	controller := l.controller()
	viewport := controller.ViewportExtent()
	if viewport <= 0 {
		return 0, count
	}
	offset := controller.Offset()
	visibleStart := offset - cache
	visibleEnd := offset + viewport + cache
	startIndex := int(math.Floor(visibleStart / l.extent()))
	endIndex := int(math.Ceil(visibleEnd / l.extent()))
	if startIndex < 0 {
		startIndex = 0
	}
	if endIndex > count {
		endIndex = count
	}
	if endIndex < startIndex {
		endIndex = startIndex
	}
	return startIndex, endIndex
}
