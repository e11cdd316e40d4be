// Package widgets provides the list widget that record bindings drive.
//
// [ListView] is a virtualized list: it asks its [ListAdapter] for the item
// count, creates view holders for the rows that are visible (plus a cache
// region), binds them, and recycles holders that scroll out of view.
//
// # Incremental Updates
//
// ListView implements [Notifier]. Callers report structural changes at
// row granularity so only affected rows are rebound:
//
//	list.NotifyItemInserted(3) // shifts rows 3.. down, binds the new row
//	list.NotifyItemChanged(5)  // rebinds row 5 on the next layout
//	list.NotifyDataSetChanged() // drops every binding
//
// # Anchoring
//
// Like most platform list views, ListView keeps the first visible row in
// place when rows are inserted or removed above it, by adjusting the scroll
// offset. An insert at row 0 while the list is at the top therefore leaves
// the new row just above the viewport. Callers that stream an initial batch
// and want to stay at the top use NotifyDataSetChanged for that batch.
package widgets
