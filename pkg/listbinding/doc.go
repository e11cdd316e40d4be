// Package listbinding binds an observable, ordered collection of remote
// records to a [widgets.ListView].
//
// An [Adapter] listens to a [snapshots.Array] and turns each change into
// the matching row-level notification, so the list rebinds only the rows
// that changed. It never copies the records: every read goes through the
// array by index.
//
// # Lifecycle
//
// Pass a [platform.Lifecycle] as Options.Owner and the adapter follows the
// host: it starts listening when the host starts, stops (and refreshes the
// list to empty) when the host stops, and detaches from the lifecycle when
// the host is destroyed. Without an owner the adapter starts listening
// immediately and the caller must call [Adapter.Cleanup].
//
// # Clip To Top
//
// While a long initial batch streams in, inserting rows one at a time makes
// the list keep its first row anchored and drift away from the top. With
// clip-to-top enabled every Added event refreshes the whole list instead,
// and one second after the initial load completes the adapter returns to
// incremental inserts.
//
// Example:
//
//	arr := snapshots.NewArray[Message](source, nil)
//	adapter := listbinding.New(arr, listbinding.Options[Message, *MessageRow]{
//	    Layout:        layoutMessage,
//	    Inflater:      layouts,
//	    NewViewHolder: NewMessageRow,
//	    Populate: func(row *MessageRow, m Message, position int) {
//	        row.SetText(m.Text)
//	    },
//	    Owner:                lifecycle,
//	    ClipToTopOnFirstTime: true,
//	})
//	list := &widgets.ListView[*MessageRow]{Adapter: adapter, ItemExtent: 1}
//	adapter.SetNotifier(list)
package listbinding
