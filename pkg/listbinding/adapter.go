package listbinding

import (
	"fmt"
	"time"

	"github.com/go-drift/firelist/pkg/errors"
	"github.com/go-drift/firelist/pkg/platform"
	"github.com/go-drift/firelist/pkg/snapshots"
	"github.com/go-drift/firelist/pkg/widgets"
)

// ClipToTopDelay is how long after the initial load the adapter keeps
// refreshing the whole list on Added events.
const ClipToTopDelay = time.Second

// ObservableArray is the collection an Adapter reads from.
// [*snapshots.Array] implements it.
type ObservableArray[T any] interface {
	Name() string
	Size() int
	Get(index int) snapshots.Snapshot
	Object(index int) (T, error)
	IsListening(listener snapshots.ChangeEventListener) bool
	AddChangeEventListener(listener snapshots.ChangeEventListener)
	RemoveChangeEventListener(listener snapshots.ChangeEventListener)
}

// ViewHolderFactory wraps an inflated view in a view holder.
type ViewHolderFactory[VH any] func(view widgets.View) (VH, error)

// PopulateFunc fills holder with model, the record at position.
type PopulateFunc[T, VH any] func(holder VH, model T, position int)

// Options configures an Adapter.
type Options[T, VH any] struct {
	// Layout is the row layout, returned as every row's view type.
	Layout widgets.LayoutID
	// Inflater builds row views. Nil yields views that only carry their layout id.
	Inflater widgets.Inflater
	// NewViewHolder wraps inflated views. Required.
	NewViewHolder ViewHolderFactory[VH]
	// Populate binds a record to a holder.
	Populate PopulateFunc[T, VH]
	// Owner ties listening to a host lifecycle. Nil starts listening at once.
	Owner *platform.Lifecycle
	// Scheduler runs the delayed clip-to-top reset. Nil uses platform.MainScheduler.
	Scheduler platform.Scheduler
	// ClipToTopOnFirstTime refreshes the whole list for Added events until
	// ClipToTopDelay after the initial load.
	ClipToTopOnFirstTime bool
}

// Adapter drives a list from an ObservableArray.
//
// Adapter is not safe for concurrent use; all calls, including the change
// callbacks, happen on the UI thread.
type Adapter[T, VH any] struct {
	snapshots ObservableArray[T]
	opts      Options[T, VH]
	notifier  widgets.Notifier

	clipTopFirstTime bool
	cancelClip       func()
	removeObserver   func()
}

var _ snapshots.ChangeEventListener = (*Adapter[struct{}, struct{}])(nil)
var _ widgets.ListAdapter[struct{}] = (*Adapter[struct{}, struct{}])(nil)

// New returns an adapter over array.
func New[T, VH any](array ObservableArray[T], opts Options[T, VH]) *Adapter[T, VH] {
	if array == nil {
		panic(errors.Fatal("listbinding.New", errors.KindContract, fmt.Errorf("array must not be nil")))
	}
	if opts.NewViewHolder == nil {
		panic(errors.Fatal("listbinding.New", errors.KindContract, fmt.Errorf("NewViewHolder must not be nil")))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = platform.MainScheduler
	}
	a := &Adapter[T, VH]{
		snapshots:        array,
		opts:             opts,
		clipTopFirstTime: opts.ClipToTopOnFirstTime,
	}

	if opts.Owner == nil {
		a.StartListening()
		return a
	}
	a.removeObserver = opts.Owner.AddObserver(a.onLifecycle)
	if opts.Owner.IsResumed() {
		a.StartListening()
	}
	return a
}

// SetNotifier attaches the list that receives row notifications.
func (a *Adapter[T, VH]) SetNotifier(n widgets.Notifier) {
	a.notifier = n
}

// ClipToTopOnFirstTime enables or disables clip-to-top.
func (a *Adapter[T, VH]) ClipToTopOnFirstTime(clipToTop bool) {
	a.clipTopFirstTime = clipToTop
}

// ClipsToTop reports whether Added events currently refresh the whole list.
func (a *Adapter[T, VH]) ClipsToTop() bool {
	return a.clipTopFirstTime
}

// StartListening registers the adapter with the array unless it already is.
func (a *Adapter[T, VH]) StartListening() {
	if !a.snapshots.IsListening(a) {
		a.snapshots.AddChangeEventListener(a)
	}
}

// Cleanup stops listening and refreshes the list, which is now empty.
func (a *Adapter[T, VH]) Cleanup() {
	a.snapshots.RemoveChangeEventListener(a)
	a.notifyDataSetChanged()
}

// IsListening reports whether the adapter is registered with the array.
func (a *Adapter[T, VH]) IsListening() bool {
	return a.snapshots.IsListening(a)
}

func (a *Adapter[T, VH]) onLifecycle(owner *platform.Lifecycle, event platform.LifecycleEvent) {
	switch event {
	case platform.LifecycleStart:
		a.StartListening()
	case platform.LifecycleStop:
		a.Cleanup()
	case platform.LifecycleDestroy:
		if a.removeObserver != nil {
			a.removeObserver()
			a.removeObserver = nil
		}
		if a.cancelClip != nil {
			a.cancelClip()
			a.cancelClip = nil
		}
	}
}

// OnChildChanged maps a collection change to a row notification.
func (a *Adapter[T, VH]) OnChildChanged(eventType snapshots.EventType, snapshot snapshots.Snapshot, index, oldIndex int) {
	switch eventType {
	case snapshots.Added:
		if a.clipTopFirstTime {
			a.notifyDataSetChanged()
		} else if a.notifier != nil {
			a.notifier.NotifyItemInserted(index)
		}
	case snapshots.Changed:
		if a.notifier != nil {
			a.notifier.NotifyItemChanged(index)
		}
	case snapshots.Removed:
		if a.notifier != nil {
			a.notifier.NotifyItemRemoved(index)
		}
	case snapshots.Moved:
		if a.notifier != nil {
			a.notifier.NotifyItemMoved(oldIndex, index)
		}
	default:
		panic(errors.Fatal("listbinding.OnChildChanged", errors.KindContract,
			fmt.Errorf("incomplete case statement: %v", eventType)))
	}
}

// OnDataChanged schedules the end of clip-to-top once the initial load
// has completed.
func (a *Adapter[T, VH]) OnDataChanged() {
	if !a.clipTopFirstTime || a.cancelClip != nil {
		return
	}
	a.cancelClip = a.opts.Scheduler.After(ClipToTopDelay, func() {
		a.clipTopFirstTime = false
		a.cancelClip = nil
	})
}

// OnCancelled reports err. The adapter does not retry.
func (a *Adapter[T, VH]) OnCancelled(err error) {
	errors.Report(&errors.Error{
		Op:     "listbinding.OnCancelled",
		Kind:   errors.KindListen,
		Source: a.snapshots.Name(),
		Err:    err,
	})
}

// ItemCount returns the number of records while listening, else 0.
func (a *Adapter[T, VH]) ItemCount() int {
	if !a.snapshots.IsListening(a) {
		return 0
	}
	return a.snapshots.Size()
}

// Item returns the record at position.
func (a *Adapter[T, VH]) Item(position int) (T, error) {
	return a.snapshots.Object(position)
}

// Ref returns the location of the record at position.
func (a *Adapter[T, VH]) Ref(position int) snapshots.Ref {
	return a.snapshots.Get(position).Ref()
}

// ItemViewType returns the configured row layout.
func (a *Adapter[T, VH]) ItemViewType(position int) widgets.LayoutID {
	return a.opts.Layout
}

// CreateViewHolder inflates viewType and wraps it with NewViewHolder.
// Failure is a programming error and panics.
func (a *Adapter[T, VH]) CreateViewHolder(viewType widgets.LayoutID) VH {
	var view widgets.View = layoutView(viewType)
	if a.opts.Inflater != nil {
		v, err := a.opts.Inflater.Inflate(viewType)
		if err != nil {
			panic(errors.Fatal("listbinding.CreateViewHolder", errors.KindConstruction,
				fmt.Errorf("inflate layout %d: %w", viewType, err)))
		}
		view = v
	}
	holder, err := a.opts.NewViewHolder(view)
	if err != nil {
		panic(errors.Fatal("listbinding.CreateViewHolder", errors.KindConstruction,
			fmt.Errorf("create view holder for layout %d: %w", viewType, err)))
	}
	return holder
}

// BindViewHolder populates holder with the record at position. A record
// that cannot be parsed is reported and the holder is left as is.
func (a *Adapter[T, VH]) BindViewHolder(holder VH, position int) {
	model, err := a.Item(position)
	if err != nil {
		errors.Report(&errors.Error{
			Op:     "listbinding.BindViewHolder",
			Kind:   errors.KindParsing,
			Source: a.snapshots.Name(),
			Err:    err,
		})
		return
	}
	if a.opts.Populate != nil {
		a.opts.Populate(holder, model, position)
	}
}

func (a *Adapter[T, VH]) notifyDataSetChanged() {
	if a.notifier != nil {
		a.notifier.NotifyDataSetChanged()
	}
}

// layoutView is the view used when no Inflater is configured.
type layoutView widgets.LayoutID

func (v layoutView) Layout() widgets.LayoutID { return widgets.LayoutID(v) }
