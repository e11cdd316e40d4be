package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/firelist/pkg/platform"
)

// drainMsg asks the model to run queued callbacks.
type drainMsg struct{}

// Dispatcher queues UI callbacks for a bubbletea program.
//
// Post never blocks: it may be called from the program's own goroutine,
// including from inside a callback being drained.
type Dispatcher struct {
	mu      sync.Mutex
	queue   []func()
	send    func(tea.Msg)
	pending bool
}

// NewDispatcher returns a detached dispatcher. Callbacks posted before
// Attach are kept until the first drain.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach wakes p whenever callbacks are queued and registers the
// dispatcher as the platform UI dispatcher.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.SetSender(p.Send)
	platform.RegisterDispatch(d.Post)
}

// Detach unregisters the dispatcher. Later callbacks run inline.
func (d *Dispatcher) Detach() {
	platform.RegisterDispatch(nil)
	d.SetSender(nil)
}

// SetSender sets the function used to wake the message loop.
func (d *Dispatcher) SetSender(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	wake := send != nil && len(d.queue) > 0 && !d.pending
	if wake {
		d.pending = true
	}
	d.mu.Unlock()
	if wake {
		go send(drainMsg{})
	}
}

// Post queues callback for the message loop.
func (d *Dispatcher) Post(callback func()) {
	d.mu.Lock()
	d.queue = append(d.queue, callback)
	send := d.send
	wake := send != nil && !d.pending
	if wake {
		d.pending = true
	}
	d.mu.Unlock()
	if wake {
		go send(drainMsg{})
	}
}

// Len returns the number of queued callbacks.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Drain runs the queued callbacks in order and returns how many ran.
// Callbacks posted while draining wait for the next drain.
func (d *Dispatcher) Drain() int {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.pending = false
	d.mu.Unlock()

	for _, cb := range queue {
		cb()
	}
	return len(queue)
}
