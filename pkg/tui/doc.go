// Package tui hosts a [widgets.ListView] inside a bubbletea program.
//
// The program's message loop is the UI thread: a [Dispatcher] registered
// with [platform.RegisterDispatch] queues callbacks from other goroutines
// and runs them from Update. Terminal focus drives the host lifecycle, so
// an adapter bound to [Model.Lifecycle] listens only while the terminal is
// focused.
package tui
