// Package errors provides structured error handling for list bindings.
//
// Recoverable failures (a cancelled listener, a snapshot that cannot be
// parsed) are sent to the global [ErrorHandler] through [Report]. Programming
// errors, such as an unknown change event or a view holder factory that
// fails, panic with an [*Error] so the stack points at the caller.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindListen indicates the data source cancelled or failed a listener.
	KindListen
	// KindParsing indicates a snapshot could not be converted to a model.
	KindParsing
	// KindContract indicates a caller broke an API contract.
	KindContract
	// KindConstruction indicates a view holder could not be created.
	KindConstruction
)

func (k ErrorKind) String() string {
	switch k {
	case KindListen:
		return "listen"
	case KindParsing:
		return "parsing"
	case KindContract:
		return "contract"
	case KindConstruction:
		return "construction"
	default:
		return "unknown"
	}
}

// Error represents a structured error raised by a list binding.
type Error struct {
	// Op is the operation that failed (e.g., "listbinding.OnCancelled").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Source names the collection or query involved, if known.
	Source string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %v", e.Op, e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "tui.view").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to convert a snapshot into a model value.
type ParseError struct {
	// Key is the key of the snapshot that failed to parse.
	Key string
	// DataType is the expected type name.
	DataType string
	// Err is the decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from snapshot %s: %v", e.DataType, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by list bindings.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
