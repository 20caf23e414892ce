// Package status defines the status vocabulary shared by every
// configuration operation.
//
// All engine failures are reported as Status codes rather than panics or
// process termination. A small set of sentinel errors mirrors the codes
// for package boundaries that deal in plain Go errors.
package status

import "errors"

// NoMatch is the index sentinel returned when token resolution fails.
// Every valid index is >= 0 and below the table length.
const NoMatch = -1

// Status is the result code of a configuration operation.
type Status uint8

const (
	// OK indicates the operation completed and changed or read state.
	OK Status = iota

	// Noop indicates nothing happened by design (e.g. a null accessor).
	Noop

	// InternalRangeError indicates dispatch on an index outside the
	// table bounds. Unlike the other codes this is a table-configuration
	// defect, not a user-input condition.
	InternalRangeError

	// ValueUnsupported indicates a range-checked setter rejected the
	// input. Backing state is unchanged.
	ValueUnsupported

	// BufferFull indicates the shared string arena is exhausted.
	BufferFull

	// UnrecognizedCommand indicates a group set was attempted outside
	// the structured protocol mode.
	UnrecognizedCommand

	// NoMatchError indicates token resolution failed.
	NoMatchError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Noop:
		return "noop"
	case InternalRangeError:
		return "internal range error"
	case ValueUnsupported:
		return "value unsupported"
	case BufferFull:
		return "buffer full"
	case UnrecognizedCommand:
		return "unrecognized command"
	case NoMatchError:
		return "no match"
	default:
		return "unknown"
	}
}

// Errors mirroring the status codes for callers that deal in errors.
var (
	// ErrInternalRange indicates dispatch on an out-of-bounds index.
	ErrInternalRange = errors.New("index out of table bounds")

	// ErrValueUnsupported indicates a rejected out-of-range value.
	ErrValueUnsupported = errors.New("value unsupported")

	// ErrBufferFull indicates the string arena is exhausted.
	ErrBufferFull = errors.New("string arena full")

	// ErrUnrecognizedCommand indicates a group set outside structured mode.
	ErrUnrecognizedCommand = errors.New("unrecognized command")

	// ErrNoMatch indicates token resolution failed.
	ErrNoMatch = errors.New("no matching parameter")

	// ErrListFull indicates the response list has no free node.
	ErrListFull = errors.New("response list full")
)

// Err maps a status to its sentinel error. OK and Noop map to nil.
func (s Status) Err() error {
	switch s {
	case OK, Noop:
		return nil
	case InternalRangeError:
		return ErrInternalRange
	case ValueUnsupported:
		return ErrValueUnsupported
	case BufferFull:
		return ErrBufferFull
	case UnrecognizedCommand:
		return ErrUnrecognizedCommand
	case NoMatchError:
		return ErrNoMatch
	default:
		return errors.New(s.String())
	}
}
