package sqlitejar

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleFormat is returned by Open when the path holds a file
	// that is not a cookie store. It is never repaired automatically.
	ErrIncompatibleFormat = errors.New("incompatible cookie store format")
	// ErrStorageRead reports an I/O or corruption failure while reading.
	ErrStorageRead = errors.New("cookie store read failed")
	// ErrStorageWrite reports a failed Save. The previous content is kept.
	ErrStorageWrite = errors.New("cookie store write failed")
	// ErrInvalidConfig rejects options the store refuses to support, before
	// any I/O is attempted.
	ErrInvalidConfig = errors.New("invalid cookie store configuration")
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("cookie store is closed")
)

// StoreError describes a failed store operation. errors.Is matches both the
// Kind sentinel and the underlying cause.
type StoreError struct {
	// Op is the operation that failed: "open", "load", "save", "count".
	Op string
	// Path is the store path.
	Path string
	// Kind is one of the package sentinels.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error: %s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("error: %s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func storeErr(op, path string, kind, err error) error {
	return &StoreError{Op: op, Path: path, Kind: kind, Err: err}
}
