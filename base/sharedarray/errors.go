package sharedarray

import "errors"

var (
	// ErrOutOfRange is returned when an index, a slice bound or a size lies
	// outside of the valid range.
	ErrOutOfRange = errors.New("out of range")

	// ErrIllegalMutation is returned when a handle that is not the tail of its
	// store tries to change the size or capacity of the store.
	ErrIllegalMutation = errors.New("illegal mutation: handle is not the tail of its store")

	// ErrReleased is returned when a handle is used after it was released or
	// moved from.
	ErrReleased = errors.New("handle was released")
)
