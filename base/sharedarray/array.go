package sharedarray

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Array is a handle to a shared, growable array.
//
// An Array must not be copied by value, use Clone instead. The zero value is a
// detached handle, use New to create a usable one.
type Array[T any] struct {
	offset int
	length int
	store  *store[T]
}

// New returns an empty array with a fresh backing store.
func New[T any](opts ...Option) *Array[T] {
	o := buildOptions(opts)
	return &Array[T]{
		store: newStore[T](o.capacity),
	}
}

// From returns an array holding a copy of the given values.
// The capacity is the larger of the amount of values and the configured
// capacity.
func From[T any](values []T, opts ...Option) *Array[T] {
	o := buildOptions(opts)
	s := newStore[T](max(o.capacity, len(values)))
	copy(s.buf, values)
	s.used = len(values)
	return &Array[T]{
		length: len(values),
		store:  s,
	}
}

// Wrap returns an array that uses buf as its backing store. Data will NOT be
// copied. The array is the tail of the new store and may grow, at which point
// the elements are moved to a new buffer.
func Wrap[T any](buf []T) *Array[T] {
	return &Array[T]{
		length: len(buf),
		store:  adoptStore(buf),
	}
}

// Clone returns a new handle to the same store with the same window.
func (a *Array[T]) Clone() *Array[T] {
	if a.store != nil {
		a.store.acquire()
	}
	return &Array[T]{
		offset: a.offset,
		length: a.length,
		store:  a.store,
	}
}

// Assign makes a a handle to the store of other with the same window as other.
// The previous store reference of a is released.
func (a *Array[T]) Assign(other *Array[T]) {
	if a == other {
		return
	}

	// Acquire first, a and other may already share the store.
	if other.store != nil {
		other.store.acquire()
	}
	if a.store != nil {
		a.store.release()
	}
	a.offset = other.offset
	a.length = other.length
	a.store = other.store
}

// Move returns a new handle that takes over the store reference of a.
// a is detached afterwards and must not be used anymore.
func (a *Array[T]) Move() *Array[T] {
	moved := &Array[T]{
		offset: a.offset,
		length: a.length,
		store:  a.store,
	}
	a.detach()
	return moved
}

// MoveFrom releases the store reference of a and takes over the store
// reference of other. other is detached afterwards and must not be used anymore.
func (a *Array[T]) MoveFrom(other *Array[T]) {
	if a == other {
		return
	}

	if a.store != nil {
		a.store.release()
	}
	a.offset = other.offset
	a.length = other.length
	a.store = other.store
	other.detach()
}

// Release drops the store reference of a. The store is released when its last
// handle is released. a is detached afterwards.
func (a *Array[T]) Release() error {
	if a.store == nil {
		return fmt.Errorf("sharedarray: release: %w", ErrReleased)
	}

	a.store.release()
	a.detach()
	return nil
}

// ReleaseAll releases all given arrays and returns the errors of all handles
// that could not be released.
func ReleaseAll[T any](arrays ...*Array[T]) error {
	var errs *multierror.Error
	for i, a := range arrays {
		if a == nil {
			continue
		}
		if err := a.Release(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("array %d: %w", i, err))
		}
	}
	return errs.ErrorOrNil()
}

func (a *Array[T]) detach() {
	a.offset = 0
	a.length = 0
	a.store = nil
}

// Refs returns the amount of handles that share the store of a.
func (a *Array[T]) Refs() int {
	if a.store == nil {
		return 0
	}
	return a.store.refs
}

// SharesStore returns whether a and other are handles to the same store.
func (a *Array[T]) SharesStore(other *Array[T]) bool {
	return a.store != nil && a.store == other.store
}

// IsTail returns whether a is the tail of its store and may therefore change
// the size and capacity of the store.
func (a *Array[T]) IsTail() bool {
	return a.store != nil && a.offset+a.length == a.store.used
}
