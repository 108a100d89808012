package sharedarray

import (
	"fmt"
	"iter"

	"golang.org/x/exp/slices"
)

// At returns the element at index i.
func (a *Array[T]) At(i int) (T, error) {
	if err := a.checkIndex("at", i); err != nil {
		var zero T
		return zero, err
	}
	return a.store.buf[a.offset+i], nil
}

// SetAt sets the element at index i.
func (a *Array[T]) SetAt(i int, v T) error {
	if err := a.checkIndex("set", i); err != nil {
		return err
	}
	a.store.buf[a.offset+i] = v
	return nil
}

func (a *Array[T]) checkIndex(op string, i int) error {
	switch {
	case a.store == nil:
		return fmt.Errorf("sharedarray: %s: %w", op, ErrReleased)
	case i < 0 || i >= a.length:
		return fmt.Errorf("sharedarray: %s: %w: index %d with length %d", op, ErrOutOfRange, i, a.length)
	}
	return nil
}

// Get returns the element at index i without checking it against the length.
// The caller must ensure that 0 <= i < Len().
func (a *Array[T]) Get(i int) T {
	return a.store.buf[a.offset+i]
}

// Set sets the element at index i without checking it against the length.
// The caller must ensure that 0 <= i < Len().
func (a *Array[T]) Set(i int, v T) {
	a.store.buf[a.offset+i] = v
}

// Front returns the first element. The array must not be empty.
func (a *Array[T]) Front() T {
	return a.store.buf[a.offset]
}

// Back returns the last element. The array must not be empty.
func (a *Array[T]) Back() T {
	return a.store.buf[a.offset+a.length-1]
}

// Data returns the visible elements as a slice of the shared buffer.
// Writes to the slice are seen by all handles. The capacity of the slice is
// clipped, so appending to it always copies.
//
// The slice is only shared until the store is reallocated by a growing or
// shrinking handle. After that it still holds the old elements, but no longer
// sees writes done through handles.
func (a *Array[T]) Data() []T {
	if a.store == nil {
		return nil
	}
	end := a.offset + a.length
	return a.store.buf[a.offset:end:end]
}

// ToSlice returns a copy of the visible elements.
func (a *Array[T]) ToSlice() []T {
	return slices.Clone(a.Data())
}

// All returns an iterator over the indexes and values of the visible
// elements, in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.length; i++ {
			if !yield(i, a.store.buf[a.offset+i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the visible elements, in order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.length; i++ {
			if !yield(a.store.buf[a.offset+i]) {
				return
			}
		}
	}
}

// Equal returns whether a and b hold the same elements.
func Equal[T comparable](a, b *Array[T]) bool {
	return slices.Equal(a.Data(), b.Data())
}
