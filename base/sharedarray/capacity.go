package sharedarray

import (
	"fmt"
	"math"

	"github.com/safing/sharedarray/base/log"
)

// Len returns the amount of visible elements.
func (a *Array[T]) Len() int {
	return a.length
}

// Empty returns whether the array has no visible elements.
func (a *Array[T]) Empty() bool {
	return a.length == 0
}

// Cap returns the amount of elements the array can hold without reallocating.
// Handles that are not the tail cannot grow, so their capacity is their length.
func (a *Array[T]) Cap() int {
	switch {
	case a.store == nil:
		return 0
	case a.IsTail():
		return len(a.store.buf) - a.offset
	default:
		return a.length
	}
}

// MaxLen returns the maximum length the array could grow to.
// Handles that are not the tail cannot grow, so this is their length.
func (a *Array[T]) MaxLen() int {
	switch {
	case a.store == nil:
		return 0
	case a.IsTail():
		return math.MaxInt
	default:
		return a.length
	}
}

// checkMutation checks if a may change the size or capacity of its store.
func (a *Array[T]) checkMutation(op string) error {
	switch {
	case a.store == nil:
		return fmt.Errorf("sharedarray: %s: %w", op, ErrReleased)
	case !a.IsTail():
		illegalMutations.Inc()
		log.Debugf(
			"sharedarray: refused %s on view [%d:%d] of store with %d used elements",
			op, a.offset, a.offset+a.length, a.store.used,
		)
		return fmt.Errorf("sharedarray: %s: %w", op, ErrIllegalMutation)
	}
	return nil
}

func checkSize(op string, n int) error {
	if n < 0 {
		return fmt.Errorf("sharedarray: %s: %w: negative size %d", op, ErrOutOfRange, n)
	}
	return nil
}

// Reserve ensures that Cap() is at least n. If the store must grow, it grows
// to exactly n elements after the offset of a. The length is not changed.
func (a *Array[T]) Reserve(n int) error {
	if err := a.checkMutation("reserve"); err != nil {
		return err
	}
	if err := checkSize("reserve", n); err != nil {
		return err
	}

	a.reserve(n)
	return nil
}

func (a *Array[T]) reserve(n int) {
	if a.offset+n > len(a.store.buf) {
		a.store.realloc(a.offset + n)
	}
}

// ShrinkToFit reallocates the store to exactly the amount of used elements.
func (a *Array[T]) ShrinkToFit() error {
	if err := a.checkMutation("shrink"); err != nil {
		return err
	}

	if len(a.store.buf) != a.store.used {
		a.store.realloc(a.store.used)
	}
	return nil
}

// Clear empties the array and the store. Any offset of a is dropped.
// Elements are not zeroed.
func (a *Array[T]) Clear() error {
	if err := a.checkMutation("clear"); err != nil {
		return err
	}

	a.offset = 0
	a.length = 0
	a.store.used = 0
	return nil
}

// PushBack appends v. If the capacity is exhausted, it is doubled.
func (a *Array[T]) PushBack(v T) error {
	if err := a.checkMutation("push"); err != nil {
		return err
	}

	if c := a.Cap(); c < a.length+1 {
		a.reserve(max(2*c, a.length+1))
	}

	a.store.buf[a.offset+a.length] = v
	a.length++
	a.store.used = a.offset + a.length
	return nil
}

// Resize sets the length to n, growing the store if needed.
//
// New elements are not initialized: after shrinking and growing again, the
// previous elements are visible again. Elements that were never written since
// the last reallocation hold the zero value.
func (a *Array[T]) Resize(n int) error {
	if err := a.checkMutation("resize"); err != nil {
		return err
	}
	if err := checkSize("resize", n); err != nil {
		return err
	}

	if a.Cap() < n {
		a.reserve(n)
	}

	a.length = n
	a.store.used = a.offset + a.length
	return nil
}
