package sharedarray

import (
	"github.com/safing/sharedarray/base/log"
)

// store is the backing storage shared by all handles of an Array.
// The length of buf is the capacity of the store.
type store[T any] struct {
	buf  []T
	used int
	refs int
}

func newStore[T any](capacity int) *store[T] {
	storesCreated.Inc()
	return &store[T]{
		buf:  make([]T, capacity),
		refs: 1,
	}
}

// adoptStore creates a store around an existing buffer.
// The buffer is clipped so that it cannot grow into memory the caller owns.
func adoptStore[T any](buf []T) *store[T] {
	storesCreated.Inc()
	return &store[T]{
		buf:  buf[:len(buf):len(buf)],
		used: len(buf),
		refs: 1,
	}
}

// realloc moves the committed elements into a new buffer of the given
// capacity. Elements beyond used are not carried over.
func (s *store[T]) realloc(capacity int) {
	newBuf := make([]T, capacity)
	copy(newBuf, s.buf[:s.used])
	log.Tracef("sharedarray: reallocated store from capacity %d to %d (%d used, %d refs)", len(s.buf), capacity, s.used, s.refs)
	s.buf = newBuf
	reallocations.Inc()
}

func (s *store[T]) acquire() {
	s.refs++
}

func (s *store[T]) release() {
	s.refs--
	if s.refs > 0 {
		return
	}

	log.Tracef("sharedarray: releasing store with capacity %d", len(s.buf))
	s.buf = nil
	s.used = 0
	storesReleased.Inc()
}
