package sharedarray

import "fmt"

// MakeSlice returns a new handle to the store of src that shows the elements
// src[first:last]. Data will NOT be copied.
//
// The slice is only the tail of the store if it reaches to the end of src and
// src is the tail. All other slices are read-only views.
func MakeSlice[T any](src *Array[T], first, last int) (*Array[T], error) {
	switch {
	case src.store == nil:
		return nil, fmt.Errorf("sharedarray: slice: %w", ErrReleased)
	case first < 0 || last > src.length || first > last:
		return nil, fmt.Errorf(
			"sharedarray: slice: %w: [%d:%d] with length %d",
			ErrOutOfRange, first, last, src.length,
		)
	}

	s := src.Clone()
	s.offset = src.offset + first
	s.length = last - first
	return s, nil
}
