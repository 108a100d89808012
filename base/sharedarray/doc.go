// Package sharedarray provides a growable, random-access array that can be
// shared between multiple handles without copying its backing storage.
//
// An Array is a handle: a window (offset and length) into a backing store that
// is shared by reference counting. Clone creates a second handle with the same
// window, MakeSlice creates a handle with a narrower window. Neither copies any
// elements.
//
// Only the tail handle may change the size or capacity of the store. A handle
// is the tail if its window ends exactly where the committed elements of the
// store end. All other handles are read-only views, and size changing calls on
// them fail with ErrIllegalMutation:
//
//	a := sharedarray.New[int]()
//	_ = a.PushBack(1)
//	_ = a.PushBack(2)
//	_ = a.PushBack(3)
//
//	s, _ := sharedarray.MakeSlice(a, 0, 2) // [1 2], shares a's store
//	err := s.PushBack(4)                   // ErrIllegalMutation: s is not the tail
//	err = a.PushBack(4)                    // ok, s still reads [1 2]
//
// The buffer itself is owned by the store, so a reallocation done through the
// tail handle is seen by every other handle immediately. Only slices returned
// by Data keep pointing at the old buffer after a reallocation.
//
// Go has no destructors: call Release when a handle is not needed anymore.
// The store is released exactly once, when its last handle is released.
//
// Arrays are not safe for concurrent use. All handles of one store must be
// used from a single goroutine, or be synchronized externally.
package sharedarray
