// Package container gives you a []byte slice on steroids, allowing for quick data appending, prepending and fetching.
//
// A Container is a list of shared byte arrays (see package sharedarray). New data is added as a new compartment and only copied around when necessary.
//
// Byte slices added to the Container are not changed or appended, to not corrupt any other data that may be before and after the given slice.
// Every compartment is clipped to the length of the data it was created from, so growing it always moves the data to a new buffer.
// If interested, consider the following example to understand why this is important:
//
//	package main
//
//	import (
//		"fmt"
//	)
//
//	func main() {
//		a := []byte{0, 1,2,3,4,5,6,7,8,9}
//		fmt.Printf("a: %+v\n", a)
//		fmt.Printf("\nmaking changes...\n(we are not changing a directly)\n\n")
//		b := a[2:6]
//		c := append(b, 10, 11)
//		fmt.Printf("b: %+v\n", b)
//		fmt.Printf("c: %+v\n", c)
//		fmt.Printf("a: %+v\n", a)
//	}
//
// Peeking at a part of a compartment returns a slice of the shared array instead of a copy.
// Consuming a part of a compartment replaces it with such a slice and releases the previous handle.
package container
