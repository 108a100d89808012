package container

import (
	"errors"
	"io"

	"github.com/safing/structures/varint"

	"github.com/safing/sharedarray/base/sharedarray"
)

// Container is []byte slice on steroids, allowing for quick data appending, prepending and fetching.
// Every compartment is a handle to a shared array, so peeking and partially
// consuming data never copies it.
type Container struct {
	compartments []*sharedarray.Array[byte]
	offset       int
}

// Data Handling

// New creates a new container with an optional initial []byte slice. Data will NOT be copied.
func New(data ...[]byte) *Container {
	c := &Container{
		compartments: make([]*sharedarray.Array[byte], 0, len(data)),
	}
	for _, d := range data {
		c.compartments = append(c.compartments, sharedarray.Wrap(d))
	}
	return c
}

// Prepend prepends data. Data will NOT be copied.
func (c *Container) Prepend(data []byte) {
	c.prependArray(sharedarray.Wrap(data))
}

// PrependArray prepends the visible data of the given array. The array handle
// is cloned, data will NOT be copied.
func (c *Container) PrependArray(a *sharedarray.Array[byte]) {
	c.prependArray(a.Clone())
}

func (c *Container) prependArray(a *sharedarray.Array[byte]) {
	if c.offset < 1 {
		c.renewCompartments()
	}
	c.offset--
	c.compartments[c.offset] = a
}

// Append appends the given data. Data will NOT be copied.
func (c *Container) Append(data []byte) {
	c.compartments = append(c.compartments, sharedarray.Wrap(data))
}

// AppendArray appends the visible data of the given array. The array handle is
// cloned, data will NOT be copied. Later writes to the elements of the array
// are seen by the container.
func (c *Container) AppendArray(a *sharedarray.Array[byte]) {
	c.compartments = append(c.compartments, a.Clone())
}

// PrependNumber prepends a number (varint encoded).
func (c *Container) PrependNumber(n uint64) {
	c.Prepend(varint.Pack64(n))
}

// AppendNumber appends a number (varint encoded).
func (c *Container) AppendNumber(n uint64) {
	c.Append(varint.Pack64(n))
}

// PrependInt prepends an int (varint encoded).
func (c *Container) PrependInt(n int) {
	c.Prepend(varint.Pack64(uint64(n)))
}

// AppendInt appends an int (varint encoded).
func (c *Container) AppendInt(n int) {
	c.Append(varint.Pack64(uint64(n)))
}

// AppendAsBlock appends the length of the data and the data itself. Data will NOT be copied.
func (c *Container) AppendAsBlock(data []byte) {
	c.AppendNumber(uint64(len(data)))
	c.Append(data)
}

// PrependAsBlock prepends the length of the data and the data itself. Data will NOT be copied.
func (c *Container) PrependAsBlock(data []byte) {
	c.Prepend(data)
	c.PrependNumber(uint64(len(data)))
}

// AppendContainer appends another Container. Data will NOT be copied.
func (c *Container) AppendContainer(data *Container) {
	for i := data.offset; i < len(data.compartments); i++ {
		c.AppendArray(data.compartments[i])
	}
}

// AppendContainerAsBlock appends another Container (length and data). Data will NOT be copied.
func (c *Container) AppendContainerAsBlock(data *Container) {
	c.AppendNumber(uint64(data.Length()))
	c.AppendContainer(data)
}

// HoldsData returns true if the Container holds any data.
func (c *Container) HoldsData() bool {
	for i := c.offset; i < len(c.compartments); i++ {
		if !c.compartments[i].Empty() {
			return true
		}
	}
	return false
}

// Length returns the full length of all bytes held by the container.
func (c *Container) Length() (length int) {
	for i := c.offset; i < len(c.compartments); i++ {
		length += c.compartments[i].Len()
	}
	return
}

// Replace replaces all held data with a new data slice. Data will NOT be copied.
func (c *Container) Replace(data []byte) {
	_ = c.Release()
	c.compartments = []*sharedarray.Array[byte]{sharedarray.Wrap(data)}
}

// Release releases all held array handles and empties the container.
func (c *Container) Release() error {
	err := sharedarray.ReleaseAll(c.compartments[c.offset:]...)
	c.compartments = nil
	c.offset = 0
	return err
}

// CompileData concatenates all bytes held by the container and returns it as one single []byte slice. Data will NOT be copied and is NOT consumed.
func (c *Container) CompileData() []byte {
	if len(c.compartments)-c.offset != 1 {
		compiled := sharedarray.New[byte](sharedarray.WithCapacity(c.Length()))
		_ = compiled.Resize(c.Length())
		copyBuf := compiled.Data()
		for i := c.offset; i < len(c.compartments); i++ {
			copy(copyBuf, c.compartments[i].Data())
			copyBuf = copyBuf[c.compartments[i].Len():]
		}
		_ = c.Release()
		c.compartments = []*sharedarray.Array[byte]{compiled}
	}
	return c.compartments[c.offset].Data()
}

// Get returns the given amount of bytes. Data MAY be copied and IS consumed.
func (c *Container) Get(n int) ([]byte, error) {
	buf := c.Peek(n)
	if len(buf) < n {
		return nil, errors.New("container: not enough data to return")
	}
	c.skip(len(buf))
	return buf, nil
}

// GetAll returns all data. Data MAY be copied and IS consumed.
func (c *Container) GetAll() []byte {
	buf := c.Peek(c.Length())
	c.skip(len(buf))
	return buf
}

// GetAsContainer returns the given amount of bytes in a new container. Data will NOT be copied and IS consumed.
func (c *Container) GetAsContainer(n int) (*Container, error) {
	newC := c.PeekContainer(n)
	if newC == nil {
		return nil, errors.New("container: not enough data to return")
	}
	c.skip(n)
	return newC, nil
}

// GetMax returns as much as possible, but the given amount of bytes at maximum. Data MAY be copied and IS consumed.
func (c *Container) GetMax(n int) []byte {
	buf := c.Peek(n)
	c.skip(len(buf))
	return buf
}

// WriteToSlice copies data to the give slice until it is full, or the container is empty. It returns the bytes written and if the container is now empty. Data IS copied and IS consumed.
func (c *Container) WriteToSlice(slice []byte) (n int, containerEmptied bool) {
	for i := c.offset; i < len(c.compartments); i++ {
		n += copy(slice[n:], c.compartments[i].Data())
		if n == len(slice) {
			break
		}
	}
	c.skip(n)
	return n, !c.HoldsData()
}

// WriteAllTo writes all the data to the given io.Writer. Data IS NOT copied (but may be by writer) and IS NOT consumed.
func (c *Container) WriteAllTo(writer io.Writer) error {
	for i := c.offset; i < len(c.compartments); i++ {
		data := c.compartments[i].Data()
		written := 0
		for written < len(data) {
			n, err := writer.Write(data[written:])
			if err != nil {
				return err
			}
			written += n
		}
	}
	return nil
}

func (c *Container) clean() {
	if c.offset > 100 {
		c.renewCompartments()
	}
}

func (c *Container) renewCompartments() {
	baseLength := len(c.compartments) - c.offset + 5
	newCompartments := make([]*sharedarray.Array[byte], baseLength, baseLength+5)
	copy(newCompartments[5:], c.compartments[c.offset:])
	c.compartments = newCompartments
	c.offset = 5
}

func (c *Container) carbonCopy() *Container {
	newC := &Container{
		compartments: make([]*sharedarray.Array[byte], len(c.compartments)),
		offset:       c.offset,
	}
	for i := c.offset; i < len(c.compartments); i++ {
		newC.compartments[i] = c.compartments[i].Clone()
	}
	return newC
}

func (c *Container) checkOffset() {
	if c.offset >= len(c.compartments) {
		c.compartments = c.compartments[:0]
		c.offset = 0
	}
}

// Block Handling

// PrependLength prepends the current full length of all bytes in the container.
func (c *Container) PrependLength() {
	c.Prepend(varint.Pack64(uint64(c.Length())))
}

// Peek returns the given amount of bytes. Data MAY be copied and IS NOT consumed.
func (c *Container) Peek(n int) []byte {
	// Check requested length.
	if n <= 0 || c.offset >= len(c.compartments) {
		return nil
	}

	// Check if the first compartment holds enough data.
	if first := c.compartments[c.offset].Data(); len(first) >= n {
		return first[:n]
	}

	// Start gathering data.
	slice := make([]byte, n)
	n = 0
	for i := c.offset; i < len(c.compartments); i++ {
		n += copy(slice[n:], c.compartments[i].Data())
		if n == len(slice) {
			break
		}
	}
	return slice[:n]
}

// PeekContainer returns the given amount of bytes in a new container. Data will NOT be copied and IS NOT consumed.
func (c *Container) PeekContainer(n int) (newC *Container) {
	// Check requested length.
	if n < 0 {
		return nil
	} else if n == 0 {
		return &Container{}
	}

	newC = &Container{}
	for i := c.offset; i < len(c.compartments) && n > 0; i++ {
		compartment := c.compartments[i]
		if n >= compartment.Len() {
			newC.compartments = append(newC.compartments, compartment.Clone())
			n -= compartment.Len()
			continue
		}

		part, err := sharedarray.MakeSlice(compartment, 0, n)
		if err != nil {
			_ = newC.Release()
			return nil
		}
		newC.compartments = append(newC.compartments, part)
		n = 0
	}
	if n > 0 {
		_ = newC.Release()
		return nil
	}
	return newC
}

func (c *Container) skip(n int) {
	for i := c.offset; i < len(c.compartments) && n > 0; i++ {
		compartment := c.compartments[i]
		if compartment.Len() <= n {
			n -= compartment.Len()
			_ = compartment.Release()
			c.compartments[i] = nil
			c.offset = i + 1
			continue
		}

		rest, err := sharedarray.MakeSlice(compartment, n, compartment.Len())
		if err != nil {
			// Cannot happen, n is within the compartment.
			break
		}
		_ = compartment.Release()
		c.compartments[i] = rest
		n = 0
	}

	// Drop empty compartments at the front.
	for c.offset < len(c.compartments) && c.compartments[c.offset].Empty() {
		_ = c.compartments[c.offset].Release()
		c.compartments[c.offset] = nil
		c.offset++
	}
	c.checkOffset()
}

// GetNextBlock returns the next block of data defined by a varint. Data MAY be copied and IS consumed.
func (c *Container) GetNextBlock() ([]byte, error) {
	blockSize, err := c.GetNextN64()
	if err != nil {
		return nil, err
	}
	return c.Get(int(blockSize))
}

// GetNextBlockAsContainer returns the next block of data as a Container defined by a varint. Data will NOT be copied and IS consumed.
func (c *Container) GetNextBlockAsContainer() (*Container, error) {
	blockSize, err := c.GetNextN64()
	if err != nil {
		return nil, err
	}
	return c.GetAsContainer(int(blockSize))
}

// GetNextN8 parses and returns a varint of type uint8.
func (c *Container) GetNextN8() (uint8, error) {
	buf := c.Peek(2)
	num, n, err := varint.Unpack8(buf)
	if err != nil {
		return 0, err
	}
	c.skip(n)
	return num, nil
}

// GetNextN16 parses and returns a varint of type uint16.
func (c *Container) GetNextN16() (uint16, error) {
	buf := c.Peek(3)
	num, n, err := varint.Unpack16(buf)
	if err != nil {
		return 0, err
	}
	c.skip(n)
	return num, nil
}

// GetNextN32 parses and returns a varint of type uint32.
func (c *Container) GetNextN32() (uint32, error) {
	buf := c.Peek(5)
	num, n, err := varint.Unpack32(buf)
	if err != nil {
		return 0, err
	}
	c.skip(n)
	return num, nil
}

// GetNextN64 parses and returns a varint of type uint64.
func (c *Container) GetNextN64() (uint64, error) {
	buf := c.Peek(10)
	num, n, err := varint.Unpack64(buf)
	if err != nil {
		return 0, err
	}
	c.skip(n)
	return num, nil
}
