package container

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/safing/sharedarray/base/sharedarray"
)

var (
	testData         = []byte("The quick brown fox jumps over the lazy dog")
	testDataSplitted = [][]byte{
		[]byte("T"),
		[]byte("he"),
		[]byte(" qu"),
		[]byte("ick "),
		[]byte("brown"),
		[]byte(" fox j"),
		[]byte("umps ov"),
		[]byte("er the l"),
		[]byte("azy dog"),
	}
)

func TestContainerDataHandling(t *testing.T) {
	t.Parallel()

	c1 := New(slices.Clone(testData))
	c1c := c1.carbonCopy()

	c2 := New()
	for range len(testData) {
		oneByte := make([]byte, 1)
		c1c.WriteToSlice(oneByte)
		c2.Append(oneByte)
	}
	c2c := c2.carbonCopy()

	c3 := New()
	for i := len(c2c.compartments) - 1; i >= c2c.offset; i-- {
		c3.PrependArray(c2c.compartments[i])
	}
	c3c := c3.carbonCopy()

	d4 := make([]byte, len(testData)*2)
	n, _ := c3c.WriteToSlice(d4)
	d4 = d4[:n]
	c3c = c3.carbonCopy()

	d5 := make([]byte, len(testData))
	for i := range len(testData) {
		c3c.WriteToSlice(d5[i : i+1])
	}

	c6 := New()
	c6.Replace(testData)

	c7 := New(testDataSplitted[0])
	for i := 1; i < len(testDataSplitted); i++ {
		c7.Append(testDataSplitted[i])
	}

	c8 := New(testDataSplitted...)
	for range 110 {
		c8.Prepend(nil)
	}
	c8.clean()

	c9 := c8.PeekContainer(len(testData))

	c10 := c9.PeekContainer(len(testData) - 1)
	c10.Append(testData[len(testData)-1:])

	compareMany(t, testData, c1.CompileData(), c2.CompileData(), c3.CompileData(), d4, d5, c6.CompileData(), c7.CompileData(), c8.CompileData(), c9.CompileData(), c10.CompileData())
}

func compareMany(t *testing.T, reference []byte, other ...[]byte) {
	t.Helper()

	for i, cmp := range other {
		if !bytes.Equal(reference, cmp) {
			t.Errorf("sample %d does not match reference: sample is '%s'", i+1, string(cmp))
		}
	}
}

func TestDataFetching(t *testing.T) {
	t.Parallel()

	c1 := New(slices.Clone(testData))
	data := c1.GetMax(1)
	if string(data[0]) != "T" {
		t.Errorf("failed to GetMax(1), got %s, expected %s", string(data), "T")
	}

	_, err := c1.Get(1000)
	if err == nil {
		t.Error("should fail")
	}

	_, err = c1.GetAsContainer(1000)
	if err == nil {
		t.Error("should fail")
	}

	if !bytes.Equal(c1.GetAll(), testData[1:]) {
		t.Error("GetAll should return the remaining data")
	}
	if c1.HoldsData() {
		t.Error("container should be empty")
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	c1 := New(slices.Clone(testData))
	c1.PrependLength()

	n, err := c1.GetNextN8()
	if err != nil {
		t.Errorf("GetNextN8() failed: %s", err)
	}
	if n != 43 {
		t.Errorf("n should be 43, was %d", n)
	}
	c1.PrependLength()

	n2, err := c1.GetNextN16()
	if err != nil {
		t.Errorf("GetNextN16() failed: %s", err)
	}
	if n2 != 43 {
		t.Errorf("n should be 43, was %d", n2)
	}
	c1.PrependLength()

	n3, err := c1.GetNextN32()
	if err != nil {
		t.Errorf("GetNextN32() failed: %s", err)
	}
	if n3 != 43 {
		t.Errorf("n should be 43, was %d", n3)
	}
	c1.PrependLength()

	n4, err := c1.GetNextN64()
	if err != nil {
		t.Errorf("GetNextN64() failed: %s", err)
	}
	if n4 != 43 {
		t.Errorf("n should be 43, was %d", n4)
	}
}

func TestContainerBlockHandling(t *testing.T) {
	t.Parallel()

	c1 := New(slices.Clone(testData))
	c1.PrependLength()
	c1.AppendAsBlock(testData)
	c1c := c1.carbonCopy()

	c2 := New(nil)
	for range c1.Length() {
		oneByte := make([]byte, 1)
		c1c.WriteToSlice(oneByte)
		c2.Append(oneByte)
	}

	c3 := New(testDataSplitted[0])
	for i := 1; i < len(testDataSplitted); i++ {
		c3.Append(testDataSplitted[i])
	}
	c3.PrependLength()

	d1, err := c1.GetNextBlock()
	if err != nil {
		t.Errorf("GetNextBlock failed: %s", err)
	}
	d2, err := c1.GetNextBlock()
	if err != nil {
		t.Errorf("GetNextBlock failed: %s", err)
	}
	d3, err := c2.GetNextBlock()
	if err != nil {
		t.Errorf("GetNextBlock failed: %s", err)
	}
	d4, err := c2.GetNextBlock()
	if err != nil {
		t.Errorf("GetNextBlock failed: %s", err)
	}
	d5, err := c3.GetNextBlock()
	if err != nil {
		t.Errorf("GetNextBlock failed: %s", err)
	}

	compareMany(t, testData, d1, d2, d3, d4, d5)
}

func TestContainerMisc(t *testing.T) {
	t.Parallel()

	c1 := New()
	d1 := c1.CompileData()
	if len(d1) > 0 {
		t.Fatalf("empty container should not hold any data")
	}
}

func TestPeekDoesNotCopy(t *testing.T) {
	t.Parallel()

	data := []byte("hello world")
	c := New(data)

	p := c.Peek(5)
	require.Equal(t, []byte("hello"), p)
	p[0] = 'H'
	assert.Equal(t, byte('H'), data[0], "peek should return shared data")

	pc := c.PeekContainer(5)
	require.NotNil(t, pc)
	require.Len(t, pc.compartments, 1)
	assert.True(t, pc.compartments[0].SharesStore(c.compartments[c.offset]))
	assert.Equal(t, 2, c.compartments[c.offset].Refs())
	assert.Equal(t, []byte("Hello"), pc.CompileData())

	require.NoError(t, pc.Release())
	assert.Equal(t, 1, c.compartments[c.offset].Refs())
	assert.Nil(t, c.PeekContainer(-1))
	assert.Nil(t, c.PeekContainer(100))
	assert.Equal(t, 1, c.compartments[c.offset].Refs(), "failed peek must release its handles")
}

func TestConsumeUsesSlices(t *testing.T) {
	t.Parallel()

	c := New([]byte("0123456789"))
	first := c.compartments[c.offset]
	keep := first.Clone()

	got, err := c.Get(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("012"), got)

	rest := c.compartments[c.offset]
	assert.True(t, rest.SharesStore(keep), "rest should be a slice of the same store")
	assert.Equal(t, 7, rest.Len())
	assert.Equal(t, 2, keep.Refs())

	block, err := c.GetAsContainer(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("3456"), block.CompileData())
	assert.Equal(t, []byte("789"), c.GetAll())
	assert.False(t, c.HoldsData())

	require.NoError(t, block.Release())
	assert.Equal(t, 1, keep.Refs(), "only the extra handle should be left")
}

func TestAppendArray(t *testing.T) {
	t.Parallel()

	a := sharedarray.From([]byte("abc"))
	c := New()
	c.AppendArray(a)
	c.Append([]byte("!"))

	// Growing the array through its own handle does not change the view of
	// the container, but element writes are shared, even after reallocation.
	for _, b := range []byte("defgh") {
		require.NoError(t, a.PushBack(b))
	}
	require.NoError(t, a.SetAt(1, 'B'))

	buf := new(bytes.Buffer)
	require.NoError(t, c.WriteAllTo(buf))
	assert.Equal(t, "aBc!", buf.String())

	// The container is not allowed to grow the array.
	assert.False(t, c.compartments[c.offset].IsTail())

	c2 := New()
	c2.AppendContainerAsBlock(c)
	block, err := c2.GetNextBlockAsContainer()
	require.NoError(t, err)
	assert.Equal(t, []byte("aBc!"), block.CompileData())

	require.NoError(t, c.Release())
	require.NoError(t, c.Release())
}

func TestAppendNumbers(t *testing.T) {
	t.Parallel()

	c := New()
	c.AppendInt(300)
	c.AppendNumber(7)
	c.PrependInt(1)
	c.PrependNumber(70000)
	c.PrependAsBlock([]byte("x"))

	block, err := c.GetNextBlock()
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), block)
	for _, expected := range []uint64{70000, 1, 300, 7} {
		n, err := c.GetNextN64()
		require.NoError(t, err)
		assert.Equal(t, expected, n)
	}
	_, err = c.GetNextN64()
	require.Error(t, err)
}

func TestSerialization(t *testing.T) {
	t.Parallel()

	c := New(testDataSplitted...)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	c2 := New([]byte("old"))
	require.NoError(t, json.Unmarshal(data, c2))
	assert.Equal(t, testData, c2.CompileData())
}
