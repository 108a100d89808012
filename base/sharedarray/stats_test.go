package sharedarray

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) { //nolint:paralleltest // Counts package wide stats.
	before := GetStats()

	a := newTestArray(t, 1, 2, 3, 4, 5) // One reallocation.
	b := a.Clone()
	s, err := MakeSlice(a, 0, 1)
	require.NoError(t, err)
	require.ErrorIs(t, s.PushBack(1), ErrIllegalMutation)
	require.NoError(t, ReleaseAll(a, b))

	mid := GetStats()
	assert.Equal(t, before.StoresCreated+1, mid.StoresCreated)
	assert.Equal(t, before.StoresReleased, mid.StoresReleased, "slice still holds the store")
	assert.Equal(t, before.StoresLive+1, mid.StoresLive)
	assert.Equal(t, before.Reallocations+1, mid.Reallocations)
	assert.Equal(t, before.IllegalMutations+1, mid.IllegalMutations)

	require.NoError(t, s.Release())
	after := GetStats()
	assert.Equal(t, before.StoresReleased+1, after.StoresReleased)
	assert.Equal(t, before.StoresLive, after.StoresLive)

	buf := new(bytes.Buffer)
	WritePrometheus(buf)
	assert.Contains(t, buf.String(), "sharedarray_reallocations_total")
	assert.Contains(t, buf.String(), "sharedarray_stores_live")
}
