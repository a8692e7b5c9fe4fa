package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcess(t *testing.T, base Address, data []byte) *StaticProcess {
	t.Helper()
	p := NewStaticProcess()
	_, ok := p.Map("test", base, data)
	require.True(t, ok)
	return p
}

func TestSnapshotUpdateAndTypedReads(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x00, // float 1.0 in the low half
		0x2A, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, // int32 42, int32 -1
		'h', 'i', 0x00, 0x7F,
	}
	p := newTestProcess(t, 0x1000, data)

	snap := NewSnapshot(p)
	snap.SetSize(len(data))
	require.NoError(t, snap.Update(0x1000))

	assert.True(t, snap.Valid())
	assert.Equal(t, Address(0x1000), snap.Address())
	assert.Equal(t, len(data), snap.Len())
	assert.InDelta(t, 1.0, snap.ReadFloat32(0), 0)
	assert.Equal(t, int32(42), snap.ReadInt32(8))
	assert.Equal(t, int32(-1), snap.ReadInt32(12))
	assert.Equal(t, uint16(0x6968), snap.ReadUInt16(16))
	assert.Equal(t, "hi..", snap.ReadPrintableASCII(16, 4))
	assert.False(t, snap.UpdatedAt().IsZero())
}

func TestSnapshotOutOfBoundsReadsAreZero(t *testing.T) {
	p := newTestProcess(t, 0x1000, make([]byte, 8))
	snap := NewSnapshot(p)
	snap.SetSize(8)
	require.NoError(t, snap.Update(0x1000))

	assert.Equal(t, uint64(0), snap.ReadUInt64(4))
	assert.False(t, snap.IsValidOffset(4, 8))
	assert.False(t, snap.IsValidOffset(-1, 1))

	_, ok := snap.ReadValue64(1)
	assert.False(t, ok)

	assert.Equal(t, "....", snap.ReadPrintableASCII(100, 4))
}

func TestSnapshotPartiallyUnmappedWindow(t *testing.T) {
	// One mapped page followed by a hole.
	page := make([]byte, PageSize)
	page[0] = 0xAB
	p := newTestProcess(t, 0x10000, page)

	snap := NewSnapshot(p)
	snap.SetSize(PageSize + 16)
	err := snap.Update(0x10000)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmapped))
	assert.False(t, snap.Valid())
	assert.Equal(t, uint8(0xAB), snap.ReadUInt8(0), "readable page is kept")
	assert.True(t, snap.IsValidOffset(0, 8))
	assert.False(t, snap.IsValidOffset(PageSize, 8), "hole is flagged invalid")
	assert.False(t, snap.IsValidOffset(PageSize-4, 8), "straddling read is invalid")
}

func TestSnapshotSectionEndingMidPage(t *testing.T) {
	p := newTestProcess(t, 0x1000, []byte{0x41, 0x42, 0x43, 0x44})
	_, ok := p.Map("tail", 0x100C, []byte{0x10, 0x20, 0x30, 0x40})
	require.True(t, ok)

	snap := NewSnapshot(p)
	snap.SetSize(16)
	err := snap.Update(0x1000)

	assert.ErrorIs(t, err, ErrUnmapped)
	assert.True(t, snap.IsValidOffset(0, 4), "mapped head keeps its bytes")
	assert.Equal(t, uint32(0x44434241), snap.ReadUInt32(0))
	assert.False(t, snap.IsValidOffset(4, 1))
	assert.False(t, snap.IsValidOffset(11, 1))
	assert.True(t, snap.IsValidOffset(12, 4), "section after the gap is read")
	assert.Equal(t, uint32(0x40302010), snap.ReadUInt32(12))
}

// unlistedProcess hides Sections so gaps are stepped over byte by byte.
type unlistedProcess struct{ Process }

func TestSnapshotGapWithoutSectionList(t *testing.T) {
	static := newTestProcess(t, 0x1000, []byte{1, 2})
	_, ok := static.Map("tail", 0x1005, []byte{9})
	require.True(t, ok)

	snap := NewSnapshot(unlistedProcess{static})
	snap.SetSize(6)
	require.ErrorIs(t, snap.Update(0x1000), ErrUnmapped)

	assert.True(t, snap.IsValidOffset(0, 2))
	assert.False(t, snap.IsValidOffset(2, 3))
	assert.True(t, snap.IsValidOffset(5, 1))
	assert.Equal(t, uint8(9), snap.ReadUInt8(5))
}

func TestSnapshotWindowIsCapped(t *testing.T) {
	p := newTestProcess(t, 0x1000, make([]byte, 16))
	snap := NewSnapshot(p)
	snap.SetSize(MaxWindow + 1)

	err := snap.Update(0x1000)
	assert.ErrorIs(t, err, ErrUnmapped)
	assert.Equal(t, MaxWindow, snap.Len())
	assert.True(t, snap.IsValidOffset(0, 16))

	snap.SetSize(1 << 62)
	assert.NotPanics(t, func() { _ = snap.Update(0x1000) })
	assert.Equal(t, MaxWindow, snap.Len())
}

func TestSnapshotWindowCapReported(t *testing.T) {
	p := newTestProcess(t, 0x1000, make([]byte, MaxWindow))
	snap := NewSnapshot(p)
	snap.SetSize(MaxWindow + 8)

	err := snap.Update(0x1000)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.True(t, snap.IsValidOffset(MaxWindow-8, 8))
}

func TestSnapshotClosedProcess(t *testing.T) {
	p := newTestProcess(t, 0x1000, make([]byte, 16))
	require.NoError(t, p.Close())

	snap := NewSnapshot(p)
	snap.SetSize(16)
	err := snap.Update(0x1000)

	assert.ErrorIs(t, err, ErrProcessClosed)
	assert.False(t, snap.IsValidOffset(0, 1))
}

func TestSnapshotSlice(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	p := newTestProcess(t, 0x2000, data)
	snap := NewSnapshot(p)
	snap.SetSize(len(data))
	require.NoError(t, snap.Update(0x2000))

	sub := snap.Slice(4)
	assert.Equal(t, Address(0x2004), sub.Address())
	assert.Equal(t, uint8(5), sub.ReadUInt8(0))
	assert.Equal(t, 4, sub.Len())
	assert.False(t, sub.IsValidOffset(4, 1))

	nested := sub.Slice(2)
	assert.Equal(t, uint8(7), nested.ReadUInt8(0))
}

func TestSnapshotHasChanged(t *testing.T) {
	p := newTestProcess(t, 0x3000, make([]byte, 8))
	snap := NewSnapshot(p)
	snap.SetSize(8)

	require.NoError(t, snap.Update(0x3000))
	assert.False(t, snap.HasChanged(0, 8), "first refresh has nothing to compare against")

	require.NoError(t, p.WriteRemoteMemory(0x3002, []byte{0xFF}))
	require.NoError(t, snap.Update(0x3000))

	assert.True(t, snap.HasChanged(0, 4))
	assert.False(t, snap.HasChanged(4, 4))
	assert.True(t, snap.Slice(2).HasChanged(0, 1))
}

func TestSnapshotUpdateSwapsBuffer(t *testing.T) {
	p := newTestProcess(t, 0x4000, []byte{1, 2, 3, 4})
	snap := NewSnapshot(p)
	snap.SetSize(4)
	require.NoError(t, snap.Update(0x4000))

	old := snap.Slice(0)
	require.NoError(t, p.WriteRemoteMemory(0x4000, []byte{9}))
	require.NoError(t, snap.Update(0x4000))

	assert.Equal(t, uint8(1), old.ReadUInt8(0), "views keep the buffer they were taken from")
	assert.Equal(t, uint8(9), snap.ReadUInt8(0))
}

func TestValue64Interpretations(t *testing.T) {
	v := Value64{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x00}

	assert.Equal(t, float32(1.0), v.Float32())
	assert.Equal(t, int64(0x3F800000), v.Int64())
	assert.Equal(t, uint64(0x3F800000), v.UInt64())
	assert.Equal(t, Address(0x3F800000), v.Pointer())
	assert.NotEqual(t, 1.0, v.Float64())
}

func TestResolvesToMappedRegion(t *testing.T) {
	p := newTestProcess(t, 0x5000, make([]byte, 0x100))
	snap := NewSnapshot(p)

	assert.True(t, snap.ResolvesToMappedRegion(0x5080))
	assert.False(t, snap.ResolvesToMappedRegion(0x5100))
	assert.False(t, snap.ResolvesToMappedRegion(0), "null is never mapped")
	assert.False(t, NewSnapshot(nil).ResolvesToMappedRegion(0x5080))
}
