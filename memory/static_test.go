package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProcessMapRejectsOverlap(t *testing.T) {
	p := NewStaticProcess()
	_, ok := p.Map("a", 0x1000, make([]byte, 0x100))
	require.True(t, ok)

	_, ok = p.Map("b", 0x10F0, make([]byte, 0x20))
	assert.False(t, ok)

	sec, ok := p.Map("c", 0x1100, make([]byte, 0x10))
	require.True(t, ok)
	assert.Equal(t, Address(0x1110), sec.End)
	assert.Len(t, p.Sections(), 2)
}

func TestStaticProcessReadSpanningRegions(t *testing.T) {
	p := NewStaticProcess()
	p.Map("a", 0x1000, []byte{1, 2})
	p.Map("b", 0x1002, []byte{3, 4})

	buf := make([]byte, 4)
	require.NoError(t, p.ReadRemoteMemory(0x1000, buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	err := p.ReadRemoteMemory(0x1003, make([]byte, 2))
	assert.ErrorIs(t, err, ErrUnmapped)
}

func TestStaticProcessWriteIsAllOrNothing(t *testing.T) {
	p := NewStaticProcess()
	p.Map("a", 0x1000, []byte{1, 2, 3, 4})

	err := p.WriteRemoteMemory(0x1002, []byte{9, 9, 9})
	require.ErrorIs(t, err, ErrUnmapped)

	buf := make([]byte, 4)
	require.NoError(t, p.ReadRemoteMemory(0x1000, buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	assert.Equal(t, 0, p.Writes())

	require.NoError(t, p.WriteRemoteMemory(0x1002, []byte{7, 8}))
	require.NoError(t, p.ReadRemoteMemory(0x1000, buf))
	assert.Equal(t, []byte{1, 2, 7, 8}, buf)
	assert.Equal(t, 1, p.Writes())
}

func TestStaticProcessSectionFor(t *testing.T) {
	p := NewStaticProcess()
	p.Map("heap", 0x1000, make([]byte, 0x10))

	sec, ok := p.SectionFor(0x100F)
	require.True(t, ok)
	assert.Equal(t, "heap", sec.Name)

	_, ok = p.SectionFor(0x1010)
	assert.False(t, ok)
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"0x1000", 0x1000, false},
		{"7FF6`12340000", 0x7FF612340000, false},
		{"  deadBEEF ", 0xDEADBEEF, false},
		{"", 0, true},
		{"0xZZ", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressAdd(t *testing.T) {
	a := Address(0x1000)
	assert.Equal(t, Address(0x1010), a.Add(0x10))
	assert.Equal(t, Address(0x0FF0), a.Add(-0x10))
	assert.Equal(t, int64(-0x10), a.Add(-0x10).Sub(a))
	assert.Equal(t, "0000000000001000", a.String())
}
