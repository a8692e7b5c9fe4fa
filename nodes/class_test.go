package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memlens/memory"
)

func TestClassAddressEdit(t *testing.T) {
	f := newFixture(t, make([]byte, 8), NewHex64Node())
	res := f.draw()

	spot := editSpot(t, res, f.class, AddressID)
	assert.Equal(t, testBase.String(), spot.Text)

	require.NoError(t, f.class.Update(spot.WithText("0x2000")))
	assert.Equal(t, memory.Address(0x2000), f.class.Address())

	assert.ErrorIs(t, f.class.Update(spot.WithText("not-hex")), ErrInvalidInput)
	assert.Equal(t, memory.Address(0x2000), f.class.Address())
}

func TestClassIDsAreUnique(t *testing.T) {
	a, b := NewClassNode("A", 0), NewClassNode("B", 0)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestClassOffersNoDropSpot(t *testing.T) {
	f := newFixture(t, make([]byte, 8), NewHex64Node())
	f.class.SetSelected(true)

	res := f.draw()
	assert.Empty(t, spotsFor(res, f.class, HotSpotDrop))
	assert.Len(t, spotsFor(res, f.class, HotSpotDelete), 1)
}

func TestStructChangeTypeSpot(t *testing.T) {
	inner := NewStructNode("Inner")
	require.NoError(t, inner.AddNode(NewHex8Node()))
	f := newFixture(t, make([]byte, 1), inner)

	res := f.draw()
	assert.Len(t, spotsFor(res, inner, HotSpotChangeClassType), 1)
}
