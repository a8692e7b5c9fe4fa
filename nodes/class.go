package nodes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// ClassNode is the root of a structure tree. It is placed at an absolute
// address in the target process and is open by default.
type ClassNode struct {
	BaseContainerNode

	id      uuid.UUID
	address memory.Address
}

// NewClassNode creates an empty class at address.
func NewClassNode(name string, address memory.Address) *ClassNode {
	c := &ClassNode{id: uuid.New(), address: address}
	c.initContainer(c)
	c.name = name
	c.defaultOpen = true
	return c
}

// ID uniquely identifies the class within a session.
func (c *ClassNode) ID() uuid.UUID { return c.id }

// Address returns the address the class is placed at.
func (c *ClassNode) Address() memory.Address { return c.address }

// SetAddress moves the class.
func (c *ClassNode) SetAddress(a memory.Address) { c.address = a }

func (c *ClassNode) TypeName() string { return "Class" }

// Draw paints the class header and, when open, its children. view.Address
// is expected to be the class address.
func (c *ClassNode) Draw(view ViewInfo, x, y int) DrawResult {
	var res DrawResult
	p := newPainter(view, c, y, &res)

	p.selection()
	x = p.space(x, textPadding)
	tx := x
	x = p.openClose(x)
	x = p.icon(x, draw.IconClass, HotSpotNone, 0)

	colors := view.Settings.Colors
	x = p.text(x, colors.Address, AddressID, c.address.String())
	x = p.space(x, 1)
	x = p.typeAndName(x)
	x = p.space(x, 1)
	x = p.text(x, colors.Value, NoneID, fmt.Sprintf("[%d]", c.MemorySize()))
	x = p.space(x, 1)
	x = p.comment(x)
	p.deleteIcon()

	res.Size.Width = x
	res.Size.Height = view.Font.Height

	if c.IsLevelOpen(view.Level) {
		c.drawChildren(view, tx, y+view.Font.Height, &res)
	}
	return res
}

func (c *ClassNode) CalculateDrawnHeight(view ViewInfo) int {
	return c.drawnHeight(view)
}

// Update handles name, comment and address edits.
func (c *ClassNode) Update(spot HotSpot) error {
	if c.updateCommon(spot) {
		return nil
	}
	if spot.ID == AddressID {
		a, err := memory.ParseAddress(spot.Text)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		c.address = a
		return nil
	}
	return nil
}
