package nodes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// BaseHexNode draws its bytes as individually editable hex pairs.
type BaseHexNode struct {
	BaseNode
	size int
}

// MemorySize returns the fixed byte count.
func (h *BaseHexNode) MemorySize() int { return h.size }

// CalculateDrawnHeight is always one row.
func (h *BaseHexNode) CalculateDrawnHeight(view ViewInfo) int { return view.Font.Height }

// drawHex paints self as an optional text preview followed by the hex
// bytes, the comment, and whatever extra annotates.
func (h *BaseHexNode) drawHex(view ViewInfo, self Node, x, y int, extra func(p *painter, x int) int) DrawResult {
	var res DrawResult
	p := newPainter(view, self, y, &res)
	colors := view.Settings.Colors
	off := h.offset

	x = p.leafStart(x, draw.IconHex)
	if view.Settings.ShowNodeText {
		x = p.text(x, colors.Text, NoneID, view.Memory.ReadPrintableASCII(off, h.size))
		x = p.space(x, 1)
	}
	for i := 0; i < h.size; i++ {
		text, color := "??", colors.Invalid
		if view.Memory.IsValidOffset(off+i, 1) {
			text = fmt.Sprintf("%02X", view.Memory.ReadUInt8(off+i))
			color = colors.Hex
			if view.Settings.HighlightChangedValues && view.Memory.HasChanged(off+i, 1) {
				color = colors.Highlight
			}
		}
		x = p.text(x, color, i, text)
		x = p.space(x, 1)
	}
	x = p.comment(x)
	if extra != nil && view.Memory.IsValidOffset(off, h.size) {
		x = extra(p, x)
	}
	p.finish(x)
	return res
}

// updateHex writes the byte edited through spot.
func (h *BaseHexNode) updateHex(spot HotSpot) error {
	if h.updateCommon(spot) {
		return nil
	}
	if spot.ID < 0 || spot.ID >= h.size {
		return nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(spot.Text), 16, 8)
	if err != nil {
		return fmt.Errorf("%w: %q is not a hex byte", ErrInvalidInput, spot.Text)
	}
	return writeMemory(spot, spot.Address.Add(spot.ID), []byte{byte(v)})
}

// writeMemory writes data through the process behind spot.
func writeMemory(spot HotSpot, addr memory.Address, data []byte) error {
	p := spot.Process()
	if p == nil {
		return ErrNoProcess
	}
	if err := p.WriteRemoteMemory(addr, data); err != nil {
		return fmt.Errorf("nodes: write %d bytes at %s: %w", len(data), addr, err)
	}
	return nil
}

// commentValues paints the numeric interpretations enabled in settings.
func commentValues(p *painter, x int, float *float64, integer *int64, unsigned uint64) int {
	s := p.view.Settings
	if float != nil && s.ShowCommentFloat {
		x = p.text(x, s.Colors.Value, NoneID, "("+formatFloat(*float)+")")
		x = p.space(x, 1)
	}
	if integer != nil && s.ShowCommentInteger {
		x = p.text(x, s.Colors.Value, NoneID, fmt.Sprintf("(%d|0x%X)", *integer, unsigned))
		x = p.space(x, 1)
	}
	return x
}

// commentPointer paints the section relative name of ptr when it is mapped.
func commentPointer(p *painter, x int, ptr memory.Address) int {
	s := p.view.Settings
	if !s.ShowCommentPointer || !p.view.Memory.ResolvesToMappedRegion(ptr) {
		return x
	}
	name, ok := namedAddress(p.view.Memory, ptr)
	if !ok {
		return x
	}
	x = p.text(x, s.Colors.Offset, NoneID, "-> "+name)
	return p.space(x, 1)
}

// Hex64Node is eight raw bytes.
type Hex64Node struct{ BaseHexNode }

// NewHex64Node creates an unnamed Hex64 node.
func NewHex64Node() *Hex64Node { return &Hex64Node{BaseHexNode{size: 8}} }

func (n *Hex64Node) TypeName() string { return "Hex64" }

func (n *Hex64Node) Draw(view ViewInfo, x, y int) DrawResult {
	return n.drawHex(view, n, x, y, func(p *painter, x int) int {
		v, _ := view.Memory.ReadValue64(n.offset)
		f := float64(v.Float32())
		i := v.Int64()
		x = commentValues(p, x, &f, &i, v.UInt64())
		return commentPointer(p, x, v.Pointer())
	})
}

func (n *Hex64Node) Update(spot HotSpot) error { return n.updateHex(spot) }

// UseMemoryPreviewToolTip previews the target when the value is a pointer
// into mapped memory.
func (n *Hex64Node) UseMemoryPreviewToolTip(spot HotSpot, mem *memory.Snapshot) (memory.Address, bool) {
	v, ok := mem.ReadValue64(n.offset)
	if !ok {
		return 0, false
	}
	ptr := v.Pointer()
	return ptr, mem.ResolvesToMappedRegion(ptr)
}

// ToolTipText shows every 64-bit interpretation of the bytes.
func (n *Hex64Node) ToolTipText(spot HotSpot, mem *memory.Snapshot) string {
	v, _ := mem.ReadValue64(n.offset)
	return fmt.Sprintf("Int64: %d\nUInt64: 0x%016X\nFloat: %.3f\nDouble: %.3f",
		v.Int64(), v.UInt64(), v.Float32(), v.Float64())
}

// Hex32Node is four raw bytes.
type Hex32Node struct{ BaseHexNode }

// NewHex32Node creates an unnamed Hex32 node.
func NewHex32Node() *Hex32Node { return &Hex32Node{BaseHexNode{size: 4}} }

func (n *Hex32Node) TypeName() string { return "Hex32" }

func (n *Hex32Node) Draw(view ViewInfo, x, y int) DrawResult {
	return n.drawHex(view, n, x, y, func(p *painter, x int) int {
		f := float64(view.Memory.ReadFloat32(n.offset))
		i := int64(view.Memory.ReadInt32(n.offset))
		return commentValues(p, x, &f, &i, uint64(view.Memory.ReadUInt32(n.offset)))
	})
}

func (n *Hex32Node) Update(spot HotSpot) error { return n.updateHex(spot) }

func (n *Hex32Node) ToolTipText(spot HotSpot, mem *memory.Snapshot) string {
	return fmt.Sprintf("Int32: %d\nUInt32: 0x%08X\nFloat: %.3f",
		mem.ReadInt32(n.offset), mem.ReadUInt32(n.offset), mem.ReadFloat32(n.offset))
}

// Hex16Node is two raw bytes.
type Hex16Node struct{ BaseHexNode }

// NewHex16Node creates an unnamed Hex16 node.
func NewHex16Node() *Hex16Node { return &Hex16Node{BaseHexNode{size: 2}} }

func (n *Hex16Node) TypeName() string { return "Hex16" }

func (n *Hex16Node) Draw(view ViewInfo, x, y int) DrawResult {
	return n.drawHex(view, n, x, y, func(p *painter, x int) int {
		u := view.Memory.ReadUInt16(n.offset)
		i := int64(int16(u))
		return commentValues(p, x, nil, &i, uint64(u))
	})
}

func (n *Hex16Node) Update(spot HotSpot) error { return n.updateHex(spot) }

func (n *Hex16Node) ToolTipText(spot HotSpot, mem *memory.Snapshot) string {
	u := mem.ReadUInt16(n.offset)
	return fmt.Sprintf("Int16: %d\nUInt16: 0x%04X", int16(u), u)
}

// Hex8Node is a single raw byte.
type Hex8Node struct{ BaseHexNode }

// NewHex8Node creates an unnamed Hex8 node.
func NewHex8Node() *Hex8Node { return &Hex8Node{BaseHexNode{size: 1}} }

func (n *Hex8Node) TypeName() string { return "Hex8" }

func (n *Hex8Node) Draw(view ViewInfo, x, y int) DrawResult {
	return n.drawHex(view, n, x, y, func(p *painter, x int) int {
		u := view.Memory.ReadUInt8(n.offset)
		i := int64(int8(u))
		return commentValues(p, x, nil, &i, uint64(u))
	})
}

func (n *Hex8Node) Update(spot HotSpot) error { return n.updateHex(spot) }

func (n *Hex8Node) ToolTipText(spot HotSpot, mem *memory.Snapshot) string {
	u := mem.ReadUInt8(n.offset)
	return fmt.Sprintf("Int8: %d\nUInt8: 0x%02X", int8(u), u)
}
