package nodes

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// ValueID is the hot spot id of the value field of a numeric node.
const ValueID = 0

// numericKind describes how one scalar type is read, shown and parsed.
type numericKind struct {
	name   string
	size   int
	icon   draw.Icon
	format func(mem *memory.Snapshot, off int) string
	parse  func(s string) ([]byte, error)
}

// BaseNumericNode draws a typed scalar as "Type Name = value".
type BaseNumericNode struct {
	BaseNode
	kind numericKind
}

func (n *BaseNumericNode) MemorySize() int { return n.kind.size }

func (n *BaseNumericNode) TypeName() string { return n.kind.name }

func (n *BaseNumericNode) CalculateDrawnHeight(view ViewInfo) int { return view.Font.Height }

func (n *BaseNumericNode) drawNumeric(view ViewInfo, self Node, x, y int) DrawResult {
	var res DrawResult
	p := newPainter(view, self, y, &res)
	colors := view.Settings.Colors

	x = p.leafStart(x, n.kind.icon)
	x = p.typeAndName(x)
	x = p.text(x, colors.Name, NoneID, " = ")

	value, color := "<invalid>", colors.Invalid
	if view.Memory.IsValidOffset(n.offset, n.kind.size) {
		value = n.kind.format(view.Memory, n.offset)
		color = colors.Value
		if view.Settings.HighlightChangedValues && view.Memory.HasChanged(n.offset, n.kind.size) {
			color = colors.Highlight
		}
	}
	x = p.text(x, color, ValueID, value)
	x = p.space(x, 1)
	x = p.comment(x)
	p.finish(x)
	return res
}

func (n *BaseNumericNode) Update(spot HotSpot) error {
	if n.updateCommon(spot) {
		return nil
	}
	if spot.ID != ValueID {
		return nil
	}
	data, err := n.kind.parse(strings.TrimSpace(spot.Text))
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidInput, spot.Text, n.kind.name)
	}
	return writeMemory(spot, spot.Address, data)
}

// parseInt accepts decimal and 0x prefixed hex.
func parseInt(s string, bits int) (int64, error) {
	if h, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		u, err := strconv.ParseUint(h, 16, bits)
		if err != nil {
			return 0, err
		}
		if bits == 32 {
			return int64(int32(uint32(u))), nil
		}
		return int64(u), nil
	}
	return strconv.ParseInt(s, 10, bits)
}

var (
	int64Kind = numericKind{
		name: "Int64", size: 8, icon: draw.IconInteger,
		format: func(mem *memory.Snapshot, off int) string { return strconv.FormatInt(mem.ReadInt64(off), 10) },
		parse: func(s string) ([]byte, error) {
			v, err := parseInt(s, 64)
			return binary.LittleEndian.AppendUint64(nil, uint64(v)), err
		},
	}
	int32Kind = numericKind{
		name: "Int32", size: 4, icon: draw.IconInteger,
		format: func(mem *memory.Snapshot, off int) string { return strconv.FormatInt(int64(mem.ReadInt32(off)), 10) },
		parse: func(s string) ([]byte, error) {
			v, err := parseInt(s, 32)
			return binary.LittleEndian.AppendUint32(nil, uint32(v)), err
		},
	}
	floatKind = numericKind{
		name: "Float", size: 4, icon: draw.IconFloat,
		format: func(mem *memory.Snapshot, off int) string { return fmt.Sprintf("%.3f", mem.ReadFloat32(off)) },
		parse: func(s string) ([]byte, error) {
			v, err := strconv.ParseFloat(s, 32)
			return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v))), err
		},
	}
	doubleKind = numericKind{
		name: "Double", size: 8, icon: draw.IconFloat,
		format: func(mem *memory.Snapshot, off int) string { return fmt.Sprintf("%.3f", mem.ReadFloat64(off)) },
		parse: func(s string) ([]byte, error) {
			v, err := strconv.ParseFloat(s, 64)
			return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)), err
		},
	}
)

// Int64Node is a signed 64-bit integer.
type Int64Node struct{ BaseNumericNode }

func NewInt64Node() *Int64Node { return &Int64Node{BaseNumericNode{kind: int64Kind}} }

func (n *Int64Node) Draw(view ViewInfo, x, y int) DrawResult { return n.drawNumeric(view, n, x, y) }

// Int32Node is a signed 32-bit integer.
type Int32Node struct{ BaseNumericNode }

func NewInt32Node() *Int32Node { return &Int32Node{BaseNumericNode{kind: int32Kind}} }

func (n *Int32Node) Draw(view ViewInfo, x, y int) DrawResult { return n.drawNumeric(view, n, x, y) }

// FloatNode is an IEEE-754 single.
type FloatNode struct{ BaseNumericNode }

func NewFloatNode() *FloatNode { return &FloatNode{BaseNumericNode{kind: floatKind}} }

func (n *FloatNode) Draw(view ViewInfo, x, y int) DrawResult { return n.drawNumeric(view, n, x, y) }

// DoubleNode is an IEEE-754 double.
type DoubleNode struct{ BaseNumericNode }

func NewDoubleNode() *DoubleNode { return &DoubleNode{BaseNumericNode{kind: doubleKind}} }

func (n *DoubleNode) Draw(view ViewInfo, x, y int) DrawResult { return n.drawNumeric(view, n, x, y) }
