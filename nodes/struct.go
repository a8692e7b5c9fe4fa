package nodes

import (
	"fmt"

	"github.com/joshuapare/memlens/draw"
)

// StructNode is an inline structure: a container embedded at an offset of
// its parent.
type StructNode struct {
	BaseContainerNode
}

// NewStructNode creates an empty struct.
func NewStructNode(name string) *StructNode {
	s := &StructNode{}
	s.initContainer(s)
	s.name = name
	return s
}

func (s *StructNode) TypeName() string { return "Struct" }

func (s *StructNode) Draw(view ViewInfo, x, y int) DrawResult {
	var res DrawResult
	p := newPainter(view, s, y, &res)

	p.selection()
	x = p.space(x, textPadding)
	tx := x
	x = p.openClose(x)
	x = p.icon(x, draw.IconStruct, HotSpotNone, 0)
	x = p.addressOffset(x)
	x = p.typeAndName(x)
	x = p.space(x, 1)
	x = p.text(x, view.Settings.Colors.Value, NoneID, fmt.Sprintf("[%d]", s.MemorySize()))
	x = p.icon(x, draw.IconChangeType, HotSpotChangeClassType, 0)
	x = p.space(x, 1)
	x = p.comment(x)
	p.finish(x)

	if s.IsLevelOpen(view.Level) {
		s.drawChildren(view, tx, y+view.Font.Height, &res)
	}
	return res
}

func (s *StructNode) CalculateDrawnHeight(view ViewInfo) int {
	return s.drawnHeight(view)
}

func (s *StructNode) Update(spot HotSpot) error {
	s.updateCommon(spot)
	return nil
}
