package nodes

import (
	"github.com/joshuapare/memlens/memory"
)

// Node is one typed field of the structure tree.
//
// Every implementation embeds BaseNode, which carries the state shared by
// all kinds (name, comment, offset, selection, open levels, parent link).
// A node knows how to draw itself, how large it is, and how to apply an
// edit made through one of its hot spots.
type Node interface {
	Name() string
	SetName(name string)
	Comment() string
	SetComment(comment string)

	// Offset is the byte offset inside the parent structure.
	Offset() int
	SetOffset(offset int)

	// MemorySize is the number of bytes the node covers.
	MemorySize() int

	// TypeName is the short label drawn in front of the node name.
	TypeName() string

	IsSelected() bool
	SetSelected(selected bool)
	// ClearSelection deselects the node and every descendant.
	ClearSelection()

	IsLevelOpen(level int) bool
	ToggleLevelOpen(level int)
	SetLevelOpen(level int, open bool)

	// ParentNode is the direct parent or nil for a root.
	ParentNode() Node
	// ParentContainer is the nearest ancestor that owns a child list.
	ParentContainer() Container

	// Draw paints the node at x, y and returns its size and hot spots.
	Draw(view ViewInfo, x, y int) DrawResult
	// CalculateDrawnHeight returns the height Draw would report without
	// painting anything.
	CalculateDrawnHeight(view ViewInfo) int

	// Update applies the edit carried by spot.Text to the field spot.ID.
	Update(spot HotSpot) error

	// UseMemoryPreviewToolTip reports whether hovering spot should show a
	// memory preview, and of which address.
	UseMemoryPreviewToolTip(spot HotSpot, mem *memory.Snapshot) (memory.Address, bool)
	// ToolTipText returns the hover text for spot; empty means none.
	ToolTipText(spot HotSpot, mem *memory.Snapshot) string

	base() *BaseNode
}

// BaseNode implements the kind independent part of Node.
type BaseNode struct {
	name    string
	comment string
	offset  int

	selected bool

	levelsOpen  map[int]bool
	defaultOpen bool

	parent Node
}

func (b *BaseNode) base() *BaseNode { return b }

// Name returns the node name.
func (b *BaseNode) Name() string { return b.name }

// SetName sets the node name.
func (b *BaseNode) SetName(name string) { b.name = name }

// Comment returns the node comment.
func (b *BaseNode) Comment() string { return b.comment }

// SetComment sets the node comment.
func (b *BaseNode) SetComment(comment string) { b.comment = comment }

// Offset returns the offset inside the parent.
func (b *BaseNode) Offset() int { return b.offset }

// SetOffset sets the offset inside the parent.
func (b *BaseNode) SetOffset(offset int) { b.offset = offset }

// IsSelected reports the selection flag.
func (b *BaseNode) IsSelected() bool { return b.selected }

// SetSelected sets the selection flag.
func (b *BaseNode) SetSelected(selected bool) { b.selected = selected }

// ClearSelection clears the selection flag. Nodes with children override it.
func (b *BaseNode) ClearSelection() { b.selected = false }

// IsLevelOpen reports whether the node is expanded when drawn at level.
func (b *BaseNode) IsLevelOpen(level int) bool {
	if open, ok := b.levelsOpen[level]; ok {
		return open
	}
	return b.defaultOpen
}

// ToggleLevelOpen flips the expansion state at level.
func (b *BaseNode) ToggleLevelOpen(level int) {
	b.SetLevelOpen(level, !b.IsLevelOpen(level))
}

// SetLevelOpen sets the expansion state at level.
func (b *BaseNode) SetLevelOpen(level int, open bool) {
	if b.levelsOpen == nil {
		b.levelsOpen = make(map[int]bool)
	}
	b.levelsOpen[level] = open
}

// ParentNode returns the direct parent.
func (b *BaseNode) ParentNode() Node { return b.parent }

// ParentContainer walks up to the nearest container ancestor.
func (b *BaseNode) ParentContainer() Container {
	for p := b.parent; p != nil; p = p.base().parent {
		if c, ok := p.(Container); ok {
			return c
		}
	}
	return nil
}

// UseMemoryPreviewToolTip reports no preview.
func (b *BaseNode) UseMemoryPreviewToolTip(HotSpot, *memory.Snapshot) (memory.Address, bool) {
	return 0, false
}

// ToolTipText reports no tooltip.
func (b *BaseNode) ToolTipText(HotSpot, *memory.Snapshot) string { return "" }

// updateCommon applies edits to the fields every node has. It reports
// whether spot addressed one of them.
func (b *BaseNode) updateCommon(spot HotSpot) bool {
	switch spot.ID {
	case NameID:
		b.name = spot.Text
		return true
	case CommentID:
		b.comment = spot.Text
		return true
	}
	return false
}

// copyInfo carries the user visible identity of from into to. Used when a
// node is replaced by one of another kind.
func copyInfo(from, to Node) {
	to.SetName(from.Name())
	to.SetComment(from.Comment())
}

// setParent links child to parent. A nil parent detaches.
func setParent(child, parent Node) {
	child.base().parent = parent
}

// IsAncestor reports whether a is n or one of its ancestors.
func IsAncestor(a, n Node) bool {
	for p := n; p != nil; p = p.ParentNode() {
		if p == a {
			return true
		}
	}
	return false
}

// notifySizeChanged relays offsets of n's container after n changed size.
func notifySizeChanged(n Node) {
	if c := n.ParentContainer(); c != nil {
		c.UpdateOffsets()
	}
}
