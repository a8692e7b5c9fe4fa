package nodes

import (
	"fmt"
	"slices"
)

// Container is a node that owns an ordered list of children. Children are
// laid out back to back: each child's offset is the sum of the sizes of the
// children before it.
type Container interface {
	Node

	Nodes() []Node
	AddNode(n Node) error
	AddNodes(ns ...Node) error
	InsertNode(index int, n Node) error
	RemoveNode(n Node) error
	ReplaceChildNode(old, replacement Node) error
	FindNodeIndex(n Node) int
	UpdateOffsets()
}

// BaseContainerNode implements the child list shared by classes and structs.
type BaseContainerNode struct {
	BaseNode

	owner Container
	nodes []Node
}

// initContainer binds the child list to the node that embeds it.
func (c *BaseContainerNode) initContainer(owner Container) {
	c.owner = owner
}

// Nodes returns the children in layout order. The slice must not be modified.
func (c *BaseContainerNode) Nodes() []Node { return c.nodes }

// MemorySize is the sum of the children sizes.
func (c *BaseContainerNode) MemorySize() int {
	size := 0
	for _, n := range c.nodes {
		size += n.MemorySize()
	}
	return size
}

// AddNode appends n.
func (c *BaseContainerNode) AddNode(n Node) error {
	return c.InsertNode(len(c.nodes), n)
}

// AddNodes appends every node in order.
func (c *BaseContainerNode) AddNodes(ns ...Node) error {
	for _, n := range ns {
		if err := c.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

// InsertNode inserts n before the child at index.
func (c *BaseContainerNode) InsertNode(index int, n Node) error {
	if n.ParentNode() != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyParented, n.Name())
	}
	if index < 0 || index > len(c.nodes) {
		return fmt.Errorf("nodes: insert index %d out of range [0,%d]", index, len(c.nodes))
	}
	setParent(n, c.owner)
	c.nodes = slices.Insert(c.nodes, index, n)
	c.UpdateOffsets()
	return nil
}

// RemoveNode detaches n. The remaining children are re-laid out.
func (c *BaseContainerNode) RemoveNode(n Node) error {
	i := c.FindNodeIndex(n)
	if i < 0 {
		return ErrNodeNotFound
	}
	c.nodes = slices.Delete(c.nodes, i, i+1)
	n.ClearSelection()
	setParent(n, nil)
	c.UpdateOffsets()
	return nil
}

// ReplaceChildNode swaps old for replacement, keeping name and comment.
// When replacement is smaller, hex padding keeps the following children at
// their offsets.
func (c *BaseContainerNode) ReplaceChildNode(old, replacement Node) error {
	i := c.FindNodeIndex(old)
	if i < 0 {
		return ErrNodeNotFound
	}
	if replacement.ParentNode() != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyParented, replacement.Name())
	}
	copyInfo(old, replacement)
	setParent(replacement, c.owner)

	nodes := []Node{replacement}
	if diff := old.MemorySize() - replacement.MemorySize(); diff > 0 {
		for _, pad := range PaddingNodes(diff) {
			setParent(pad, c.owner)
			nodes = append(nodes, pad)
		}
	}
	c.nodes = slices.Replace(c.nodes, i, i+1, nodes...)

	old.ClearSelection()
	setParent(old, nil)
	c.UpdateOffsets()
	return nil
}

// FindNodeIndex returns the index of n among the children, or -1.
func (c *BaseContainerNode) FindNodeIndex(n Node) int {
	return slices.Index(c.nodes, n)
}

// UpdateOffsets lays the children out back to back and propagates the size
// change to the enclosing container.
func (c *BaseContainerNode) UpdateOffsets() {
	off := 0
	for _, n := range c.nodes {
		n.SetOffset(off)
		off += n.MemorySize()
	}
	if c.owner != nil {
		notifySizeChanged(c.owner)
	}
}

// ClearSelection deselects the container and every descendant.
func (c *BaseContainerNode) ClearSelection() {
	c.selected = false
	for _, n := range c.nodes {
		n.ClearSelection()
	}
}

// drawChildren draws the children one row band below the other, starting at
// y, and folds the results into res.
func (c *BaseContainerNode) drawChildren(view ViewInfo, x, y int, res *DrawResult) {
	inner := view.Nested(c.owner.Offset())
	for _, n := range c.nodes {
		// Rows entirely outside the client area only need their height.
		h := safeDrawnHeight(n, inner)
		if !inner.rowVisible(y, h) {
			res.Size.Height += h
			y += h
			continue
		}
		child := DrawSafe(n, inner, x, y)
		res.absorb(child, 0)
		y += child.Size.Height
	}
}

// childrenHeight is the drawn height of all children.
func (c *BaseContainerNode) childrenHeight(view ViewInfo) int {
	inner := view.Nested(c.owner.Offset())
	h := 0
	for _, n := range c.nodes {
		h += n.CalculateDrawnHeight(inner)
	}
	return h
}

// drawnHeight is the height of a container row plus its open children.
func (c *BaseContainerNode) drawnHeight(view ViewInfo) int {
	h := view.Font.Height
	if c.IsLevelOpen(view.Level) {
		h += c.childrenHeight(view)
	}
	return h
}
