// Package selection tracks which nodes of the tree are selected.
//
// The selection is a list of hot spots rather than nodes: a hot spot also
// carries the address, snapshot and level a node was drawn with, which range
// and keyboard operations need. Every node in the list has its selected
// flag set, and no other node does.
package selection

import (
	"slices"

	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

// Direction is a vertical keyboard move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// NodeInfo is an exported view of one selected node.
type NodeInfo struct {
	Node    nodes.Node
	Memory  *memory.Snapshot
	Address memory.Address
	Level   int
}

// Controller owns the selection set and its anchor and caret.
type Controller struct {
	selected []nodes.HotSpot

	anchor, caret nodes.HotSpot
	hasRange      bool

	bus *Bus
}

// New creates an empty controller. bus may be nil.
func New(bus *Bus) *Controller {
	return &Controller{bus: bus}
}

// Count returns the number of selected nodes.
func (c *Controller) Count() int { return len(c.selected) }

// Size returns the summed memory size of the selected nodes.
func (c *Controller) Size() int {
	size := 0
	for _, h := range c.selected {
		size += h.Node.MemorySize()
	}
	return size
}

// Selected returns a copy of the selected hot spots in selection order.
func (c *Controller) Selected() []nodes.HotSpot { return slices.Clone(c.selected) }

// Anchor returns the fixed end of the last range operation.
func (c *Controller) Anchor() (nodes.HotSpot, bool) { return c.anchor, c.hasRange }

// Caret returns the moving end of the last range operation.
func (c *Controller) Caret() (nodes.HotSpot, bool) { return c.caret, c.hasRange }

// Contains reports whether n is selected.
func (c *Controller) Contains(n nodes.Node) bool {
	return c.index(n) >= 0
}

func (c *Controller) index(n nodes.Node) int {
	return slices.IndexFunc(c.selected, func(h nodes.HotSpot) bool { return h.Node == n })
}

// Clear deselects everything and forgets anchor and caret.
func (c *Controller) Clear() {
	c.clear()
	c.notify()
}

func (c *Controller) clear() {
	for _, h := range c.selected {
		h.Node.SetSelected(false)
	}
	c.selected = nil
	c.anchor, c.caret = nodes.HotSpot{}, nodes.HotSpot{}
	c.hasRange = false
}

// Select makes spot the only selected node and collapses the range onto it.
func (c *Controller) Select(spot nodes.HotSpot) {
	spot.Type = nodes.HotSpotSelect
	c.clear()
	c.add(spot)
	c.anchor, c.caret, c.hasRange = spot, spot, true
	c.notify()
}

// Toggle flips the selection of spot's node, leaving anchor and caret alone.
func (c *Controller) Toggle(spot nodes.HotSpot) {
	if i := c.index(spot.Node); i >= 0 {
		spot.Node.SetSelected(false)
		c.selected = slices.Delete(c.selected, i, i+1)
	} else {
		c.add(spot)
	}
	c.notify()
}

// ExtendTo selects every sibling between the first selected node and spot.
// It reports false, changing nothing, when spot is a container or does not
// share the first selected node's parent, and when nothing is selected.
func (c *Controller) ExtendTo(spot nodes.HotSpot, frame []nodes.HotSpot) bool {
	if len(c.selected) == 0 {
		return false
	}
	if _, ok := spot.Node.(nodes.Container); ok {
		return false
	}
	first := c.selected[0]
	if !siblings(first.Node, spot.Node) {
		return false
	}

	lo, hi := first, spot
	if hi.Node.Offset() < lo.Node.Offset() {
		lo, hi = hi, lo
	}
	c.selectRange(first, lo.Node.Offset(), hi.Node.Offset(), frame)
	c.anchor, c.caret, c.hasRange = c.spotOf(lo), c.spotOf(hi), true
	c.notify()
	return true
}

// MoveVertical moves the caret to the previous or next sibling in draw
// order. With extend set, only the caret moves and the range between anchor
// and caret is reselected. The return value is the number of rows the view
// should scroll: one in the direction of travel when the caret reaches, or
// already sits on, the last sibling that way. A caret that is not in frame,
// such as one scrolled off screen, ignores the key.
func (c *Controller) MoveVertical(frame []nodes.HotSpot, dir Direction, extend bool) int {
	if len(c.selected) == 0 {
		c.SelectFirst(frame)
		return 0
	}
	if !c.hasRange {
		last := c.selected[len(c.selected)-1]
		c.anchor, c.caret, c.hasRange = last, last, true
	}

	caret, ok := findSelect(frame, c.caret.Node)
	if !ok {
		return 0
	}

	var candidates []nodes.HotSpot
	for _, h := range frame {
		if h.Type == nodes.HotSpotSelect && h.Node.ParentNode() != nil && siblings(h.Node, caret.Node) {
			candidates = append(candidates, h)
		}
	}

	target, atEnd := -1, false
	if dir == Down {
		for i, h := range candidates {
			if h.Rect.Y > caret.Rect.Y {
				target, atEnd = i, i == len(candidates)-1
				break
			}
		}
	} else {
		for i := len(candidates) - 1; i >= 0; i-- {
			if candidates[i].Rect.Y < caret.Rect.Y {
				target, atEnd = i, i == 0
				break
			}
		}
	}

	if target < 0 {
		// Already on the last sibling that way.
		return int(dir)
	}

	next := candidates[target]
	if extend {
		anchor := c.anchor
		lo, hi := min(anchor.Node.Offset(), next.Node.Offset()), max(anchor.Node.Offset(), next.Node.Offset())
		c.selectRange(anchor, lo, hi, frame)
		c.anchor, c.caret, c.hasRange = c.spotOf(anchor), c.spotOf(next), true
		c.notify()
	} else {
		c.Select(next)
	}

	if atEnd {
		return int(dir)
	}
	return 0
}

// SelectFirst selects the first selectable node of frame, skipping roots.
func (c *Controller) SelectFirst(frame []nodes.HotSpot) bool {
	for _, h := range frame {
		if h.Type == nodes.HotSpotSelect && h.Node.ParentNode() != nil {
			c.Select(h)
			return true
		}
	}
	return false
}

// SetOpen expands or collapses the single selected node. It reports false
// unless exactly one node is selected.
func (c *Controller) SetOpen(open bool) bool {
	if len(c.selected) != 1 {
		return false
	}
	h := c.selected[0]
	h.Node.SetLevelOpen(h.Level, open)
	return true
}

// SelectedNodes exports the selection.
func (c *Controller) SelectedNodes() []NodeInfo {
	out := make([]NodeInfo, 0, len(c.selected))
	for _, h := range c.selected {
		out = append(out, NodeInfo{Node: h.Node, Memory: h.Memory, Address: h.Address, Level: h.Level})
	}
	return out
}

// SetSelectedNodes replaces the selection with infos. Anchor and caret are
// placed on the first and last entry.
func (c *Controller) SetSelectedNodes(infos []NodeInfo) {
	c.clear()
	for _, info := range infos {
		c.add(nodes.HotSpot{
			Type:    nodes.HotSpotSelect,
			Node:    info.Node,
			Address: info.Address,
			Memory:  info.Memory,
			Level:   info.Level,
		})
	}
	if len(c.selected) > 0 {
		c.anchor, c.caret, c.hasRange = c.selected[0], c.selected[len(c.selected)-1], true
	}
	c.notify()
}

// Forget drops n and its descendants from the selection. Used after n was
// removed from the tree.
func (c *Controller) Forget(n nodes.Node) {
	before := len(c.selected)
	c.selected = slices.DeleteFunc(c.selected, func(h nodes.HotSpot) bool {
		if nodes.IsAncestor(n, h.Node) {
			h.Node.SetSelected(false)
			return true
		}
		return false
	})
	if c.hasRange && (nodes.IsAncestor(n, c.anchor.Node) || nodes.IsAncestor(n, c.caret.Node)) {
		c.anchor, c.caret, c.hasRange = nodes.HotSpot{}, nodes.HotSpot{}, false
	}
	if len(c.selected) != before {
		c.notify()
	}
}

func (c *Controller) add(spot nodes.HotSpot) {
	if c.index(spot.Node) >= 0 {
		return
	}
	spot.Type = nodes.HotSpotSelect
	spot.Node.SetSelected(true)
	c.selected = append(c.selected, spot)
}

// selectRange replaces the selection with the children of ref's container
// whose offsets lie in [lo, hi]. Rectangles are taken from frame when the
// child is on screen.
func (c *Controller) selectRange(ref nodes.HotSpot, lo, hi int, frame []nodes.HotSpot) {
	container, ok := ref.Node.ParentNode().(nodes.Container)
	if !ok {
		return
	}
	base := ref.Address.Add(-ref.Node.Offset())

	c.clear()
	for _, n := range container.Nodes() {
		if n.Offset() < lo || n.Offset() > hi {
			continue
		}
		spot, ok := findSelect(frame, n)
		if !ok {
			spot = nodes.HotSpot{Node: n}
		}
		spot.Address = base.Add(n.Offset())
		spot.Memory = ref.Memory
		spot.Level = ref.Level
		c.add(spot)
	}
}

// spotOf returns the selected entry for h's node, or h itself.
func (c *Controller) spotOf(h nodes.HotSpot) nodes.HotSpot {
	if i := c.index(h.Node); i >= 0 {
		return c.selected[i]
	}
	return h
}

func (c *Controller) notify() {
	if c.bus != nil {
		c.bus.Notify(c.Count(), c.Size())
	}
}

// siblings reports whether a and b are direct children of the same container.
func siblings(a, b nodes.Node) bool {
	p := a.ParentNode()
	if p == nil || p != b.ParentNode() {
		return false
	}
	_, ok := p.(nodes.Container)
	return ok
}

func findSelect(frame []nodes.HotSpot, n nodes.Node) (nodes.HotSpot, bool) {
	for _, h := range frame {
		if h.Type == nodes.HotSpotSelect && h.Node == n {
			return h, true
		}
	}
	return nodes.HotSpot{}, false
}
