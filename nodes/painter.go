package nodes

import (
	"unicode/utf8"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// painter lays out one node row left to right. Each helper paints only when
// the row is visible but always advances x, so off-screen rows still report
// their width.
type painter struct {
	view    ViewInfo
	node    Node
	y       int
	visible bool
	res     *DrawResult
}

func newPainter(view ViewInfo, n Node, y int, res *DrawResult) *painter {
	return &painter{
		view:    view,
		node:    n,
		y:       y,
		visible: view.rowVisible(y, view.Font.Height),
		res:     res,
	}
}

// address returns the absolute address of the node being painted.
func (p *painter) address() memory.Address {
	return p.view.Address.Add(p.node.Offset())
}

func (p *painter) spot(rect draw.Rect, t HotSpotType, id int, text string) {
	p.res.HotSpots = append(p.res.HotSpots, HotSpot{
		Rect:    rect,
		Type:    t,
		ID:      id,
		Text:    text,
		Node:    p.node,
		Address: p.address(),
		Memory:  p.view.Memory,
		Level:   p.view.Level,
	})
}

// selection fills the row when the node is selected and registers the
// row-wide Select spot.
func (p *painter) selection() {
	if !p.visible {
		return
	}
	area := p.view.ClientArea
	h := p.view.Font.Height
	if p.node.IsSelected() {
		p.view.Surface.FillRect(draw.R(area.X, p.y, area.Width, h), p.view.Settings.SelectedColor())
	}
	right := area.Right()
	if p.node.IsSelected() {
		right -= p.view.Font.IconWidth()
	}
	p.spot(draw.R(area.X, p.y, right-area.X, h), HotSpotSelect, 0, "")
}

// icon paints icon at x and, for a typed spot, registers it.
func (p *painter) icon(x int, icon draw.Icon, t HotSpotType, id int) int {
	w := p.view.Font.IconWidth()
	if !p.visible {
		return x + w
	}
	p.view.Surface.DrawIcon(icon, x, p.y)
	if t != HotSpotNone {
		p.spot(draw.R(x, p.y, w, p.view.Font.Height), t, id, "")
	}
	return x + w
}

// openClose paints the expand/collapse toggle.
func (p *painter) openClose(x int) int {
	icon := draw.IconClosed
	if p.node.IsLevelOpen(p.view.Level) {
		icon = draw.IconOpen
	}
	return p.icon(x, icon, HotSpotOpenClose, 0)
}

// text paints s and registers an Edit spot for id != NoneID. An editable
// field is at least one cell wide so it stays clickable when empty.
func (p *painter) text(x int, c draw.Color, id int, s string) int {
	n := utf8.RuneCountInString(s)
	if id != NoneID {
		n = max(n, 1)
	}
	w := p.view.Font.TextWidth(n)
	if p.visible {
		if id != NoneID {
			p.spot(draw.R(x, p.y, w, p.view.Font.Height), HotSpotEdit, id, s)
		}
		p.view.Surface.DrawText(s, x, p.y, c)
	}
	return x + w
}

// space advances by n cells.
func (p *painter) space(x, n int) int { return x + p.view.Font.TextWidth(n) }

// addressOffset paints the offset and absolute address columns.
func (p *painter) addressOffset(x int) int {
	s := p.view.Settings
	if s.ShowNodeOffset {
		x = p.text(x, s.Colors.Offset, NoneID, formatOffset(p.node.Offset()))
		x = p.space(x, 1)
	}
	if s.ShowNodeAddress {
		x = p.text(x, s.Colors.Address, NoneID, p.address().String())
		x = p.space(x, 1)
	}
	return x
}

// typeAndName paints the type label and the editable name.
func (p *painter) typeAndName(x int) int {
	c := p.view.Settings.Colors
	x = p.text(x, c.Type, NoneID, p.node.TypeName())
	x = p.space(x, 1)
	x = p.text(x, c.Name, NameID, p.node.Name())
	return x
}

// comment paints the editable comment.
func (p *painter) comment(x int) int {
	c := p.view.Settings.Colors.Comment
	x = p.text(x, c, NoneID, "//")
	x = p.text(x, c, CommentID, p.node.Comment())
	return p.space(x, 1)
}

// dropArrow registers the type menu spot at the row start. Only a single
// selected node offers it.
func (p *painter) dropArrow() {
	if !p.visible || p.view.MultipleNodesSelected || !p.node.IsSelected() {
		return
	}
	p.icon(p.view.ClientArea.X, draw.IconDropArrow, HotSpotDrop, 0)
}

// deleteIcon registers the delete spot at the right edge of a selected row.
func (p *painter) deleteIcon() {
	if !p.visible || !p.node.IsSelected() {
		return
	}
	p.icon(p.view.ClientArea.Right()-p.view.Font.IconWidth(), draw.IconDelete, HotSpotDelete, 0)
}

// leafStart paints the columns every leaf row begins with and returns the
// x position after them.
func (p *painter) leafStart(x int, icon draw.Icon) int {
	p.selection()
	x = p.space(x, textPadding)
	x = p.icon(x, draw.IconNone, HotSpotNone, 0)
	x = p.icon(x, icon, HotSpotNone, 0)
	return p.addressOffset(x)
}

// finish closes the row and records its size.
func (p *painter) finish(x int) {
	p.dropArrow()
	p.deleteIcon()
	p.res.Size.Width = max(p.res.Size.Width, x)
	p.res.Size.Height += p.view.Font.Height
}

// textPadding is the cell gap left of every row, where the drop arrow goes.
const textPadding = draw.IconSize
