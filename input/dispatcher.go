// Package input turns pointer and keyboard events into node and selection
// operations by hit testing the hot spots of the last render pass.
package input

import (
	"fmt"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/nodes"
	"github.com/joshuapare/memlens/selection"
)

// ContextMenuKeyPos is where the Menu key opens the context menu.
var ContextMenuKeyPos = draw.Point{X: 10, Y: 10}

// Hit precedence for overlapping hot spots. Types not listed are never
// activated by that gesture.
var (
	clickOrder = []nodes.HotSpotType{
		nodes.HotSpotOpenClose,
		nodes.HotSpotClick,
		nodes.HotSpotDelete,
		nodes.HotSpotDrop,
		nodes.HotSpotChangeClassType,
		nodes.HotSpotChangeWrappedType,
		nodes.HotSpotSelect,
	}
	doubleClickOrder = []nodes.HotSpotType{
		nodes.HotSpotDoubleClick,
		nodes.HotSpotClick,
		nodes.HotSpotEdit,
		nodes.HotSpotSelect,
	}
)

// Dispatcher routes events to the hot spots of the current frame.
type Dispatcher struct {
	sel    *selection.Controller
	collab Collaborator

	hotSpots []nodes.HotSpot
	editor   Editor
}

// NewDispatcher creates a dispatcher. collab may be nil, in which case
// forwarded actions are dropped.
func NewDispatcher(sel *selection.Controller, collab Collaborator) *Dispatcher {
	return &Dispatcher{sel: sel, collab: collab}
}

// SetHotSpots installs the hot spots of a new frame, replacing the old ones.
func (d *Dispatcher) SetHotSpots(spots []nodes.HotSpot) { d.hotSpots = spots }

// HotSpots returns the hot spots of the current frame.
func (d *Dispatcher) HotSpots() []nodes.HotSpot { return d.hotSpots }

// Selection returns the selection controller.
func (d *Dispatcher) Selection() *selection.Controller { return d.sel }

// Editor returns the state of the inline editor.
func (d *Dispatcher) Editor() Editor { return d.editor }

// hit returns the first spot under p in precedence order.
func (d *Dispatcher) hit(p draw.Point, order []nodes.HotSpotType) (nodes.HotSpot, bool) {
	for _, t := range order {
		for _, h := range d.hotSpots {
			if h.Type == t && h.Contains(p) {
				return h, true
			}
		}
	}
	return nodes.HotSpot{}, false
}

// Click handles a single press.
func (d *Dispatcher) Click(ev MouseEvent) Outcome {
	d.closeEditor()

	if ev.Button == ButtonRight {
		return d.rightClick(ev)
	}

	spot, ok := d.hit(ev.Pos, clickOrder)
	if !ok {
		return Outcome{}
	}

	switch spot.Type {
	case nodes.HotSpotOpenClose:
		spot.Node.ToggleLevelOpen(spot.Level)
	case nodes.HotSpotClick:
		d.update(spot)
	case nodes.HotSpotDelete:
		d.remove(spot.Node)
	case nodes.HotSpotDrop:
		d.forward(func(c Collaborator) { c.ShowContextMenu(ev.Pos) })
	case nodes.HotSpotChangeClassType:
		d.forward(func(c Collaborator) { c.ChangeClassType(spot.Node, ev.Pos) })
	case nodes.HotSpotChangeWrappedType:
		d.forward(func(c Collaborator) { c.ChangeWrappedType(spot.Node, ev.Pos) })
	case nodes.HotSpotSelect:
		d.selectSpot(spot, ev.Mods)
	}
	return Outcome{Handled: true, Invalidate: true}
}

func (d *Dispatcher) rightClick(ev MouseEvent) Outcome {
	spot, ok := d.hit(ev.Pos, []nodes.HotSpotType{nodes.HotSpotSelect})
	if !ok {
		return Outcome{}
	}
	if d.sel.Count() <= 1 {
		d.sel.Select(spot)
	}
	d.forward(func(c Collaborator) { c.ShowContextMenu(ev.Pos) })
	return Outcome{Handled: true, Invalidate: true}
}

// selectSpot matches modifiers exactly: any other combination is ignored.
func (d *Dispatcher) selectSpot(spot nodes.HotSpot, mods Modifiers) {
	switch mods {
	case 0:
		d.sel.Select(spot)
	case ModCtrl:
		d.sel.Toggle(spot)
	case ModShift:
		if !d.sel.ExtendTo(spot, d.hotSpots) {
			logger.Debug("range selection ignored", "node", spot.Node.Name(), "type", spot.Node.TypeName())
		}
	default:
		logger.Debug("selection ignored", "node", spot.Node.Name(), "modifiers", int(mods))
	}
}

// DoubleClick handles a double press: node actions first, then the inline
// editor, and finally expanding or collapsing the row.
func (d *Dispatcher) DoubleClick(ev MouseEvent) Outcome {
	d.closeEditor()

	spot, ok := d.hit(ev.Pos, doubleClickOrder)
	if !ok {
		return Outcome{}
	}

	switch spot.Type {
	case nodes.HotSpotDoubleClick, nodes.HotSpotClick:
		d.update(spot)
	case nodes.HotSpotEdit:
		d.editor = Editor{Spot: spot, Text: spot.Text, ReadOnly: spot.ID == nodes.ReadOnlyID, open: true}
	case nodes.HotSpotSelect:
		spot.Node.ToggleLevelOpen(spot.Level)
	}
	return Outcome{Handled: true, Invalidate: true}
}

// CommitEdit applies text through the edited spot and closes the editor.
// Rejected input leaves the node unchanged and is returned.
func (d *Dispatcher) CommitEdit(text string) (Outcome, error) {
	if !d.editor.open {
		return Outcome{}, nil
	}
	ed := d.editor
	d.closeEditor()

	if ed.ReadOnly {
		return Outcome{Handled: true}, nodes.ErrReadOnly
	}
	if err := ed.Spot.Node.Update(ed.Spot.WithText(text)); err != nil {
		logger.Debug("edit rejected", "node", ed.Spot.Node.TypeName(), "field", ed.Spot.ID, "text", text, "error", err)
		return Outcome{Handled: true, Invalidate: true}, err
	}
	return Outcome{Handled: true, Invalidate: true}, nil
}

// CancelEdit closes the editor without applying anything.
func (d *Dispatcher) CancelEdit() { d.closeEditor() }

func (d *Dispatcher) closeEditor() { d.editor = Editor{} }

// Key handles navigation keys. Keys are left to the editor while it is open.
func (d *Dispatcher) Key(ev KeyEvent) Outcome {
	if d.editor.open {
		return Outcome{}
	}

	switch ev.Key {
	case KeyMenu:
		if d.sel.Count() == 0 {
			return Outcome{}
		}
		d.forward(func(c Collaborator) { c.ShowContextMenu(ContextMenuKeyPos) })
		return Outcome{Handled: true}

	case KeyUp, KeyDown:
		dir := selection.Down
		if ev.Key == KeyUp {
			dir = selection.Up
		}
		scroll := d.sel.MoveVertical(d.hotSpots, dir, ev.Mods.Has(ModShift))
		return Outcome{Handled: true, Invalidate: true, Scroll: scroll}

	case KeyLeft, KeyRight:
		if !d.sel.SetOpen(ev.Key == KeyRight) {
			return Outcome{}
		}
		return Outcome{Handled: true, Invalidate: true}
	}
	return Outcome{}
}

// Hover returns the tooltip for p, if any.
func (d *Dispatcher) Hover(p draw.Point) (Tooltip, bool) {
	if n := d.sel.Count(); n > 1 {
		return Tooltip{Text: fmt.Sprintf("%d Nodes selected, %d bytes", n, d.sel.Size())}, true
	}

	spot, ok := d.hit(p, []nodes.HotSpotType{nodes.HotSpotSelect})
	if !ok {
		return Tooltip{}, false
	}
	if addr, ok := spot.Node.UseMemoryPreviewToolTip(spot, spot.Memory); ok {
		return Tooltip{Preview: true, PreviewAddress: addr, Spot: spot}, true
	}
	text := spot.Node.ToolTipText(spot, spot.Memory)
	if text == "" {
		return Tooltip{}, false
	}
	return Tooltip{Text: text, Spot: spot}, true
}

// Scroll closes the editor; the host moves the view.
func (d *Dispatcher) Scroll() Outcome {
	d.closeEditor()
	return Outcome{Handled: true, Invalidate: true}
}

// Remove deletes n from its parent container and drops it from the
// selection. Roots and array elements cannot be removed.
func (d *Dispatcher) Remove(n nodes.Node) error {
	parent, ok := n.ParentNode().(nodes.Container)
	if !ok {
		return fmt.Errorf("%w: %s has no parent container", nodes.ErrNodeNotFound, n.TypeName())
	}
	if err := parent.RemoveNode(n); err != nil {
		return err
	}
	d.sel.Forget(n)
	if d.editor.open && nodes.IsAncestor(n, d.editor.Spot.Node) {
		d.closeEditor()
	}
	return nil
}

func (d *Dispatcher) remove(n nodes.Node) {
	if err := d.Remove(n); err != nil {
		logger.Debug("delete ignored", "node", n.Name(), "error", err)
	}
}

func (d *Dispatcher) update(spot nodes.HotSpot) {
	if err := spot.Node.Update(spot); err != nil {
		logger.Debug("update rejected", "node", spot.Node.TypeName(), "field", spot.ID, "error", err)
	}
}

func (d *Dispatcher) forward(fn func(Collaborator)) {
	if d.collab != nil {
		fn(d.collab)
	}
}
