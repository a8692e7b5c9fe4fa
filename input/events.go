package input

import (
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// MouseEvent is a pointer press in client coordinates.
type MouseEvent struct {
	Pos    draw.Point
	Button Button
	Mods   Modifiers
}

// Key is a navigation key the dispatcher understands.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyMenu
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// Collaborator receives the actions the dispatcher does not handle itself.
type Collaborator interface {
	// ShowContextMenu opens the node context menu at p.
	ShowContextMenu(p draw.Point)
	// ChangeClassType asks for a new class for the struct node n.
	ChangeClassType(n nodes.Node, p draw.Point)
	// ChangeWrappedType asks for a new element type for the wrapper node n.
	ChangeWrappedType(n nodes.Node, p draw.Point)
}

// Outcome tells the host what to do after an event.
type Outcome struct {
	Handled    bool
	Invalidate bool // repaint
	Scroll     int  // rows to scroll, negative is up
}

// Tooltip is the hover information for a point.
type Tooltip struct {
	Text string

	// Preview is set when the hovered node points into mapped memory that
	// should be shown instead of Text.
	Preview        bool
	PreviewAddress memory.Address

	Spot nodes.HotSpot
}

// Editor is the inline edit session bound to one Edit hot spot.
type Editor struct {
	Spot     nodes.HotSpot
	Text     string
	ReadOnly bool
	open     bool
}

// IsOpen reports whether an edit session is active.
func (e Editor) IsOpen() bool { return e.open }
