package nodes

import (
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// HotSpotType is the action an interactive region triggers.
type HotSpotType int

const (
	HotSpotNone HotSpotType = iota
	HotSpotEdit
	HotSpotClick
	HotSpotDoubleClick
	HotSpotOpenClose
	HotSpotSelect
	HotSpotDrop
	HotSpotDelete
	HotSpotChangeClassType
	HotSpotChangeWrappedType
)

func (t HotSpotType) String() string {
	switch t {
	case HotSpotEdit:
		return "Edit"
	case HotSpotClick:
		return "Click"
	case HotSpotDoubleClick:
		return "DoubleClick"
	case HotSpotOpenClose:
		return "OpenClose"
	case HotSpotSelect:
		return "Select"
	case HotSpotDrop:
		return "Drop"
	case HotSpotDelete:
		return "Delete"
	case HotSpotChangeClassType:
		return "ChangeClassType"
	case HotSpotChangeWrappedType:
		return "ChangeWrappedType"
	default:
		return "None"
	}
}

// Hot spot ids. Non-negative ids below AddressID are node specific field
// indexes (the byte index of a hex node, the value field of a numeric node).
const (
	NoneID     = -1
	AddressID  = 100
	NameID     = 101
	CommentID  = 102
	ReadOnlyID = 999
)

// HotSpot is one interactive region of the current frame. Hot spots are
// values: they are rebuilt on every render pass and never outlive it.
type HotSpot struct {
	Rect draw.Rect
	Type HotSpotType
	ID   int

	// Text is the field content for Edit spots. The editor replaces it with
	// the user's input before calling Node.Update.
	Text string

	Node    Node
	Address memory.Address   // absolute address of Node
	Memory  *memory.Snapshot // snapshot the spot was computed against
	Level   int
}

// Process returns the process behind the spot's snapshot, or nil.
func (h HotSpot) Process() memory.Process {
	if h.Memory == nil {
		return nil
	}
	return h.Memory.Process()
}

// WithText returns a copy of h carrying text.
func (h HotSpot) WithText(text string) HotSpot {
	h.Text = text
	return h
}

// Contains reports whether p lies inside the spot.
func (h HotSpot) Contains(p draw.Point) bool {
	return h.Rect.Contains(p)
}
