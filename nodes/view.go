package nodes

import (
	"fmt"
	"time"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// ViewInfo is the draw context passed down the tree. It is a value: nested
// draws get their own modified copy and nothing flows back through it.
type ViewInfo struct {
	Surface    draw.Surface
	Font       draw.Font
	Settings   *config.Settings
	Memory     *memory.Snapshot // offset 0 is the start of the enclosing structure
	ClientArea draw.Rect

	// Address is the absolute address of Memory's offset 0.
	Address memory.Address
	Level   int

	MultipleNodesSelected bool
	CurrentTime           time.Time
}

// Nested returns the context for drawing the content of a structure that
// starts offset bytes into the current one.
func (v ViewInfo) Nested(offset int) ViewInfo {
	if v.Memory != nil {
		v.Memory = v.Memory.Slice(offset)
	}
	v.Address = v.Address.Add(offset)
	v.Level++
	return v
}

// rowVisible reports whether a row starting at y with the given height
// touches the client area.
func (v ViewInfo) rowVisible(y, height int) bool {
	return y < v.ClientArea.Bottom() && y+height > v.ClientArea.Y
}

// DrawResult is what a node reports back from Draw.
type DrawResult struct {
	Size     draw.Size
	HotSpots []HotSpot
	Faults   []DrawFault
}

// DrawFault records a subtree whose draw failed. Its region was blanked and
// its hot spots discarded.
type DrawFault struct {
	Node   Node
	Region draw.Rect
	Err    error
}

// Failed reports whether any subtree of the result faulted.
func (r DrawResult) Failed() bool { return len(r.Faults) > 0 }

// absorb appends child hot spots and faults, stacking the child below the
// rows drawn so far. indent is added to the child's width.
func (r *DrawResult) absorb(child DrawResult, indent int) {
	r.Size.Width = max(r.Size.Width, child.Size.Width+indent)
	r.Size.Height += child.Size.Height
	r.HotSpots = append(r.HotSpots, child.HotSpots...)
	r.Faults = append(r.Faults, child.Faults...)
}

// DrawSafe draws n and converts a panic inside its subtree into a DrawFault.
// The faulted region is painted with the background colour and none of the
// subtree's hot spots survive.
func DrawSafe(n Node, view ViewInfo, x, y int) (res DrawResult) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		height := safeDrawnHeight(n, view)
		region := draw.R(view.ClientArea.X, y, view.ClientArea.Width, height)
		if view.Surface != nil && view.Settings != nil {
			view.Surface.FillRect(region, view.Settings.BackgroundColor())
		}
		res = DrawResult{
			Size:   draw.Size{Height: height},
			Faults: []DrawFault{{Node: n, Region: region, Err: fmt.Errorf("%w: %s: %v", ErrDrawFault, n.TypeName(), r)}},
		}
	}()
	return n.Draw(view, x, y)
}

func safeDrawnHeight(n Node, view ViewInfo) (h int) {
	defer func() {
		if recover() != nil {
			h = view.Font.Height
		}
	}()
	return n.CalculateDrawnHeight(view)
}
