package view

import (
	"time"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

// Frame is everything one render pass reads.
type Frame struct {
	Root     *nodes.ClassNode
	Memory   *memory.Snapshot // already refreshed at Root's address
	Surface  draw.Surface
	Font     draw.Font
	Settings *config.Settings

	ClientArea draw.Rect
	ScrollX    int // cells
	ScrollY    int // rows

	MultipleNodesSelected bool
	Now                   time.Time
}

// Result is the output of a render pass.
type Result struct {
	// Size is the extent of the whole tree, independent of scrolling.
	Size     draw.Size
	HotSpots []nodes.HotSpot
	Faults   []nodes.DrawFault
}

// Render clears the client area and draws the tree. The hot spot list is
// built from scratch every pass.
func Render(f Frame) Result {
	bg := f.Settings.BackgroundColor()
	f.Surface.FillRect(f.ClientArea, bg)
	if f.Root == nil {
		return Result{}
	}

	originX := f.ClientArea.X - f.Font.TextWidth(f.ScrollX)
	originY := f.ClientArea.Y - f.ScrollY*f.Font.Height

	view := nodes.ViewInfo{
		Surface:               f.Surface,
		Font:                  f.Font,
		Settings:              f.Settings,
		Memory:                f.Memory,
		ClientArea:            f.ClientArea,
		Address:               f.Root.Address(),
		MultipleNodesSelected: f.MultipleNodesSelected,
		CurrentTime:           f.Now,
	}
	res := nodes.DrawSafe(f.Root, view, originX, originY)

	for _, fault := range res.Faults {
		if fault.Node == nodes.Node(f.Root) {
			// Nothing below a failed root is trustworthy.
			rest := draw.R(f.ClientArea.X, fault.Region.Y, f.ClientArea.Width, f.ClientArea.Bottom()-fault.Region.Y)
			f.Surface.FillRect(rest.Intersect(f.ClientArea), bg)
		}
	}

	return Result{
		Size:     draw.Size{Width: max(res.Size.Width-originX, 0), Height: res.Size.Height},
		HotSpots: res.HotSpots,
		Faults:   res.Faults,
	}
}
