package draw

// Color is a surface colour in "#RRGGBB" form. The empty Color means
// "leave whatever is already there".
type Color string

// Icon identifies one of the small glyphs nodes place in front of their rows.
type Icon int

const (
	IconNone Icon = iota
	IconOpen
	IconClosed
	IconClass
	IconStruct
	IconArray
	IconHex
	IconInteger
	IconFloat
	IconText
	IconDelete
	IconDropArrow
	IconChangeType
	IconLeftArrow
	IconRightArrow
	IconInvalid
)

// Font carries the metrics of the monospace font the surface draws with.
// A terminal surface uses a 1x1 cell font.
type Font struct {
	Width  int
	Height int
}

// TextWidth returns the width of n characters.
func (f Font) TextWidth(n int) int { return n * f.Width }

// IconSize is the width of an icon expressed in font cells. Icons are one
// font row high.
const IconSize = 2

// IconWidth returns the width an icon occupies with this font.
func (f Font) IconWidth() int { return IconSize * f.Width }

// Surface is the painting collaborator. Implementations clip everything to
// their own bounds; callers may paint partly or fully outside.
type Surface interface {
	// FillRect paints r with the background colour c.
	FillRect(r Rect, c Color)

	// DrawText paints text starting at x, y in foreground colour c.
	DrawText(text string, x, y int, c Color)

	// DrawIcon paints icon with its top left corner at x, y.
	DrawIcon(icon Icon, x, y int)
}

// Discard is a Surface that paints nothing. Useful for layout-only passes.
var Discard Surface = discard{}

type discard struct{}

func (discard) FillRect(Rect, Color)             {}
func (discard) DrawText(string, int, int, Color) {}
func (discard) DrawIcon(Icon, int, int)          {}
