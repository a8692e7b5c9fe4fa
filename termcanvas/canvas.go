package termcanvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/joshuapare/memlens/draw"
)

// Cell is one terminal cell.
type Cell struct {
	Rune rune
	FG   draw.Color
	BG   draw.Color

	// cont marks the right half of a wide rune.
	cont bool
}

// Canvas is a draw.Surface backed by a grid of terminal cells. Everything
// painted outside the grid is clipped.
type Canvas struct {
	width, height int
	cells         []Cell
	icons         map[draw.Icon]Glyph
}

// New returns a blank canvas of width by height cells.
func New(width, height int) *Canvas {
	c := &Canvas{icons: DefaultGlyphs()}
	c.Resize(width, height)
	return c
}

// Resize discards the contents and resizes the grid.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.cells = make([]Cell, c.width*c.height)
	c.Clear()
}

// Clear fills every cell with a space and no colours.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
}

// SetGlyphs replaces the icon table.
func (c *Canvas) SetGlyphs(g map[draw.Icon]Glyph) { c.icons = g }

// Width returns the width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the height in cells.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the grid as a rectangle.
func (c *Canvas) Bounds() draw.Rect { return draw.R(0, 0, c.width, c.height) }

// At returns the cell at x, y. Out of range reads return a blank cell.
func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// FillRect implements draw.Surface.
func (c *Canvas) FillRect(r draw.Rect, bg draw.Color) {
	r = r.Intersect(c.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.cells[y*c.width+x] = Cell{Rune: ' ', BG: bg}
		}
	}
}

// DrawText implements draw.Surface. The background of every touched cell is
// kept.
func (c *Canvas) DrawText(text string, x, y int, fg draw.Color) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.put(x, y, r, fg, false)
		if w == 2 {
			c.put(x+1, y, 0, fg, true)
		}
		x += w
		if x >= c.width {
			return
		}
	}
}

func (c *Canvas) put(x, y int, r rune, fg draw.Color, cont bool) {
	if !c.inside(x, y) {
		return
	}
	cell := &c.cells[y*c.width+x]
	cell.Rune, cell.FG, cell.cont = r, fg, cont
}

// DrawIcon implements draw.Surface.
func (c *Canvas) DrawIcon(icon draw.Icon, x, y int) {
	g, ok := c.icons[icon]
	if !ok {
		return
	}
	c.DrawText(runewidth.FillRight(runewidth.Truncate(g.Text, draw.IconSize, ""), draw.IconSize), x, y, g.Color)
}

// String returns the grid as plain text, one line per row with trailing
// spaces trimmed.
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := range c.height {
		var line strings.Builder
		for x := range c.width {
			cell := c.cells[y*c.width+x]
			if cell.cont {
				continue
			}
			line.WriteRune(cell.Rune)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render returns the grid styled for the terminal. Runs of cells sharing
// colours are rendered with one lipgloss style.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y := range c.height {
		var line strings.Builder
		var run strings.Builder
		var fg, bg draw.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(style(fg, bg).Render(run.String()))
			run.Reset()
		}
		for x := range c.width {
			cell := c.cells[y*c.width+x]
			if cell.cont {
				continue
			}
			if cell.FG != fg || cell.BG != bg {
				flush()
				fg, bg = cell.FG, cell.BG
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func style(fg, bg draw.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s
}

var _ draw.Surface = (*Canvas)(nil)
