package termcanvas

import "github.com/joshuapare/memlens/draw"

// Glyph is the terminal rendering of an icon. Text is padded or cut to
// draw.IconSize cells.
type Glyph struct {
	Text  string
	Color draw.Color
}

// DefaultGlyphs returns the built-in icon table.
func DefaultGlyphs() map[draw.Icon]Glyph {
	return map[draw.Icon]Glyph{
		draw.IconOpen:       {"▾", "#AAAAAA"},
		draw.IconClosed:     {"▸", "#AAAAAA"},
		draw.IconClass:      {"C", "#7D56F4"},
		draw.IconStruct:     {"S", "#7D56F4"},
		draw.IconArray:      {"[]", "#00D7FF"},
		draw.IconHex:        {"x", "#666666"},
		draw.IconInteger:    {"#", "#04B575"},
		draw.IconFloat:      {"f", "#04B575"},
		draw.IconText:       {"T", "#FFA500"},
		draw.IconDelete:     {"✕", "#FF4B4B"},
		draw.IconDropArrow:  {"▼", "#00D7FF"},
		draw.IconChangeType: {"⇄", "#00D7FF"},
		draw.IconLeftArrow:  {"◂", "#AAAAAA"},
		draw.IconRightArrow: {"▸", "#AAAAAA"},
		draw.IconInvalid:    {"!", "#FF4B4B"},
	}
}
