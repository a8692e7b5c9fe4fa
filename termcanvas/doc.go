// Package termcanvas implements draw.Surface on a grid of terminal cells so
// a structure tree can be rendered inside a bubbletea program.
//
// Coordinates are cells and the matching font is draw.Font{Width: 1,
// Height: 1}. Icons are drawn from a glyph table, two cells wide.
package termcanvas
