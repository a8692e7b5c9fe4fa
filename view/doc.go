// Package view runs render passes over a structure tree and owns the state
// that lives between them.
//
// # Overview
//
// Render is a single pass: it clears the client area, draws the root class
// through nodes.DrawSafe and returns the drawn size, the hot spots and any
// draw faults. It keeps nothing.
//
// Control is the stateful wrapper a host embeds. Each Paint refreshes the
// snapshot at the root's address, renders, resizes the scroll bars and hands
// the new hot spots to the input dispatcher, so the next event is always hit
// tested against the frame the user is looking at.
//
// # Scrolling
//
// Vertical scrolling is in rows and horizontal scrolling in cells. Keyboard
// navigation that reaches the end of a sibling list scrolls by one row.
package view
