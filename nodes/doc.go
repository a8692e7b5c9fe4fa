// Package nodes implements the typed structure tree drawn by the memory view.
//
// # Overview
//
// A tree is rooted at a ClassNode placed at an absolute address. Containers
// (ClassNode, StructNode) own ordered children that are laid out back to
// back, so a child's offset is always the sum of the sizes before it.
// Leaves interpret their bytes: hex nodes show raw bytes, numeric nodes a
// typed scalar, text nodes a character buffer. An ArrayNode repeats one
// element node.
//
// # Drawing
//
// Draw is a pure function of the node, its ViewInfo and the snapshot bytes.
// It paints to the view's Surface and returns the drawn size together with
// the HotSpots of the frame: rectangles tied to a node and an action. The
// selection, input and view packages act on nothing but those hot spots.
//
// A node that panics while drawing does not take the frame down. DrawSafe
// blanks its region, discards its hot spots and reports a DrawFault.
//
// # Editing
//
// An edit arrives as the hot spot that was clicked, carrying the user's
// text. Update either changes tree state (name, comment, array count) or
// writes through the process behind the hot spot's snapshot. Invalid text
// returns an error wrapping ErrInvalidInput and leaves everything as it was.
package nodes
