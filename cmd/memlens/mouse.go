package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/input"
)

// doubleClickWindow is the longest gap between two presses on the same cell
// that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// clickTracker detects double clicks from a stream of presses.
type clickTracker struct {
	at     time.Time
	pos    draw.Point
	button input.Button
	armed  bool
}

// press records a press and reports whether it completes a double click.
// A completed double click disarms the tracker so a third press starts over.
func (c *clickTracker) press(now time.Time, p draw.Point, b input.Button) bool {
	if c.armed && c.button == b && c.pos == p && now.Sub(c.at) <= doubleClickWindow {
		*c = clickTracker{}
		return true
	}
	*c = clickTracker{at: now, pos: p, button: b, armed: true}
	return false
}

func mouseButton(b tea.MouseButton) (input.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft, true
	case tea.MouseButtonRight:
		return input.ButtonRight, true
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle, true
	}
	return 0, false
}

func mouseMods(msg tea.MouseMsg) input.Modifiers {
	var mods input.Modifiers
	if msg.Shift {
		mods |= input.ModShift
	}
	if msg.Ctrl {
		mods |= input.ModCtrl
	}
	if msg.Alt {
		mods |= input.ModAlt
	}
	return mods
}
