package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/nodes"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
	clock time.Time
}

// NewTestHelper creates a test helper with a model
func NewTestHelper(opts ModelOptions) *TestHelper {
	h := &TestHelper{
		model: NewModel(opts),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.model.now = func() time.Time { return h.clock }
	return h
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKey simulates a key press but does not execute async commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// SendMsg delivers an arbitrary message
func (h *TestHelper) SendMsg(msg tea.Msg) *TestHelper {
	return h.send(msg)
}

// Click presses the left button at a point in memory view coordinates.
// The clock advances first so consecutive clicks never pair up.
func (h *TestHelper) Click(p draw.Point) *TestHelper {
	h.clock = h.clock.Add(time.Second)
	return h.press(p, tea.MouseButtonLeft, false, false)
}

// ShiftClick extends the selection to p.
func (h *TestHelper) ShiftClick(p draw.Point) *TestHelper {
	h.clock = h.clock.Add(time.Second)
	return h.press(p, tea.MouseButtonLeft, true, false)
}

// CtrlClick toggles the node at p.
func (h *TestHelper) CtrlClick(p draw.Point) *TestHelper {
	h.clock = h.clock.Add(time.Second)
	return h.press(p, tea.MouseButtonLeft, false, true)
}

// RightClick presses the right button at p.
func (h *TestHelper) RightClick(p draw.Point) *TestHelper {
	h.clock = h.clock.Add(time.Second)
	return h.press(p, tea.MouseButtonRight, false, false)
}

// DoubleClick sends two left presses at p inside the double click window.
func (h *TestHelper) DoubleClick(p draw.Point) *TestHelper {
	h.Click(p)
	h.clock = h.clock.Add(50 * time.Millisecond)
	return h.press(p, tea.MouseButtonLeft, false, false)
}

func (h *TestHelper) press(p draw.Point, b tea.MouseButton, shift, ctrl bool) *TestHelper {
	return h.send(tea.MouseMsg{
		X:      p.X,
		Y:      p.Y + headerHeight,
		Shift:  shift,
		Ctrl:   ctrl,
		Action: tea.MouseActionPress,
		Button: b,
	})
}

// Move simulates pointer motion to p.
func (h *TestHelper) Move(p draw.Point) *TestHelper {
	return h.send(tea.MouseMsg{X: p.X, Y: p.Y + headerHeight, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
}

// Wheel scrolls one wheel notch.
func (h *TestHelper) Wheel(down bool) *TestHelper {
	b := tea.MouseButtonWheelUp
	if down {
		b = tea.MouseButtonWheelDown
	}
	return h.send(tea.MouseMsg{X: 1, Y: headerHeight, Action: tea.MouseActionPress, Button: b})
}

// Tick delivers one refresh tick
func (h *TestHelper) Tick() *TestHelper {
	return h.send(tickMsg(h.clock))
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// Spot returns the first hot spot of node n with type t and, for edit
// spots, field id. ok is false when the node is not on screen.
func (h *TestHelper) Spot(n nodes.Node, t nodes.HotSpotType, id int) (nodes.HotSpot, bool) {
	for _, s := range h.model.control.Dispatcher().HotSpots() {
		if s.Node != n || s.Type != t {
			continue
		}
		if t == nodes.HotSpotEdit && s.ID != id {
			continue
		}
		return s, true
	}
	return nodes.HotSpot{}, false
}

// RowPoint returns a point in the middle of n's row.
func (h *TestHelper) RowPoint(n nodes.Node) (draw.Point, bool) {
	s, ok := h.Spot(n, nodes.HotSpotSelect, 0)
	if !ok {
		return draw.Point{}, false
	}
	return draw.Point{X: s.Rect.X + s.Rect.Width/2, Y: s.Rect.Y}, true
}
