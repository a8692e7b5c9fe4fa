package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/input"
	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/memory"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas.Resize(msg.Width, m.viewHeight())
		m.help.Width = max(min(msg.Width-8, 72), 1)
		m.help.Height = max(msg.Height-8, 1)
		m.help.SetContent(m.helpContent())
		m.paint()
		return m, nil

	case tickMsg:
		if !m.paused {
			m.paint()
		}
		return m, m.tick()

	case selectionChangedMsg:
		if !msg.stale {
			m.selCount, m.selSize = msg.count, msg.size
		}
		return m, m.listen()

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// viewHeight is the number of rows left for the memory view.
func (m Model) viewHeight() int {
	return max(m.height-headerHeight-statusHeight, 0)
}

// paint refreshes memory and redraws the canvas.
func (m *Model) paint() {
	if m.canvas.Width() == 0 || m.canvas.Height() == 0 {
		return
	}
	_, err := m.control.Paint(m.canvas, m.canvas.Bounds())
	if err != nil && (m.memErr == nil || m.memErr.Error() != err.Error()) {
		logger.Warn("memory refresh failed", "error", err)
	}
	m.memErr = err
	m.frame = m.canvas.Render()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.editing {
		return m.handleEditorKey(msg)
	}

	if m.menu != nil {
		return m.handleMenuKey(msg)
	}

	m.tooltip = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.ExtendUp):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyUp, Mods: input.ModShift})
	case key.Matches(msg, m.keys.ExtendDown):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyDown, Mods: input.ModShift})
	case key.Matches(msg, m.keys.Up):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyUp})
	case key.Matches(msg, m.keys.Down):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyDown})
	case key.Matches(msg, m.keys.Collapse):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyLeft})
	case key.Matches(msg, m.keys.Expand):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyRight})
	case key.Matches(msg, m.keys.Menu):
		return m.dispatchKey(input.KeyEvent{Key: input.KeyMenu})

	case key.Matches(msg, m.keys.PageUp):
		m.control.Scroll(-max(m.viewHeight()-1, 1))
		m.paint()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.control.Scroll(max(m.viewHeight()-1, 1))
		m.paint()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.control.VerticalScroll().Reset()
		m.paint()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		cmd := m.report(m.addBytes(8), "Added 8 bytes")
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if m.control.Selection().Count() == 0 {
			cmd := m.setStatus("Nothing selected")
			return m, cmd
		}
		cmd := m.report(m.deleteSelected(), "Deleted")
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		cmd := m.copySelection()
		return m, cmd
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			cmd := m.setStatus("Refresh paused")
			return m, cmd
		}
		cmd := m.setStatus("Refresh resumed")
		return m, cmd
	}
	return m, nil
}

func (m Model) dispatchKey(ev input.KeyEvent) (tea.Model, tea.Cmd) {
	out := m.control.Key(ev)
	cmd := m.afterInput(out)
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.control.CancelEdit()
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		text := m.editor.Value()
		_, err := m.control.CommitEdit(text)
		m.closeEditor()
		m.paint()
		if err != nil {
			cmd := m.setStatus(fmt.Sprintf("Edit rejected: %v", err))
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := draw.Point{X: msg.X, Y: msg.Y - headerHeight}

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		rows := wheelRows
		if msg.Button == tea.MouseButtonWheelUp {
			rows = -rows
		}
		m.control.Scroll(rows)
		m.closeEditor()
		m.tooltip = ""
		m.paint()
		return m, nil

	case msg.Action == tea.MouseActionMotion:
		if m.menu == nil && !m.editing && !m.showHelp {
			m.hoverAt(p)
		}
		return m, nil

	case msg.Action == tea.MouseActionPress:
		if m.showHelp {
			return m, nil
		}
		if m.menu != nil {
			m.menu = nil
			return m, nil
		}
		btn, ok := mouseButton(msg.Button)
		if !ok {
			return m, nil
		}
		m.closeEditor()
		m.tooltip = ""

		ev := input.MouseEvent{Pos: p, Button: btn, Mods: mouseMods(msg)}
		var out input.Outcome
		if m.clicks.press(m.now(), p, btn) && btn == input.ButtonLeft {
			out = m.control.DoubleClick(ev)
		} else {
			out = m.control.Click(ev)
		}
		cmd := m.afterInput(out)
		return m, cmd
	}
	return m, nil
}

// afterInput repaints and opens whatever the event asked for: a menu from
// the collaborator or the inline editor.
func (m *Model) afterInput(out input.Outcome) tea.Cmd {
	if out.Invalidate || out.Scroll != 0 {
		m.paint()
	}
	if req := m.actions.take(); req != nil {
		m.menu = m.buildMenu(req)
		return nil
	}
	return m.syncEditor()
}

// syncEditor opens the text input when the dispatcher started an edit.
func (m *Model) syncEditor() tea.Cmd {
	ed := m.control.Editor()
	if !ed.IsOpen() {
		m.closeEditor()
		return nil
	}
	if m.editing {
		return nil
	}
	m.editing = true
	m.editor.SetValue(ed.Text)
	m.editor.CursorEnd()
	m.editor.Width = max(ed.Spot.Rect.Width+4, 12)
	return m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.editing = false
	m.editor.Blur()
}

// hoverAt shows the tooltip for p, or a memory preview when the hovered
// node points into mapped memory.
func (m *Model) hoverAt(p draw.Point) {
	tip, ok := m.control.Hover(p)
	if !ok {
		m.tooltip = ""
		return
	}
	m.tipPos = p
	if tip.Preview {
		snap, err := m.control.Preview(tip.PreviewAddress, previewSize)
		if err != nil {
			logger.Debug("preview incomplete", "address", tip.PreviewAddress.String(), "error", err)
		}
		m.tooltip = formatPreview(tip.PreviewAddress, snap, previewSize)
		return
	}
	m.tooltip = tip.Text
}

// setStatus shows msg and clears it after two seconds.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMessage = msg
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// report repaints after a structural change and sets the status line.
func (m *Model) report(err error, ok string) tea.Cmd {
	m.paint()
	if err != nil {
		return m.setStatus(err.Error())
	}
	return m.setStatus(ok)
}

// formatPreview renders n bytes at addr as hex rows.
func formatPreview(addr memory.Address, snap *memory.Snapshot, n int) string {
	var out []byte
	for off := 0; off < n; off += previewRow {
		if off > 0 {
			out = append(out, '\n')
		}
		out = fmt.Appendf(out, "%s ", addr.Add(off))
		for i := range previewRow {
			if snap.IsValidOffset(off+i, 1) {
				out = fmt.Appendf(out, " %02X", snap.ReadUInt8(off+i))
			} else {
				out = append(out, " ??"...)
			}
		}
	}
	return string(out)
}
