package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/memlens/draw"
)

// View renders the entire UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.frame,
		m.renderStatus(),
	)

	switch {
	case m.showHelp:
		return overlay.New(
			staticView(helpBoxStyle.Render(m.help.View())),
			staticView(base),
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	case m.menu != nil:
		return m.overlayAt(m.menu.View(), base, m.menu.pos)
	case m.editing:
		spot := m.control.Editor().Spot.Rect
		// The border puts the text one cell down and right of the corner.
		return m.overlayAt(editorStyle.Render(m.editor.View()), base, draw.Point{X: spot.X - 1, Y: spot.Y - 1})
	case m.tooltip != "":
		return m.overlayAt(tooltipStyle.Render(m.tooltip), base, m.tipPos.Offset(2, 1))
	}
	return base
}

// overlayAt draws fg over bg with its corner at p in view coordinates,
// shifted back inside the screen when it would spill over an edge.
func (m Model) overlayAt(fg, bg string, p draw.Point) string {
	x := min(p.X, m.width-lipgloss.Width(fg))
	y := min(p.Y+headerHeight, m.height-lipgloss.Height(fg))
	return overlay.New(
		staticView(fg),
		staticView(bg),
		overlay.Left,
		overlay.Top,
		max(x, 0),
		max(y, 0),
	).View()
}

func (m Model) renderHeader() string {
	title := headerStyle.Render(" memlens ")
	info := "no class"
	if root := m.control.Root(); root != nil {
		info = fmt.Sprintf("%s │ %s @ %s │ %d bytes", m.title, root.Name(), root.Address(), root.MemorySize())
	}
	if m.paused {
		info += " │ paused"
	}
	line := title + headerInfoStyle.Render(" "+info)
	return headerInfoStyle.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m Model) renderStatus() string {
	var left string
	switch {
	case m.statusMessage != "":
		left = statusWarnStyle.Render(m.statusMessage)
	case m.memErr != nil:
		left = statusErrorStyle.Render(m.memErr.Error())
	case m.selCount > 0:
		left = statusStyle.Render(fmt.Sprintf("%d selected, %d bytes", m.selCount, m.selSize))
	default:
		left = statusStyle.Render("nothing selected")
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	right := statusStyle.Render(strings.Join(hints, " · "))

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + statusStyle.Render(strings.Repeat(" ", gap)) + right
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// helpContent lists every binding for the help viewport.
func (m Model) helpContent() string {
	lines := []string{helpTitleStyle.Render("Keys"), ""}
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			lines = append(lines, fmt.Sprintf("%s  %s", helpKeyStyle.Render(fmt.Sprintf("%-12s", b.Help().Key)), b.Help().Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		helpTitleStyle.Render("Mouse"),
		"",
		"click          select (shift: range, ctrl: toggle)",
		"double click   edit value or expand",
		"right click    node menu",
		"wheel          scroll",
	)
	return strings.Join(lines, "\n")
}

// staticView adapts a rendered string to tea.Model for the overlay.
type staticView string

func (s staticView) Init() tea.Cmd                       { return nil }
func (s staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticView) View() string                        { return string(s) }
