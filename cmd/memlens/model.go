package main

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
	"github.com/joshuapare/memlens/selection"
	"github.com/joshuapare/memlens/termcanvas"
	"github.com/joshuapare/memlens/view"
)

// Layout constants
const (
	headerHeight = 1
	statusHeight = 1
	wheelRows    = 3
	previewSize  = 64 // bytes shown by a pointer preview
	previewRow   = 8
)

// ModelOptions configures a Model.
type ModelOptions struct {
	Title    string
	Process  memory.Process
	Root     *nodes.ClassNode
	Settings *config.Settings
	Refresh  time.Duration // zero means defaultRefresh
}

// Model is the main application model
type Model struct {
	title   string
	process memory.Process
	control *view.Control
	canvas  *termcanvas.Canvas
	keys    KeyMap

	bus     *selection.Bus
	events  <-chan selection.Event
	actions *actions

	width  int
	height int
	frame  string // last rendered canvas

	refresh time.Duration
	paused  bool
	memErr  error

	clicks clickTracker
	now    func() time.Time

	// Popups
	tooltip  string
	tipPos   draw.Point
	menu     *contextMenu
	editing  bool
	editor   textinput.Model
	showHelp bool
	help     viewport.Model

	// Selection summary from the bus
	selCount int
	selSize  int

	// Status message for temporary feedback
	statusMessage string
}

// NewModel creates a new TUI model
func NewModel(opts ModelOptions) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = defaultRefresh
	}

	bus := selection.NewBus()
	acts := &actions{}
	control := view.NewControl(view.Options{
		Process:      opts.Process,
		Settings:     opts.Settings,
		Font:         draw.Font{Width: 1, Height: 1},
		Bus:          bus,
		Collaborator: acts,
	})
	control.SetRoot(opts.Root)

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 128

	keys := DefaultKeyMap()
	return Model{
		title:   opts.Title,
		process: opts.Process,
		control: control,
		canvas:  termcanvas.New(0, 0),
		keys:    keys,
		bus:     bus,
		events:  bus.Subscribe(),
		actions: acts,
		refresh: opts.Refresh,
		now:     time.Now,
		editor:  editor,
		help:    viewport.New(0, 0),
	}
}

// Init starts the refresh tick and the selection listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.listen())
}

// Close releases the bus and the process handle.
func (m *Model) Close() error {
	m.bus.Close()
	if c, ok := m.process.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Control returns the view control driving the memory view.
func (m Model) Control() *view.Control { return m.control }

// Messages

type tickMsg time.Time

// selectionChangedMsg carries a bus event. Stale events are delivered too
// so the listener keeps running.
type selectionChangedMsg struct {
	count, size int
	stale       bool
}

type clearStatusMsg struct{}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// listen waits for the next selection event.
func (m Model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		select {
		case <-ev.Ctx.Done():
			return selectionChangedMsg{stale: true}
		default:
			return selectionChangedMsg{count: ev.Count, size: ev.Size}
		}
	}
}

// actions records what the dispatcher forwards so Update can open the
// matching menu after the event.
type actions struct {
	pending *menuRequest
}

type menuRequest struct {
	kind menuKind
	node nodes.Node
	pos  draw.Point
}

func (a *actions) ShowContextMenu(p draw.Point) {
	a.pending = &menuRequest{kind: menuNodes, pos: p}
}

func (a *actions) ChangeClassType(n nodes.Node, p draw.Point) {
	a.pending = &menuRequest{kind: menuClassType, node: n, pos: p}
}

func (a *actions) ChangeWrappedType(n nodes.Node, p draw.Point) {
	a.pending = &menuRequest{kind: menuWrappedType, node: n, pos: p}
}

func (a *actions) take() *menuRequest {
	r := a.pending
	a.pending = nil
	return r
}
