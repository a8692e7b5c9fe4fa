package view

import (
	"time"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/input"
	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
	"github.com/joshuapare/memlens/selection"
)

// widthSlack is added to the drawn width so the last column is never flush
// with the right edge when scrolled fully.
const widthSlack = 6

// Options configures a Control.
type Options struct {
	Process      memory.Process
	Settings     *config.Settings // nil means config.Default()
	Font         draw.Font        // zero means a 1x1 cell font
	Bus          *selection.Bus
	Collaborator input.Collaborator

	// OnFault is called for every node whose draw failed.
	OnFault func(nodes.DrawFault)
}

// Control ties the render pass, selection and input dispatch to one root
// class and its memory snapshot.
type Control struct {
	root     *nodes.ClassNode
	snap     *memory.Snapshot
	settings *config.Settings
	font     draw.Font

	sel        *selection.Controller
	dispatcher *input.Dispatcher

	vscroll ScrollBar
	hscroll ScrollBar
	client  draw.Rect
	last    Result

	onFault func(nodes.DrawFault)
	now     func() time.Time
}

// NewControl creates a control with no root.
func NewControl(opts Options) *Control {
	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if opts.Font == (draw.Font{}) {
		opts.Font = draw.Font{Width: 1, Height: 1}
	}
	sel := selection.New(opts.Bus)
	return &Control{
		snap:       memory.NewSnapshot(opts.Process),
		settings:   opts.Settings,
		font:       opts.Font,
		sel:        sel,
		dispatcher: input.NewDispatcher(sel, opts.Collaborator),
		onFault:    opts.OnFault,
		now:        time.Now,
	}
}

// Root returns the class being shown.
func (c *Control) Root() *nodes.ClassNode { return c.root }

// SetRoot shows class. The editor is closed, the selection cleared and the
// view scrolled back to the top.
func (c *Control) SetRoot(class *nodes.ClassNode) {
	c.dispatcher.CancelEdit()
	c.sel.Clear()
	if c.root != nil {
		c.root.ClearSelection()
	}
	c.vscroll.Reset()
	c.hscroll.Reset()
	c.dispatcher.SetHotSpots(nil)
	c.root = class
}

// SetProcess rebinds the snapshot to p.
func (c *Control) SetProcess(p memory.Process) { c.snap.SetProcess(p) }

// Snapshot returns the memory snapshot of the last paint.
func (c *Control) Snapshot() *memory.Snapshot { return c.snap }

// Settings returns the display settings.
func (c *Control) Settings() *config.Settings { return c.settings }

// Selection returns the selection controller.
func (c *Control) Selection() *selection.Controller { return c.sel }

// Dispatcher returns the input dispatcher.
func (c *Control) Dispatcher() *input.Dispatcher { return c.dispatcher }

// Editor returns the inline editor state.
func (c *Control) Editor() input.Editor { return c.dispatcher.Editor() }

// VerticalScroll returns the row scroll bar.
func (c *Control) VerticalScroll() *ScrollBar { return &c.vscroll }

// HorizontalScroll returns the cell scroll bar.
func (c *Control) HorizontalScroll() *ScrollBar { return &c.hscroll }

// LastFrame returns the result of the last paint.
func (c *Control) LastFrame() Result { return c.last }

// Paint refreshes memory, renders the root into client on surface, sizes
// the scroll bars and installs the new hot spots. A refresh error is
// returned for display; the frame is drawn regardless, with unreadable
// bytes marked invalid.
func (c *Control) Paint(surface draw.Surface, client draw.Rect) (Result, error) {
	c.client = client

	var refreshErr error
	if c.root != nil {
		c.snap.SetSize(c.root.MemorySize())
		if err := c.snap.Update(c.root.Address()); err != nil {
			logger.Debug("memory refresh incomplete", "address", c.root.Address().String(), "error", err)
			refreshErr = err
		}
	}

	res := Render(Frame{
		Root:                  c.root,
		Memory:                c.snap,
		Surface:               surface,
		Font:                  c.font,
		Settings:              c.settings,
		ClientArea:            client,
		ScrollX:               c.hscroll.Value(),
		ScrollY:               c.vscroll.Value(),
		MultipleNodesSelected: c.sel.Count() > 1,
		Now:                   c.now(),
	})

	c.configureScroll(res.Size)
	c.dispatcher.SetHotSpots(res.HotSpots)
	for _, f := range res.Faults {
		logger.Error("node draw failed", "node", f.Node.Name(), "type", f.Node.TypeName(), "error", f.Err)
		if c.onFault != nil {
			c.onFault(f)
		}
	}
	c.last = res
	return res, refreshErr
}

func (c *Control) configureScroll(size draw.Size) {
	if c.font.Height > 0 {
		rows := (size.Height + c.font.Height - 1) / c.font.Height
		c.vscroll.Configure(rows, c.client.Height/c.font.Height)
	}
	if c.font.Width > 0 {
		cells := size.Width/c.font.Width + widthSlack
		c.hscroll.Configure(cells, c.client.Width/c.font.Width)
	}
}

func (c *Control) apply(out input.Outcome) input.Outcome {
	if out.Scroll != 0 {
		c.vscroll.DoScroll(out.Scroll)
	}
	return out
}

// Click forwards a single press.
func (c *Control) Click(ev input.MouseEvent) input.Outcome { return c.apply(c.dispatcher.Click(ev)) }

// DoubleClick forwards a double press.
func (c *Control) DoubleClick(ev input.MouseEvent) input.Outcome {
	return c.apply(c.dispatcher.DoubleClick(ev))
}

// Key forwards a navigation key and applies any auto scroll.
func (c *Control) Key(ev input.KeyEvent) input.Outcome { return c.apply(c.dispatcher.Key(ev)) }

// Hover returns the tooltip for p.
func (c *Control) Hover(p draw.Point) (input.Tooltip, bool) { return c.dispatcher.Hover(p) }

// Scroll moves the view by rows and closes the editor.
func (c *Control) Scroll(rows int) input.Outcome {
	out := c.dispatcher.Scroll()
	c.vscroll.DoScroll(rows)
	return out
}

// ScrollHorizontal moves the view by cells and closes the editor.
func (c *Control) ScrollHorizontal(cells int) input.Outcome {
	out := c.dispatcher.Scroll()
	c.hscroll.DoScroll(cells)
	return out
}

// CommitEdit applies the editor text.
func (c *Control) CommitEdit(text string) (input.Outcome, error) {
	return c.dispatcher.CommitEdit(text)
}

// CancelEdit closes the editor.
func (c *Control) CancelEdit() { c.dispatcher.CancelEdit() }

// Remove deletes n from the tree.
func (c *Control) Remove(n nodes.Node) error { return c.dispatcher.Remove(n) }

// Preview reads size bytes at addr from the attached process for a memory
// preview tooltip.
func (c *Control) Preview(addr memory.Address, size int) (*memory.Snapshot, error) {
	snap := memory.NewSnapshot(c.snap.Process())
	snap.SetSize(size)
	return snap, snap.Update(addr)
}
