package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/input"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

const base = memory.Address(0x10000)

func newProcess(t *testing.T, size int) *memory.StaticProcess {
	t.Helper()
	p := memory.NewStaticProcess()
	_, ok := p.Map("heap", base, make([]byte, size))
	require.True(t, ok)
	return p
}

func newClass(t *testing.T, n int) (*nodes.ClassNode, []nodes.Node) {
	t.Helper()
	class := nodes.NewClassNode("Root", base)
	var children []nodes.Node
	for range n {
		c := nodes.NewHex32Node()
		children = append(children, c)
		require.NoError(t, class.AddNode(c))
	}
	return class, children
}

func selectRects(spots []nodes.HotSpot) []draw.Rect {
	var out []draw.Rect
	for _, h := range spots {
		if h.Type == nodes.HotSpotSelect {
			out = append(out, h.Rect)
		}
	}
	return out
}

func frameFor(t *testing.T, class *nodes.ClassNode, scrollY int) Frame {
	t.Helper()
	snap := memory.NewSnapshot(newProcess(t, class.MemorySize()))
	snap.SetSize(class.MemorySize())
	require.NoError(t, snap.Update(class.Address()))
	return Frame{
		Root:       class,
		Memory:     snap,
		Surface:    draw.Discard,
		Font:       draw.Font{Width: 1, Height: 1},
		Settings:   config.Default(),
		ClientArea: draw.R(0, 0, 80, 4),
		ScrollY:    scrollY,
	}
}

func TestRenderScrollShiftsHotSpots(t *testing.T) {
	class, _ := newClass(t, 8)

	top := Render(frameFor(t, class, 0))
	scrolled := Render(frameFor(t, class, 2))

	assert.Equal(t, 9, top.Size.Height)
	assert.Equal(t, top.Size, scrolled.Size, "extent is independent of scrolling")

	want := []draw.Rect{
		draw.R(0, 0, 80, 1),
		draw.R(0, 1, 80, 1),
		draw.R(0, 2, 80, 1),
		draw.R(0, 3, 80, 1),
	}
	if diff := cmp.Diff(want, selectRects(top.HotSpots)); diff != "" {
		t.Errorf("top frame select spots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, selectRects(scrolled.HotSpots)); diff != "" {
		t.Errorf("scrolled frame select spots (-want +got):\n%s", diff)
	}
	assert.Same(t, class.Nodes()[1], scrolled.HotSpots[0].Node, "row 2 is now on top")
}

func TestRenderNewHotSpotSliceEachPass(t *testing.T) {
	class, _ := newClass(t, 2)
	f := frameFor(t, class, 0)

	a := Render(f)
	b := Render(f)
	require.NotEmpty(t, a.HotSpots)
	assert.NotSame(t, &a.HotSpots[0], &b.HotSpots[0])
}

func TestRenderWithoutRoot(t *testing.T) {
	res := Render(Frame{Surface: draw.Discard, Settings: config.Default(), ClientArea: draw.R(0, 0, 10, 10)})
	assert.Empty(t, res.HotSpots)
	assert.Zero(t, res.Size)
}

// explodingNode panics on draw.
type explodingNode struct{ nodes.Hex32Node }

func (e *explodingNode) Draw(nodes.ViewInfo, int, int) nodes.DrawResult { panic("bad node") }

func TestControlPaintReportsFaults(t *testing.T) {
	class, _ := newClass(t, 1)
	bad := &explodingNode{Hex32Node: *nodes.NewHex32Node()}
	require.NoError(t, class.AddNode(bad))

	var faults []nodes.DrawFault
	c := NewControl(Options{
		Process: newProcess(t, 8),
		OnFault: func(f nodes.DrawFault) { faults = append(faults, f) },
	})
	c.SetRoot(class)

	res, err := c.Paint(draw.Discard, draw.R(0, 0, 80, 10))
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Same(t, bad, faults[0].Node)
	assert.Len(t, res.Faults, 1)
	assert.Len(t, selectRects(c.Dispatcher().HotSpots()), 2, "root and the healthy child")
}

func TestControlPaintUnmappedMemory(t *testing.T) {
	class, _ := newClass(t, 4)
	c := NewControl(Options{Process: newProcess(t, 8)})
	c.SetRoot(class)

	_, err := c.Paint(draw.Discard, draw.R(0, 0, 80, 10))
	assert.True(t, errors.Is(err, memory.ErrUnmapped))
	assert.Len(t, selectRects(c.Dispatcher().HotSpots()), 5, "frame is drawn anyway")
}

func TestControlPaintOversizedTree(t *testing.T) {
	class := nodes.NewClassNode("Root", base)
	require.NoError(t, class.AddNode(nodes.NewArrayNode(nodes.NewHex64Node(), 1<<40)))
	c := NewControl(Options{Process: newProcess(t, 8)})
	c.SetRoot(class)

	var err error
	require.NotPanics(t, func() { _, err = c.Paint(draw.Discard, draw.R(0, 0, 80, 10)) })
	assert.Error(t, err)
	assert.Equal(t, memory.MaxWindow, c.Snapshot().Len())
}

func TestControlScrollRange(t *testing.T) {
	class, _ := newClass(t, 20)
	c := NewControl(Options{Process: newProcess(t, 80)})
	c.SetRoot(class)

	_, err := c.Paint(draw.Discard, draw.R(0, 0, 200, 5))
	require.NoError(t, err)

	vs := c.VerticalScroll()
	assert.True(t, vs.Enabled())
	assert.Equal(t, 5, vs.LargeChange())
	assert.Equal(t, 16, vs.Maximum())

	c.Scroll(100)
	assert.Equal(t, 16, vs.Value())
	c.Scroll(-3)
	assert.Equal(t, 13, vs.Value())

	_, err = c.Paint(draw.Discard, draw.R(0, 0, 200, 50))
	require.NoError(t, err)
	assert.False(t, vs.Enabled())
	assert.Zero(t, vs.Value())
	assert.False(t, c.HorizontalScroll().Enabled())
}

func TestControlKeyAutoScroll(t *testing.T) {
	class, children := newClass(t, 4)
	c := NewControl(Options{Process: newProcess(t, 16)})
	c.SetRoot(class)
	client := draw.R(0, 0, 80, 3)
	vs := c.VerticalScroll()

	down := func() input.Outcome {
		t.Helper()
		_, err := c.Paint(draw.Discard, client)
		require.NoError(t, err)
		return c.Key(input.KeyEvent{Key: input.KeyDown})
	}

	down()
	assert.True(t, children[0].IsSelected())
	assert.Zero(t, vs.Value())

	// The last sibling on screen scrolls the view by one row.
	out := down()
	assert.Equal(t, 1, out.Scroll)
	assert.True(t, children[1].IsSelected())
	assert.Equal(t, 1, vs.Value())

	down()
	assert.True(t, children[2].IsSelected())
	assert.Equal(t, 2, vs.Value())

	down()
	assert.True(t, children[3].IsSelected())
	assert.Equal(t, 2, vs.Value(), "clamped at the bottom")

	out = down()
	assert.Equal(t, 1, out.Scroll)
	assert.True(t, children[3].IsSelected())
	assert.Equal(t, 1, c.Selection().Count())
}

func TestControlKeyIgnoredWhenCaretScrolledAway(t *testing.T) {
	class, children := newClass(t, 30)
	c := NewControl(Options{Process: newProcess(t, 120)})
	c.SetRoot(class)
	client := draw.R(0, 0, 80, 5)

	_, err := c.Paint(draw.Discard, client)
	require.NoError(t, err)
	c.Key(input.KeyEvent{Key: input.KeyDown})
	c.Key(input.KeyEvent{Key: input.KeyDown})
	require.True(t, children[1].IsSelected())

	c.Scroll(10)
	_, err = c.Paint(draw.Discard, client)
	require.NoError(t, err)
	c.Key(input.KeyEvent{Key: input.KeyDown})

	assert.Equal(t, 1, c.Selection().Count())
	assert.True(t, children[1].IsSelected())
	assert.False(t, children[12].IsSelected())
}

func TestControlSetRootResets(t *testing.T) {
	class, children := newClass(t, 30)
	c := NewControl(Options{Process: newProcess(t, 120)})
	c.SetRoot(class)
	_, _ = c.Paint(draw.Discard, draw.R(0, 0, 80, 5))

	c.Scroll(4)
	_, _ = c.Paint(draw.Discard, draw.R(0, 0, 80, 5))
	c.Key(input.KeyEvent{Key: input.KeyDown})
	require.Equal(t, 1, c.Selection().Count())

	other, _ := newClass(t, 1)
	c.SetRoot(other)

	assert.Zero(t, c.Selection().Count())
	assert.Zero(t, c.VerticalScroll().Value())
	assert.Empty(t, c.Dispatcher().HotSpots())
	for _, n := range children {
		assert.False(t, n.IsSelected())
	}
}

func TestControlPreview(t *testing.T) {
	p := newProcess(t, 16)
	c := NewControl(Options{Process: p})

	snap, err := c.Preview(base, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, snap.Len())
}

func TestScrollBar(t *testing.T) {
	var s ScrollBar
	s.Configure(10, 4)
	assert.True(t, s.Enabled())
	assert.Equal(t, 6, s.Maximum())

	assert.True(t, s.DoScroll(3))
	assert.False(t, s.DoScroll(0))
	s.SetValue(99)
	assert.Equal(t, 6, s.Value())
	assert.False(t, s.DoScroll(1), "already at the end")

	s.Configure(8, 4)
	assert.Equal(t, 4, s.Value(), "value clamps when the content shrinks")

	s.Configure(3, 4)
	assert.False(t, s.Enabled())
	assert.Zero(t, s.Value())
	assert.False(t, s.DoScroll(1))
}
