package nodes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memlens/config"
	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

const testBase = memory.Address(0x1000)

type fill struct {
	rect  draw.Rect
	color draw.Color
}

type text struct {
	s    string
	x, y int
}

// recorder is a Surface that remembers what was painted.
type recorder struct {
	fills []fill
	texts []text
	icons int
}

func (r *recorder) FillRect(rect draw.Rect, c draw.Color) { r.fills = append(r.fills, fill{rect, c}) }
func (r *recorder) DrawText(s string, x, y int, _ draw.Color) {
	r.texts = append(r.texts, text{s, x, y})
}
func (r *recorder) DrawIcon(draw.Icon, int, int) { r.icons++ }

func (r *recorder) hasText(s string) bool {
	for _, t := range r.texts {
		if t.s == s {
			return true
		}
	}
	return false
}

type fixture struct {
	proc  *memory.StaticProcess
	snap  *memory.Snapshot
	class *ClassNode
	rec   *recorder
}

// newFixture maps data at testBase and builds a class over it from children.
func newFixture(t *testing.T, data []byte, children ...Node) *fixture {
	t.Helper()
	proc := memory.NewStaticProcess()
	_, ok := proc.Map("heap", testBase, data)
	require.True(t, ok)

	class := NewClassNode("Root", testBase)
	require.NoError(t, class.AddNodes(children...))

	f := &fixture{proc: proc, snap: memory.NewSnapshot(proc), class: class, rec: &recorder{}}
	f.refresh(t)
	return f
}

func (f *fixture) refresh(t *testing.T) {
	t.Helper()
	f.snap.SetSize(f.class.MemorySize())
	require.NoError(t, f.snap.Update(f.class.Address()))
}

func (f *fixture) view() ViewInfo {
	return ViewInfo{
		Surface:    f.rec,
		Font:       draw.Font{Width: 1, Height: 1},
		Settings:   config.Default(),
		Memory:     f.snap,
		ClientArea: draw.R(0, 0, 200, 60),
		Address:    f.class.Address(),
	}
}

func (f *fixture) draw() DrawResult {
	return DrawSafe(f.class, f.view(), 0, 0)
}

// spotsFor filters hot spots by node and type.
func spotsFor(res DrawResult, n Node, typ HotSpotType) []HotSpot {
	var out []HotSpot
	for _, h := range res.HotSpots {
		if h.Node == n && h.Type == typ {
			out = append(out, h)
		}
	}
	return out
}

func editSpot(t *testing.T, res DrawResult, n Node, id int) HotSpot {
	t.Helper()
	for _, h := range spotsFor(res, n, HotSpotEdit) {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("no edit spot %d for %s", id, n.TypeName())
	return HotSpot{}
}

func (f *fixture) read(t *testing.T, addr memory.Address, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	require.NoError(t, f.proc.ReadRemoteMemory(addr, buf))
	return buf
}
