package main

import (
	"encoding/binary"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

type demoEnv struct {
	*TestHelper
	proc  *memory.StaticProcess
	class *nodes.ClassNode
}

func newDemoEnv(t *testing.T, width, height int) *demoEnv {
	t.Helper()
	proc, class := demoTarget()
	h := NewTestHelper(ModelOptions{Title: "demo", Process: proc, Root: class})
	h.SendWindowSize(width, height)
	return &demoEnv{TestHelper: h, proc: proc, class: class}
}

func (e *demoEnv) child(t *testing.T, name string) nodes.Node {
	t.Helper()
	for _, n := range e.class.Nodes() {
		if n.Name() == name {
			return n
		}
	}
	t.Fatalf("no child named %q", name)
	return nil
}

func (e *demoEnv) row(t *testing.T, n nodes.Node) draw.Point {
	t.Helper()
	p, ok := e.RowPoint(n)
	if !ok {
		t.Fatalf("%s %q is not on screen", n.TypeName(), n.Name())
	}
	return p
}

func (e *demoEnv) readUint32(t *testing.T, off int) uint32 {
	t.Helper()
	buf := make([]byte, 4)
	if err := e.proc.ReadRemoteMemory(demoBase.Add(off), buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	return binary.LittleEndian.Uint32(buf)
}

func TestDemoTargetLayout(t *testing.T) {
	_, class := demoTarget()

	if got := class.MemorySize(); got != 128 {
		t.Errorf("class size = %d, want 128", got)
	}
	want := map[string]int{"vtable": 0, "health": 8, "armor": 12, "name": 32, "guild": 48, "inventory": 80, "stats": 96}
	for _, n := range class.Nodes() {
		if off, ok := want[n.Name()]; ok && n.Offset() != off {
			t.Errorf("%s at offset %d, want %d", n.Name(), n.Offset(), off)
		}
	}
}

func TestViewShowsHeaderTreeAndStatus(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	v := e.GetView()

	for _, want := range []string{"memlens", "Player", "0000000000400000", "128 bytes", "health", "Player One", "nothing selected"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := strings.Count(v, "\n") + 1; lines != 30 {
		t.Errorf("view has %d lines, want 30", lines)
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	proc, class := demoTarget()
	h := NewTestHelper(ModelOptions{Process: proc, Root: class})
	if got := h.GetView(); got != "Loading..." {
		t.Errorf("view = %q", got)
	}
}

func TestKeyboardSelection(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	sel := e.GetModel().Control().Selection()

	e.SendKeyRune('j')
	if sel.Count() != 1 || !sel.Contains(e.child(t, "vtable")) {
		t.Fatalf("first down should select the first field, got %d selected", sel.Count())
	}

	e.SendKeyRune('j')
	if !sel.Contains(e.child(t, "health")) || sel.Count() != 1 {
		t.Errorf("second down should move to health")
	}

	e.SendKeyRune('J')
	if sel.Count() != 2 || !sel.Contains(e.child(t, "armor")) {
		t.Errorf("shift down should extend to armor, got %d selected", sel.Count())
	}

	e.SendKeyRune('k')
	if sel.Count() != 1 || !sel.Contains(e.child(t, "health")) {
		t.Errorf("up should collapse the range onto health")
	}
}

func TestMouseSelectionModes(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	sel := e.GetModel().Control().Selection()
	health, z := e.child(t, "health"), e.child(t, "z")

	e.Click(e.row(t, health))
	if sel.Count() != 1 || !health.IsSelected() {
		t.Fatal("click should select health")
	}

	e.ShiftClick(e.row(t, z))
	if sel.Count() != 5 {
		t.Errorf("shift click should select health..z, got %d", sel.Count())
	}

	e.CtrlClick(e.row(t, z))
	if sel.Count() != 4 || z.IsSelected() {
		t.Errorf("ctrl click should drop z, got %d", sel.Count())
	}
}

func TestDoubleClickEditsValue(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	health := e.child(t, "health")

	spot, ok := e.Spot(health, nodes.HotSpotEdit, nodes.ValueID)
	if !ok {
		t.Fatal("health value is not editable")
	}
	e.DoubleClick(draw.Point{X: spot.Rect.X, Y: spot.Rect.Y})

	m := e.GetModel()
	if !m.editing || m.editor.Value() != "100" {
		t.Fatalf("editor open=%v value=%q, want open with 100", m.editing, m.editor.Value())
	}

	e.model.editor.SetValue("250")
	e.SendKey(tea.KeyEnter)

	if e.GetModel().editing {
		t.Error("enter should close the editor")
	}
	if got := e.readUint32(t, 8); got != 250 {
		t.Errorf("health in memory = %d, want 250", got)
	}
}

func TestEditorRejectsBadInput(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	health := e.child(t, "health")
	spot, _ := e.Spot(health, nodes.HotSpotEdit, nodes.ValueID)

	e.DoubleClick(draw.Point{X: spot.Rect.X, Y: spot.Rect.Y})
	e.model.editor.SetValue("lots")
	e.SendKey(tea.KeyEnter)

	if got := e.readUint32(t, 8); got != 100 {
		t.Errorf("health changed to %d", got)
	}
	if !strings.Contains(e.GetModel().statusMessage, "Edit rejected") {
		t.Errorf("status = %q", e.GetModel().statusMessage)
	}
}

func TestEditorEscCancels(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	health := e.child(t, "health")
	spot, _ := e.Spot(health, nodes.HotSpotEdit, nodes.ValueID)

	e.DoubleClick(draw.Point{X: spot.Rect.X, Y: spot.Rect.Y})
	e.model.editor.SetValue("1")
	e.SendKey(tea.KeyEsc)

	if e.GetModel().editing || e.GetModel().Control().Editor().IsOpen() {
		t.Error("esc should close the editor")
	}
	if got := e.readUint32(t, 8); got != 100 {
		t.Errorf("cancelled edit was written: %d", got)
	}
}

func TestContextMenuChangesType(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	vtable := e.child(t, "vtable")

	e.SendKeyRune('j').SendKeyRune('m')
	menu := e.GetModel().menu
	if menu == nil {
		t.Fatal("menu key should open the node menu")
	}
	if !strings.Contains(e.GetView(), "Change to Int64") {
		t.Error("menu is not drawn")
	}

	// Hex64, Hex32, Hex16, Hex8, Int64
	for range 4 {
		e.SendKeyRune('j')
	}
	e.SendKey(tea.KeyEnter)

	first := e.class.Nodes()[0]
	if _, ok := first.(*nodes.Int64Node); !ok {
		t.Fatalf("first field is %s, want Int64", first.TypeName())
	}
	if first.Name() != "vtable" {
		t.Errorf("name not carried over: %q", first.Name())
	}
	sel := e.GetModel().Control().Selection()
	if !sel.Contains(first) || sel.Contains(vtable) || vtable.IsSelected() {
		t.Error("selection should move to the replacement")
	}
	if e.GetModel().menu != nil {
		t.Error("menu should close after an action")
	}
}

func TestElementTypeChangeDropsOldElement(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	inventory, ok := e.child(t, "inventory").(*nodes.ArrayNode)
	if !ok {
		t.Fatal("inventory is not an array")
	}
	inventory.SetLevelOpen(1, true)
	e.Tick()

	old := inventory.Element()
	e.Click(e.row(t, old))
	if !old.IsSelected() {
		t.Fatal("element row should be selectable")
	}

	spot, ok := e.Spot(inventory, nodes.HotSpotChangeWrappedType, 0)
	if !ok {
		t.Fatal("no element type spot")
	}
	e.Click(draw.Point{X: spot.Rect.X, Y: spot.Rect.Y})
	if e.GetModel().menu == nil {
		t.Fatal("element type menu should open")
	}
	e.SendKey(tea.KeyEnter)

	if _, ok := inventory.Element().(*nodes.Hex64Node); !ok {
		t.Fatalf("element is %s, want Hex64", inventory.Element().TypeName())
	}
	sel := e.GetModel().Control().Selection()
	if sel.Contains(old) || old.IsSelected() || sel.Count() != 0 {
		t.Errorf("old element still selected (count %d)", sel.Count())
	}
}

func TestRightClickMenuAndClickAwayCloses(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	armor := e.child(t, "armor")

	e.RightClick(e.row(t, armor))
	if e.GetModel().menu == nil {
		t.Fatal("right click should open the menu")
	}
	if !armor.IsSelected() {
		t.Error("right click should select the row")
	}

	e.Click(draw.Point{X: 0, Y: 25})
	if e.GetModel().menu != nil {
		t.Error("click should close the menu")
	}
	if !armor.IsSelected() {
		t.Error("closing click should not reach the view")
	}
}

func TestAddBytesAfterSelection(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	health := e.child(t, "health")

	e.Click(e.row(t, health)).SendKeyRune('a')

	if got := e.class.MemorySize(); got != 136 {
		t.Errorf("class size = %d, want 136", got)
	}
	if _, ok := e.class.Nodes()[2].(*nodes.Hex64Node); !ok {
		t.Errorf("new field should follow health, got %s", e.class.Nodes()[2].TypeName())
	}
	if got := e.child(t, "armor").Offset(); got != 20 {
		t.Errorf("armor moved to %d, want 20", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	vtable := e.child(t, "vtable")

	e.Click(e.row(t, vtable)).SendKeyRune('x')

	if len(e.class.Nodes()) != 12 {
		t.Fatalf("%d fields left, want 12", len(e.class.Nodes()))
	}
	if e.class.Nodes()[0].Name() != "health" || e.class.Nodes()[0].Offset() != 0 {
		t.Error("health should move to offset 0")
	}
	if e.GetModel().Control().Selection().Count() != 0 {
		t.Error("deleted node should leave the selection")
	}
}

func TestDeleteRootRejected(t *testing.T) {
	e := newDemoEnv(t, 140, 30)

	e.Click(e.row(t, e.class)).SendKeyRune('x')

	if len(e.class.Nodes()) != 13 {
		t.Error("root delete should not touch the tree")
	}
	if e.GetModel().statusMessage == "Deleted" {
		t.Error("status should report the failure")
	}
}

func TestCopySelection(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	e := newDemoEnv(t, 140, 30)
	e.Click(e.row(t, e.child(t, "vtable"))).SendKeyRune('y')

	root := e.GetModel().Control().Root()
	want := "# class Player " + root.ID().String() + "\n" +
		"0000 0000000000400000 Hex64 vtable 00 10 00 00 3A 7F 00 00\n"
	if copied != want {
		t.Errorf("clipboard = %q, want %q", copied, want)
	}
	if !strings.Contains(e.GetModel().statusMessage, "Copied 1") {
		t.Errorf("status = %q", e.GetModel().statusMessage)
	}
}

func TestCopyNothingSelected(t *testing.T) {
	called := false
	orig := writeClipboard
	writeClipboard = func(string) error { called = true; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	e := newDemoEnv(t, 140, 30)
	e.SendKeyRune('y')

	if called {
		t.Error("empty selection should not touch the clipboard")
	}
}

func TestHoverShowsPointerPreview(t *testing.T) {
	e := newDemoEnv(t, 140, 30)

	e.Move(e.row(t, e.child(t, "vtable")))
	tip := e.GetModel().tooltip
	if !strings.Contains(tip, "00007F3A00001000") || !strings.Contains(tip, "50 6C 61 79") {
		t.Errorf("tooltip = %q, want a preview of the vtable target", tip)
	}
	if !strings.Contains(e.GetView(), "50 6C 61 79") {
		t.Error("preview overlay not drawn")
	}

	e.Move(draw.Point{X: 0, Y: 27})
	if e.GetModel().tooltip != "" {
		t.Error("tooltip should clear off the tree")
	}
}

func TestHoverShowsToolTipText(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	hex := e.class.Nodes()[len(e.class.Nodes())-2]

	e.Move(e.row(t, hex))
	if !strings.Contains(e.GetModel().tooltip, "UInt64: 0xDEADBEEFCAFEBABE") {
		t.Errorf("tooltip = %q", e.GetModel().tooltip)
	}
}

func TestWheelScrolls(t *testing.T) {
	e := newDemoEnv(t, 140, 8)
	vs := e.GetModel().Control().VerticalScroll()

	e.Wheel(true)
	if vs.Value() != 3 {
		t.Errorf("scroll = %d, want 3", vs.Value())
	}
	e.Wheel(false).Wheel(false)
	if vs.Value() != 0 {
		t.Errorf("scroll = %d, want 0", vs.Value())
	}
}

func TestPauseStopsRefresh(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	e.SendKeyRune('p')
	if !e.GetModel().paused {
		t.Fatal("p should pause")
	}

	before := e.GetModel().frame
	if err := e.proc.WriteRemoteMemory(demoBase.Add(8), []byte{1, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	e.Tick()
	if e.GetModel().frame != before {
		t.Error("paused view should not repaint on tick")
	}

	e.SendKeyRune('p').Tick()
	if e.GetModel().frame == before {
		t.Error("resumed view should show the new value")
	}
}

func TestSelectionBusUpdatesStatus(t *testing.T) {
	e := newDemoEnv(t, 140, 30)
	e.SendKeyRune('j')

	msg := e.GetModel().listen()()
	changed, ok := msg.(selectionChangedMsg)
	if !ok || changed.stale {
		t.Fatalf("listener returned %#v", msg)
	}
	e.SendMsg(changed)

	if !strings.Contains(e.GetView(), "1 selected, 8 bytes") {
		t.Error("status line should show the selection summary")
	}
}

func TestHelpToggle(t *testing.T) {
	e := newDemoEnv(t, 140, 40)

	e.SendKeyRune('?')
	if !e.GetModel().showHelp || !strings.Contains(e.GetView(), "extend selection down") {
		t.Fatal("help should open and list bindings")
	}
	e.SendKey(tea.KeyEsc)
	if e.GetModel().showHelp {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	e := newDemoEnv(t, 80, 20)
	_, cmd := e.GetModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
