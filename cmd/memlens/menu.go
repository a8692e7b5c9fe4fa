package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/nodes"
	"github.com/joshuapare/memlens/selection"
)

type menuKind int

const (
	menuNodes menuKind = iota
	menuClassType
	menuWrappedType
)

// contextMenu is a popup list of actions.
type contextMenu struct {
	title  string
	items  []menuItem
	cursor int
	pos    draw.Point
}

type menuItem struct {
	label string
	run   func(m *Model) error
}

func (c *contextMenu) move(delta int) {
	c.cursor = (c.cursor + delta + len(c.items)) % len(c.items)
}

func (c *contextMenu) View() string {
	lines := []string{menuTitleStyle.Render(c.title)}
	for i, it := range c.items {
		if i == c.cursor {
			lines = append(lines, menuSelectedStyle.Render("> "+it.label))
			continue
		}
		lines = append(lines, "  "+it.label)
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// buildMenu returns the menu for a forwarded request.
func (m *Model) buildMenu(req *menuRequest) *contextMenu {
	menu := &contextMenu{pos: req.pos}
	kinds := nodes.Kinds()

	switch req.kind {
	case menuNodes:
		menu.title = fmt.Sprintf("%d selected", m.control.Selection().Count())
		for _, k := range kinds {
			menu.items = append(menu.items, menuItem{
				label: "Change to " + k.Name,
				run:   func(m *Model) error { return m.changeSelectedType(k) },
			})
		}
		menu.items = append(menu.items,
			menuItem{label: "Add 8 bytes", run: func(m *Model) error { return m.addBytes(8) }},
			menuItem{label: "Delete", run: func(m *Model) error { return m.deleteSelected() }},
		)

	case menuClassType:
		target := req.node
		menu.title = "Replace " + target.Name()
		for _, k := range kinds {
			menu.items = append(menu.items, menuItem{
				label: k.Name,
				run:   func(m *Model) error { return m.replaceNode(target, k) },
			})
		}

	case menuWrappedType:
		arr, ok := req.node.(*nodes.ArrayNode)
		if !ok {
			return nil
		}
		menu.title = "Element type"
		for _, k := range kinds {
			menu.items = append(menu.items, menuItem{
				label: k.Name,
				run: func(m *Model) error {
					m.control.Selection().Forget(arr.Element())
					arr.SetElement(k.New())
					return nil
				},
			})
		}
	}
	return menu
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc), key.Matches(msg, m.keys.Menu):
		m.menu = nil
	case key.Matches(msg, m.keys.Up):
		m.menu.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.menu.move(1)
	case key.Matches(msg, m.keys.Confirm):
		it := m.menu.items[m.menu.cursor]
		m.menu = nil
		err := it.run(&m)
		if err != nil {
			logger.Debug("menu action failed", "action", it.label, "error", err)
		}
		cmd := m.report(err, it.label)
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// changeSelectedType replaces every selected node with a new node of kind k
// and selects the replacements.
func (m *Model) changeSelectedType(k nodes.Kind) error {
	sel := m.control.Selection()
	infos := sel.SelectedNodes()
	if len(infos) == 0 {
		return errors.New("nothing selected")
	}

	var errs []error
	for i, info := range infos {
		repl := k.New()
		if err := replaceChild(info.Node, repl); err != nil {
			errs = append(errs, err)
			continue
		}
		infos[i].Node = repl
	}
	sel.SetSelectedNodes(attached(infos))
	return errors.Join(errs...)
}

// replaceNode swaps n for a new node of kind k.
func (m *Model) replaceNode(n nodes.Node, k nodes.Kind) error {
	sel := m.control.Selection()
	wasSelected := sel.Contains(n)
	infos := sel.SelectedNodes()

	repl := k.New()
	if err := replaceChild(n, repl); err != nil {
		return err
	}
	if wasSelected {
		for i := range infos {
			if infos[i].Node == n {
				infos[i].Node = repl
			}
		}
		sel.SetSelectedNodes(attached(infos))
	}
	return nil
}

func replaceChild(old, repl nodes.Node) error {
	parent, ok := old.ParentNode().(nodes.Container)
	if !ok {
		return fmt.Errorf("%w: %s cannot be replaced", nodes.ErrNodeNotFound, old.TypeName())
	}
	return parent.ReplaceChildNode(old, repl)
}

// attached drops entries whose node is no longer in a tree.
func attached(infos []selection.NodeInfo) []selection.NodeInfo {
	out := infos[:0]
	for _, info := range infos {
		if info.Node.ParentNode() != nil {
			out = append(out, info)
		}
	}
	return out
}

// addBytes inserts n bytes of hex nodes after the last selected node, or
// at the end of the root class when nothing is selected.
func (m *Model) addBytes(n int) error {
	root := m.control.Root()
	if root == nil {
		return errors.New("no class loaded")
	}

	var parent nodes.Container = root
	index := len(root.Nodes())
	if infos := m.control.Selection().SelectedNodes(); len(infos) > 0 {
		last := infos[len(infos)-1].Node
		if c, ok := last.ParentNode().(nodes.Container); ok {
			parent, index = c, c.FindNodeIndex(last)+1
		}
	}

	for _, pad := range nodes.PaddingNodes(n) {
		if err := parent.InsertNode(index, pad); err != nil {
			return err
		}
		index++
	}
	return nil
}

// deleteSelected removes every selected node from the tree.
func (m *Model) deleteSelected() error {
	var errs []error
	for _, info := range m.control.Selection().SelectedNodes() {
		if err := m.control.Remove(info.Node); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
