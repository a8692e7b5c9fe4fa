package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/nodes"
	"github.com/joshuapare/memlens/selection"
)

// writeClipboard is swapped out by tests.
var writeClipboard = clipboard.WriteAll

// copySelection puts the selected nodes on the clipboard, one per line.
func (m *Model) copySelection() tea.Cmd {
	infos := m.control.Selection().SelectedNodes()
	if len(infos) == 0 {
		return m.setStatus("Nothing selected")
	}
	if err := writeClipboard(selectionText(m.control.Root(), infos)); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.setStatus(fmt.Sprintf("Copied %d node(s)", len(infos)))
}

// selectionText formats nodes as "offset address type name bytes" lines
// under a "# class <name> <id>" header naming the class they came from.
// Unreadable bytes are left out.
func selectionText(root *nodes.ClassNode, infos []selection.NodeInfo) string {
	var sb strings.Builder
	if root != nil {
		fmt.Fprintf(&sb, "# class %s %s\n", root.Name(), root.ID())
	}
	for _, info := range infos {
		n := info.Node
		fmt.Fprintf(&sb, "%04X %s %s %s", n.Offset(), info.Address, n.TypeName(), n.Name())
		if mem := info.Memory; mem != nil && mem.IsValidOffset(n.Offset(), n.MemorySize()) {
			b, _ := mem.Bytes(n.Offset(), n.MemorySize())
			fmt.Fprintf(&sb, " % X", b)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
