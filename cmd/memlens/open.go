package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/memory/dumpfile"
	"github.com/joshuapare/memlens/nodes"
)

func init() {
	rootCmd.AddCommand(newOpenCmd())
}

func newOpenCmd() *cobra.Command {
	var (
		base   string
		offset string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "open <dump>",
		Short: "Browse a raw memory dump file",
		Long: `The open command maps a raw memory dump so that its first byte sits at
--base, and shows the class at --base plus --offset. Edits change the view
of the dump only; the file on disk is never written.

Example:
  memlens open heap.bin --base 0x55d0c0de0000
  memlens open heap.bin --base 0x55d0c0de0000 --offset 0x240 --nodes 32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(args[0], base, offset, count)
		},
	}
	cmd.Flags().StringVarP(&base, "base", "b", "0", "Address of the first byte of the dump (hex)")
	cmd.Flags().StringVarP(&offset, "offset", "o", "0", "Class offset into the dump (hex)")
	cmd.Flags().IntVarP(&count, "nodes", "n", 16, "Number of 8-byte fields in the class")
	return cmd
}

func runOpen(path, base, offset string, count int) error {
	baseAddr, err := memory.ParseAddress(base)
	if err != nil {
		return err
	}
	off, err := memory.ParseAddress(offset)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("--nodes must be positive, got %d", count)
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	proc, err := dumpfile.Open(path, baseAddr)
	if err != nil {
		return err
	}
	addr := baseAddr + off
	if _, ok := proc.SectionFor(addr); !ok {
		_ = proc.Close()
		return fmt.Errorf("%w: offset %s is outside the dump", memory.ErrUnmapped, off)
	}

	class := nodes.NewClassNode(fmt.Sprintf("Class_%X", uint64(addr)), addr)
	if err := class.AddNodes(nodes.PaddingNodes(count * 8)...); err != nil {
		_ = proc.Close()
		return err
	}
	logger.Info("opened dump", "path", path, "base", baseAddr.String(), "address", addr.String())

	return runTUI(ModelOptions{
		Title:    filepath.Base(path),
		Process:  proc,
		Root:     class,
		Settings: settings,
	})
}
