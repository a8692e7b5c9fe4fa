package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memlens/internal/logger"
	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/memory/procmem"
	"github.com/joshuapare/memlens/nodes"
)

func init() {
	rootCmd.AddCommand(newAttachCmd())
}

func newAttachCmd() *cobra.Command {
	var (
		pid     int
		address string
		count   int
	)
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach to a running process and browse memory at an address",
		Long: `The attach command opens a live process (Linux only) and shows the
memory at --address as a class of 8-byte hex fields. Reading another process
needs ptrace permission over it.

Example:
  memlens attach --pid 4242 --address 0x7ffd3a2c1000
  memlens attach -p 4242 -a 55d0c0de0000 --nodes 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttach(pid, address, count)
		},
	}
	cmd.Flags().IntVarP(&pid, "pid", "p", 0, "Process ID")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Class address (hex)")
	cmd.Flags().IntVarP(&count, "nodes", "n", 16, "Number of 8-byte fields in the class")
	_ = cmd.MarkFlagRequired("pid")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func runAttach(pid int, address string, count int) error {
	class, err := newAttachClass(pid, address, count)
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	proc, err := procmem.Open(pid)
	if err != nil {
		return fmt.Errorf("failed to attach to pid %d: %w", pid, err)
	}
	logger.Info("attached", "pid", pid, "address", class.Address().String(), "nodes", count)

	return runTUI(ModelOptions{
		Title:    fmt.Sprintf("pid %d", pid),
		Process:  proc,
		Root:     class,
		Settings: settings,
	})
}

// newAttachClass builds the initial class: count hex fields at address.
func newAttachClass(pid int, address string, count int) (*nodes.ClassNode, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("--pid must be positive, got %d", pid)
	}
	if count <= 0 {
		return nil, fmt.Errorf("--nodes must be positive, got %d", count)
	}
	addr, err := memory.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	class := nodes.NewClassNode(fmt.Sprintf("Class_%X", uint64(addr)), addr)
	if err := class.AddNodes(nodes.PaddingNodes(count * 8)...); err != nil {
		return nil, err
	}
	return class, nil
}
