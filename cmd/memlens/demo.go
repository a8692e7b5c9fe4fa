package main

import (
	"encoding/binary"
	"math"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memlens/memory"
	"github.com/joshuapare/memlens/nodes"
)

const (
	demoBase    = memory.Address(0x00400000)
	demoLibBase = memory.Address(0x7F3A00001000)
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Browse a built-in sample process",
		Long: `The demo command shows a player record held by an in-memory sample
process. Everything can be edited; nothing outside memlens is touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			proc, class := demoTarget()
			return runTUI(ModelOptions{
				Title:    "demo",
				Process:  proc,
				Root:     class,
				Settings: settings,
			})
		},
	}
}

// demoTarget returns a static process holding a player record and a shared
// library mapping its first field points into, plus the class describing
// the record.
func demoTarget() (*memory.StaticProcess, *nodes.ClassNode) {
	le := binary.LittleEndian
	p := memory.NewStaticProcess()

	lib := make([]byte, 0x100)
	copy(lib, "Player::vftable")
	p.Map("/usr/lib/libdemo.so", demoLibBase, lib)

	rec := make([]byte, 0x100)
	le.PutUint64(rec[0:], uint64(demoLibBase))
	le.PutUint32(rec[8:], 100)
	le.PutUint32(rec[12:], 35)
	le.PutUint32(rec[16:], math.Float32bits(12.5))
	le.PutUint32(rec[20:], math.Float32bits(-3.25))
	le.PutUint32(rec[24:], math.Float32bits(64))
	copy(rec[32:48], "Player One")
	for i, r := range "Night Watch" {
		rec[48+2*i] = byte(r)
	}
	for i := range 4 {
		le.PutUint32(rec[80+4*i:], uint32(i+1)*10)
	}
	le.PutUint64(rec[96:], math.Float64bits(1.5))
	le.PutUint64(rec[104:], 123456)
	le.PutUint64(rec[112:], 0xDEADBEEFCAFEBABE)
	p.Map("demo", demoBase, rec)

	named := func(n nodes.Node, name string) nodes.Node {
		n.SetName(name)
		return n
	}

	stats := nodes.NewStructNode("stats")
	_ = stats.AddNodes(
		named(nodes.NewDoubleNode(), "speed"),
		named(nodes.NewInt64Node(), "score"),
	)

	vtable := nodes.NewHex64Node()
	vtable.SetName("vtable")
	vtable.SetComment("vtable")

	class := nodes.NewClassNode("Player", demoBase)
	_ = class.AddNodes(
		vtable,
		named(nodes.NewInt32Node(), "health"),
		named(nodes.NewInt32Node(), "armor"),
		named(nodes.NewFloatNode(), "x"),
		named(nodes.NewFloatNode(), "y"),
		named(nodes.NewFloatNode(), "z"),
		nodes.NewHex32Node(),
		named(nodes.NewTextNode(nodes.EncodingUTF8, 16), "name"),
		named(nodes.NewTextNode(nodes.EncodingUTF16, 16), "guild"),
		named(nodes.NewArrayNode(nodes.NewInt32Node(), 4), "inventory"),
		stats,
		nodes.NewHex64Node(),
		nodes.NewHex64Node(),
	)
	return p, class
}
