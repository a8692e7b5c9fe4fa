package nodes

import (
	"fmt"
	"path"
	"strings"

	"github.com/joshuapare/memlens/memory"
)

func formatOffset(off int) string { return fmt.Sprintf("%04X", off) }

// formatFloat renders a float comment, collapsing values too large to be
// meaningful.
func formatFloat(f float64) string {
	if f > -999999 && f < 999999 {
		return fmt.Sprintf("%.3f", f)
	}
	return "#####"
}

// namedAddress describes addr by the section it falls into, for example
// "libc.so.6+0x1F0A0".
func namedAddress(mem *memory.Snapshot, addr memory.Address) (string, bool) {
	sec, ok := mem.SectionFor(addr)
	if !ok {
		return "", false
	}
	name := sec.Name
	if name == "" {
		name = "anon"
	} else if strings.HasPrefix(name, "/") {
		name = path.Base(name)
	}
	return fmt.Sprintf("%s+0x%X", name, uint64(addr.Sub(sec.Start))), true
}
