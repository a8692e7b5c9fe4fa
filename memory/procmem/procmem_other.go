//go:build !linux

package procmem

import "github.com/joshuapare/memlens/memory"

// Process is unavailable on this platform.
type Process struct{}

// Open always fails with ErrUnsupported.
func Open(pid int) (*Process, error) {
	return nil, ErrUnsupported
}

func (p *Process) PID() int                   { return 0 }
func (p *Process) Close() error               { return nil }
func (p *Process) IsValid() bool              { return false }
func (p *Process) Sections() []memory.Section { return nil }

func (p *Process) SectionFor(memory.Address) (memory.Section, bool) {
	return memory.Section{}, false
}

func (p *Process) ReadRemoteMemory(memory.Address, []byte) error {
	return ErrUnsupported
}

func (p *Process) WriteRemoteMemory(memory.Address, []byte) error {
	return ErrUnsupported
}
