// Package dumpfile opens a raw memory dump as a memory.Process.
//
// The file is mapped privately: edits made through WriteRemoteMemory change
// the mapping and are lost on Close, the file itself is never written.
package dumpfile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/joshuapare/memlens/memory"
)

// ErrEmpty is returned for a zero-length dump.
var ErrEmpty = errors.New("dumpfile: file is empty")

// Process is a dump file mapped at a fixed base address.
type Process struct {
	section memory.Section
	data    []byte
	unmap   func() error
	closed  bool
}

// Open maps the file at path so its first byte appears at base.
func Open(path string, base memory.Address) (*Process, error) {
	data, unmap, err := mapFile(path)
	if err != nil {
		return nil, fmt.Errorf("dumpfile: %w", err)
	}
	if len(data) == 0 {
		_ = unmap()
		return nil, ErrEmpty
	}
	end := base.Add(len(data))
	if end < base {
		_ = unmap()
		return nil, fmt.Errorf("%w: %d bytes at %s wrap the address space", memory.ErrInvalidAddress, len(data), base)
	}
	return &Process{
		section: memory.Section{Start: base, End: end, Name: filepath.Base(path), Perms: "rw-p"},
		data:    data,
		unmap:   unmap,
	}, nil
}

// Section returns the single mapped section.
func (p *Process) Section() memory.Section { return p.section }

// Sections returns the dump's only section.
func (p *Process) Sections() []memory.Section { return []memory.Section{p.section} }

// Close releases the mapping. Further reads fail with memory.ErrProcessClosed.
func (p *Process) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.data = nil
	return p.unmap()
}

// IsValid implements memory.Process.
func (p *Process) IsValid() bool { return !p.closed }

// SectionFor implements memory.Process.
func (p *Process) SectionFor(addr memory.Address) (memory.Section, bool) {
	if p.closed || !p.section.Contains(addr) {
		return memory.Section{}, false
	}
	return p.section, true
}

// ReadRemoteMemory implements memory.Process.
func (p *Process) ReadRemoteMemory(addr memory.Address, buf []byte) error {
	b, err := p.window(addr, len(buf))
	if err != nil {
		return err
	}
	copy(buf, b)
	return nil
}

// WriteRemoteMemory implements memory.Process.
func (p *Process) WriteRemoteMemory(addr memory.Address, data []byte) error {
	b, err := p.window(addr, len(data))
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

func (p *Process) window(addr memory.Address, n int) ([]byte, error) {
	if p.closed {
		return nil, memory.ErrProcessClosed
	}
	if addr < p.section.Start || addr >= p.section.End {
		return nil, fmt.Errorf("%w: %s", memory.ErrUnmapped, addr)
	}
	off := uint64(addr - p.section.Start)
	if n < 0 || off+uint64(n) > uint64(len(p.data)) {
		return nil, fmt.Errorf("%w: %d bytes at %s", memory.ErrUnmapped, n, addr)
	}
	return p.data[off : off+uint64(n)], nil
}

var _ memory.Process = (*Process)(nil)
