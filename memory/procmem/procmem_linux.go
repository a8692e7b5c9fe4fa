//go:build linux

package procmem

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/memlens/memory"
)

// mapsTTL bounds how stale the cached section list may get.
const mapsTTL = time.Second

// Process is an attached Linux process.
type Process struct {
	pid      int
	sections []memory.Section
	loadedAt time.Time
	closed   bool
}

// Open attaches to pid. The process must exist and its maps must be readable.
func Open(pid int) (*Process, error) {
	p := &Process{pid: pid}
	if err := p.reloadMaps(); err != nil {
		return nil, fmt.Errorf("open pid %d: %w", pid, err)
	}
	return p, nil
}

// PID returns the attached process id.
func (p *Process) PID() int { return p.pid }

// Close detaches. Further reads fail with memory.ErrProcessClosed.
func (p *Process) Close() error {
	p.closed = true
	return nil
}

// IsValid implements memory.Process. A process that has exited is invalid.
func (p *Process) IsValid() bool {
	if p.closed {
		return false
	}
	return unix.Kill(p.pid, 0) == nil
}

// Sections returns the readable mappings, reloading them when stale.
func (p *Process) Sections() []memory.Section {
	if time.Since(p.loadedAt) > mapsTTL {
		_ = p.reloadMaps()
	}
	return p.sections
}

// SectionFor implements memory.Process.
func (p *Process) SectionFor(addr memory.Address) (memory.Section, bool) {
	return findSection(p.Sections(), addr)
}

// ReadRemoteMemory implements memory.Process.
func (p *Process) ReadRemoteMemory(addr memory.Address, buf []byte) error {
	if p.closed {
		return memory.ErrProcessClosed
	}
	if len(buf) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	n, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return fmt.Errorf("%w: read %d bytes at %s: %v", memory.ErrUnmapped, len(buf), addr, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: short read at %s (%d of %d)", memory.ErrUnmapped, addr, n, len(buf))
	}
	return nil
}

// WriteRemoteMemory implements memory.Process.
func (p *Process) WriteRemoteMemory(addr memory.Address, data []byte) error {
	if p.closed {
		return memory.ErrProcessClosed
	}
	if len(data) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &data[0]}}
	local[0].SetLen(len(data))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(data)}}

	n, err := unix.ProcessVMWritev(p.pid, local, remote, 0)
	if err != nil {
		return fmt.Errorf("write %d bytes at %s: %w", len(data), addr, err)
	}
	if n != len(data) {
		return fmt.Errorf("short write at %s (%d of %d)", addr, n, len(data))
	}
	return nil
}

func (p *Process) reloadMaps() error {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", p.pid))
	if err != nil {
		return err
	}
	defer f.Close()

	sections, err := ParseMaps(f)
	if err != nil {
		return err
	}
	p.sections = sections
	p.loadedAt = time.Now()
	return nil
}
