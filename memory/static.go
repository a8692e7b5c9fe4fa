package memory

import (
	"fmt"
	"sort"
)

// StaticProcess is an in-memory Process made of mapped byte regions. It
// backs the demo mode and the tests.
type StaticProcess struct {
	regions []region
	closed  bool
	writes  int
}

type region struct {
	Section
	data []byte
}

// NewStaticProcess returns an empty process with nothing mapped.
func NewStaticProcess() *StaticProcess {
	return &StaticProcess{}
}

// Map maps a copy of data at start and returns the new section. Regions must
// not overlap; an overlapping region replaces nothing and returns false.
func (p *StaticProcess) Map(name string, start Address, data []byte) (Section, bool) {
	sec := Section{Start: start, End: start.Add(len(data)), Name: name, Perms: "rw-p"}
	for _, r := range p.regions {
		if sec.Start < r.End && r.Start < sec.End {
			return Section{}, false
		}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	p.regions = append(p.regions, region{Section: sec, data: buf})
	sort.Slice(p.regions, func(i, j int) bool { return p.regions[i].Start < p.regions[j].Start })
	return sec, true
}

// Sections returns the mapped sections in address order.
func (p *StaticProcess) Sections() []Section {
	out := make([]Section, len(p.regions))
	for i, r := range p.regions {
		out[i] = r.Section
	}
	return out
}

// Close marks the process as detached.
func (p *StaticProcess) Close() error {
	p.closed = true
	return nil
}

// Writes returns the number of successful WriteRemoteMemory calls.
func (p *StaticProcess) Writes() int { return p.writes }

// IsValid implements Process.
func (p *StaticProcess) IsValid() bool { return !p.closed }

// SectionFor implements Process.
func (p *StaticProcess) SectionFor(addr Address) (Section, bool) {
	if r := p.find(addr); r != nil {
		return r.Section, true
	}
	return Section{}, false
}

// ReadRemoteMemory implements Process. The range may span adjacent regions.
func (p *StaticProcess) ReadRemoteMemory(addr Address, buf []byte) error {
	return p.walk(addr, len(buf), func(r *region, rel, done, n int) {
		copy(buf[done:done+n], r.data[rel:rel+n])
	})
}

// WriteRemoteMemory implements Process. Nothing is written unless the whole
// range is mapped.
func (p *StaticProcess) WriteRemoteMemory(addr Address, data []byte) error {
	if err := p.walk(addr, len(data), func(*region, int, int, int) {}); err != nil {
		return err
	}
	err := p.walk(addr, len(data), func(r *region, rel, done, n int) {
		copy(r.data[rel:rel+n], data[done:done+n])
	})
	if err == nil {
		p.writes++
	}
	return err
}

// walk visits the pieces of [addr, addr+n) region by region and fails if any
// byte is unmapped.
func (p *StaticProcess) walk(addr Address, n int, fn func(r *region, rel, done, n int)) error {
	if p.closed {
		return ErrProcessClosed
	}
	done := 0
	for done < n {
		cur := addr.Add(done)
		r := p.find(cur)
		if r == nil {
			return fmt.Errorf("%w: %s", ErrUnmapped, cur)
		}
		rel := int(cur - r.Start)
		chunk := min(n-done, len(r.data)-rel)
		fn(r, rel, done, chunk)
		done += chunk
	}
	return nil
}

func (p *StaticProcess) find(addr Address) *region {
	i := sort.Search(len(p.regions), func(i int) bool { return p.regions[i].End > addr })
	if i < len(p.regions) && p.regions[i].Contains(addr) {
		return &p.regions[i]
	}
	return nil
}
