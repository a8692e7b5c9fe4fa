package memory

import (
	"bytes"
	"fmt"
	"time"
)

// PageSize is the granularity of the fallback reads used when a window
// cannot be read in one piece.
const PageSize = 0x1000

// MaxWindow is the largest window a single Update reads. Larger requests
// are truncated and reported with ErrOutOfBounds.
const MaxWindow = 1 << 24

// Snapshot is a refreshed copy of a window of the remote address space.
//
// A Snapshot returned by Slice shares the buffer of its parent as of the
// moment it was created; it is meant to live for a single draw call.
type Snapshot struct {
	process Process

	base   Address // address of data[0]
	offset int     // reads are relative to data[offset]
	size   int     // requested window size

	data     []byte
	previous []byte // last frame's bytes, same length as data or nil
	invalid  []span // ranges of data that could not be read

	valid     bool
	updatedAt time.Time
}

// NewSnapshot creates an empty snapshot bound to p. p may be nil, in which
// case every Update yields an invalid, zero-filled window.
func NewSnapshot(p Process) *Snapshot {
	return &Snapshot{process: p}
}

// Process returns the process the snapshot reads from.
func (s *Snapshot) Process() Process { return s.process }

// SetProcess rebinds the snapshot and drops its contents.
func (s *Snapshot) SetProcess(p Process) {
	s.process = p
	s.data, s.previous, s.invalid = nil, nil, nil
	s.valid = false
}

// Size returns the requested window size in bytes.
func (s *Snapshot) Size() int { return s.size }

// SetSize sets the window size used by the next Update.
func (s *Snapshot) SetSize(n int) {
	if n < 0 {
		n = 0
	}
	s.size = n
}

// Address returns the remote address read offset 0 maps to.
func (s *Snapshot) Address() Address { return s.base.Add(s.offset) }

// Len returns the number of readable bytes from offset 0.
func (s *Snapshot) Len() int {
	if s.offset >= len(s.data) {
		return 0
	}
	return len(s.data) - s.offset
}

// Valid reports whether the last Update read the whole window.
func (s *Snapshot) Valid() bool { return s.valid }

// UpdatedAt returns the time of the last Update.
func (s *Snapshot) UpdatedAt() time.Time { return s.updatedAt }

// Update reads Size() bytes at addr into a new buffer and swaps it in.
//
// Bytes that cannot be read are zero filled and recorded as invalid; the
// returned error then wraps ErrUnmapped. A closed process yields
// ErrProcessClosed and an all-invalid window. A window larger than
// MaxWindow is cut to MaxWindow and the error wraps ErrOutOfBounds.
func (s *Snapshot) Update(addr Address) error {
	size := min(s.size, MaxWindow)
	buf := make([]byte, size)
	var invalid []span
	var err error

	switch {
	case s.process == nil || !s.process.IsValid():
		if size > 0 {
			invalid = []span{{Off: 0, Len: size}}
		}
		err = ErrProcessClosed
	case size > 0:
		if rerr := s.process.ReadRemoteMemory(addr, buf); rerr != nil {
			invalid = readPaged(s.process, addr, buf)
			if len(invalid) > 0 {
				err = fmt.Errorf("%w: %d unreadable range(s) at %s", ErrUnmapped, len(invalid), addr)
			}
		}
	}
	if s.size > size && err == nil {
		err = fmt.Errorf("%w: window of %d bytes cut to %d", ErrOutOfBounds, s.size, size)
	}

	prev := s.data
	if len(prev) != len(buf) || s.base != addr {
		prev = nil
	}

	s.previous = prev
	s.data = buf
	s.invalid = invalid
	s.base = addr
	s.offset = 0
	s.valid = len(invalid) == 0 && err == nil
	s.updatedAt = time.Now()

	return err
}

// readPaged reads buf page by page. A page that fails in one piece is read
// again section by section, so only the bytes outside readable sections end
// up zero filled and reported.
func readPaged(p Process, addr Address, buf []byte) []span {
	var invalid []span
	off := 0
	for off < len(buf) {
		cur := addr.Add(off)
		n := PageSize - int(uint64(cur)%PageSize)
		if off+n > len(buf) {
			n = len(buf) - off
		}
		if err := p.ReadRemoteMemory(cur, buf[off:off+n]); err != nil {
			for _, sp := range readSections(p, cur, buf[off:off+n]) {
				invalid = appendSpan(invalid, span{Off: off + sp.Off, Len: sp.Len})
			}
		}
		off += n
	}
	return invalid
}

// sectionLister is implemented by processes that can enumerate their
// sections. It lets readSections skip a gap in one step.
type sectionLister interface {
	Sections() []Section
}

// readSections fills buf from the sections overlapping [addr, addr+len(buf))
// and returns the spans, relative to buf, that could not be read.
func readSections(p Process, addr Address, buf []byte) []span {
	lister, _ := p.(sectionLister)
	var invalid []span
	off := 0
	for off < len(buf) {
		cur := addr.Add(off)
		rest := len(buf) - off
		n, ok := rest, false
		if sec, found := p.SectionFor(cur); found {
			n = int(min(uint64(sec.End-cur), uint64(rest)))
			ok = p.ReadRemoteMemory(cur, buf[off:off+n]) == nil
		} else {
			n = gapLen(lister, cur, rest)
		}
		if !ok {
			clear(buf[off : off+n])
			invalid = appendSpan(invalid, span{Off: off, Len: n})
		}
		off += n
	}
	return invalid
}

// gapLen returns how many bytes from cur, at most limit, lie before the next
// section. Without a section list the gap advances one byte at a time.
func gapLen(lister sectionLister, cur Address, limit int) int {
	if lister == nil {
		return 1
	}
	n := limit
	for _, sec := range lister.Sections() {
		if sec.Start > cur && uint64(sec.Start-cur) < uint64(n) {
			n = int(sec.Start - cur)
		}
	}
	return n
}

func appendSpan(spans []span, sp span) []span {
	if k := len(spans); k > 0 && spans[k-1].Off+spans[k-1].Len == sp.Off {
		spans[k-1].Len += sp.Len
		return spans
	}
	return append(spans, sp)
}

// Slice returns a view whose offset 0 is offset bytes into s.
func (s *Snapshot) Slice(offset int) *Snapshot {
	c := *s
	c.offset = s.offset + offset
	return &c
}

// Bytes returns n bytes at off, or false when the range is outside the window.
// The returned slice aliases the snapshot buffer and must not be modified.
func (s *Snapshot) Bytes(off, n int) ([]byte, bool) {
	abs, ok := addOverflowSafe(s.offset, off)
	if !ok {
		return nil, false
	}
	return window(s.data, abs, n)
}

// IsValidOffset reports whether n bytes at off were fetched successfully.
func (s *Snapshot) IsValidOffset(off, n int) bool {
	if _, ok := s.Bytes(off, n); !ok {
		return false
	}
	abs := s.offset + off
	for _, sp := range s.invalid {
		if sp.overlaps(abs, n) {
			return false
		}
	}
	return true
}

// ResolvesToMappedRegion reports whether addr lies in a mapped section of
// the process.
func (s *Snapshot) ResolvesToMappedRegion(addr Address) bool {
	if s.process == nil || addr == 0 {
		return false
	}
	_, ok := s.process.SectionFor(addr)
	return ok
}

// SectionFor forwards to the process.
func (s *Snapshot) SectionFor(addr Address) (Section, bool) {
	if s.process == nil {
		return Section{}, false
	}
	return s.process.SectionFor(addr)
}

// HasChanged reports whether n bytes at off differ from the previous refresh.
// The first refresh of a window never reports changes.
func (s *Snapshot) HasChanged(off, n int) bool {
	if s.previous == nil {
		return false
	}
	cur, ok := s.Bytes(off, n)
	if !ok {
		return false
	}
	abs := s.offset + off
	prev, ok := window(s.previous, abs, n)
	if !ok {
		return false
	}
	return !bytes.Equal(cur, prev)
}
