package memory

// Section is one mapped region of the remote address space.
type Section struct {
	Start Address // inclusive
	End   Address // exclusive
	Name  string  // module or mapping name, may be empty
	Perms string  // e.g. "rw-p"
}

// Contains reports whether a lies inside the section.
func (s Section) Contains(a Address) bool {
	return a >= s.Start && a < s.End
}

// Size returns the section length in bytes.
func (s Section) Size() uint64 {
	return uint64(s.End - s.Start)
}

// Process is the raw memory capability of an attached process.
//
// ReadRemoteMemory fills buf completely or returns an error; partial reads
// are reported as errors so callers can fall back to page-wise reads.
type Process interface {
	ReadRemoteMemory(addr Address, buf []byte) error
	WriteRemoteMemory(addr Address, data []byte) error

	// SectionFor returns the mapped section containing addr.
	SectionFor(addr Address) (Section, bool)

	// IsValid reports whether the process can still be read.
	IsValid() bool
}
