package memory

import (
	"encoding/binary"
	"math"
	"strings"
)

// The unchecked Read helpers return the zero value when the range is outside
// the window. Use IsValidOffset or the checked variants to tell a real zero
// from a missing value.

// ReadUInt8 reads a byte at off.
func (s *Snapshot) ReadUInt8(off int) uint8 {
	if b, ok := s.Bytes(off, 1); ok {
		return b[0]
	}
	return 0
}

// ReadUInt16 reads a little-endian uint16 at off.
func (s *Snapshot) ReadUInt16(off int) uint16 {
	if b, ok := s.Bytes(off, 2); ok {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

// ReadUInt32 reads a little-endian uint32 at off.
func (s *Snapshot) ReadUInt32(off int) uint32 {
	if b, ok := s.Bytes(off, 4); ok {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// ReadUInt64 reads a little-endian uint64 at off.
func (s *Snapshot) ReadUInt64(off int) uint64 {
	if b, ok := s.Bytes(off, 8); ok {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// ReadInt32 reads a little-endian int32 at off.
func (s *Snapshot) ReadInt32(off int) int32 {
	return int32(s.ReadUInt32(off))
}

// ReadInt64 reads a little-endian int64 at off.
func (s *Snapshot) ReadInt64(off int) int64 {
	return int64(s.ReadUInt64(off))
}

// ReadFloat32 reads an IEEE-754 single at off.
func (s *Snapshot) ReadFloat32(off int) float32 {
	return math.Float32frombits(s.ReadUInt32(off))
}

// ReadFloat64 reads an IEEE-754 double at off.
func (s *Snapshot) ReadFloat64(off int) float64 {
	return math.Float64frombits(s.ReadUInt64(off))
}

// Value64 is eight raw bytes that can be viewed as any 64-bit interpretation.
type Value64 [8]byte

// ReadValue64 reads eight bytes at off. ok is false when any of them is
// outside the window or unreadable.
func (s *Snapshot) ReadValue64(off int) (Value64, bool) {
	var v Value64
	b, ok := s.Bytes(off, 8)
	if !ok {
		return v, false
	}
	copy(v[:], b)
	return v, s.IsValidOffset(off, 8)
}

// Int64 interprets all eight bytes as a signed integer.
func (v Value64) Int64() int64 { return int64(v.UInt64()) }

// UInt64 interprets all eight bytes as an unsigned integer.
func (v Value64) UInt64() uint64 { return binary.LittleEndian.Uint64(v[:]) }

// Float32 interprets the first four bytes as an IEEE-754 single.
func (v Value64) Float32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(v[:4]))
}

// Float64 interprets all eight bytes as an IEEE-754 double.
func (v Value64) Float64() float64 { return math.Float64frombits(v.UInt64()) }

// Pointer interprets the value as a remote address.
func (v Value64) Pointer() Address { return Address(v.UInt64()) }

// ReadPrintableASCII returns n bytes at off with every byte outside the
// printable ASCII range replaced by '.'.
func (s *Snapshot) ReadPrintableASCII(off, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	b, ok := s.Bytes(off, n)
	if !ok {
		return strings.Repeat(".", max(n, 0))
	}
	for _, c := range b {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
