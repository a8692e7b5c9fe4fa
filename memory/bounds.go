package memory

import "math"

// addOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func addOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// window returns b[off:off+n] if it fits within len(b).
func window(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := addOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// span is a half-open byte range [Off, Off+Len) of a snapshot buffer.
type span struct {
	Off int
	Len int
}

func (s span) overlaps(off, n int) bool {
	return off < s.Off+s.Len && s.Off < off+n
}
