package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is an opaque pointer into the remote process.
type Address uint64

// Add returns a offset by off bytes. Negative offsets move backwards.
func (a Address) Add(off int) Address {
	if off < 0 {
		return a - Address(-off)
	}
	return a + Address(off)
}

// Sub returns the distance from b to a in bytes.
func (a Address) Sub(b Address) int64 {
	return int64(a - b)
}

// String formats the address as 16 upper-case hex digits.
func (a Address) String() string {
	return fmt.Sprintf("%016X", uint64(a))
}

// ParseAddress parses a hexadecimal address with or without a 0x prefix.
// Backticks used as digit separators ("7ff6`12340000") are ignored.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "`", "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address(v), nil
}
