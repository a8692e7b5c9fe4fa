package memory

import "errors"

var (
	// ErrOutOfBounds indicates a read or write outside the snapshot window.
	ErrOutOfBounds = errors.New("memory: offset out of bounds")

	// ErrUnmapped indicates an address that does not resolve to a mapped section.
	ErrUnmapped = errors.New("memory: address not mapped")

	// ErrProcessClosed indicates the process handle is no longer usable.
	ErrProcessClosed = errors.New("memory: process not open")

	// ErrInvalidAddress indicates an address string that could not be parsed.
	ErrInvalidAddress = errors.New("memory: invalid address")
)
