// Package memory models the remote process a structure view is attached to
// and the refreshed window of its address space the view renders from.
//
// # Overview
//
// Process is the consumed capability: raw reads and writes against another
// process plus a lookup of the mapped section an address falls into. The
// package ships StaticProcess, an in-memory implementation used by tests and
// the demo; package procmem provides the Linux implementation.
//
// Snapshot is the per-view buffer. Every frame the view calls Update with the
// address and size of the root structure; Update reads the whole window into
// a fresh buffer and swaps it in, so a render pass only ever sees a buffer
// that was consistent as of the last refresh:
//
//	snap := memory.NewSnapshot(proc)
//	snap.SetSize(root.MemorySize())
//	if err := snap.Update(root.Address()); err != nil {
//	    // unreadable pages are zero filled and flagged invalid
//	}
//	v, ok := snap.ReadValue64(0x10)
//
// # Bounds
//
// All typed reads are bounds checked. Reads outside the fetched window, or
// inside a page that could not be read, report ok == false (or the zero value
// for the unchecked helpers) instead of failing; callers render a placeholder.
//
// # Byte order
//
// Values are decoded little-endian, matching x86/amd64 and arm64 targets.
package memory
