// Package procmem attaches to a live process and implements memory.Process
// on top of process_vm_readv/process_vm_writev and /proc/<pid>/maps.
//
// Only Linux is supported; on other platforms Open returns ErrUnsupported.
// Reading another process needs ptrace access to it (same user with
// kernel.yama.ptrace_scope <= 1, or CAP_SYS_PTRACE).
package procmem
