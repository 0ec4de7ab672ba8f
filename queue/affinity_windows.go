//go:build windows

package queue

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinity = kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread  = kernel32.NewProc("GetCurrentThread")
)

// pinWorker locks the calling goroutine to an OS thread and pins that thread
// to the core matching the worker's slot, wrapping past NumCPU. Bit N of the
// affinity mask selects CPU N.
func pinWorker(slot int) func() {
	runtime.LockOSThread()

	handle, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uint(slot%runtime.NumCPU())
	_, _, _ = procSetThreadAffinity.Call(handle, mask)

	return runtime.UnlockOSThread
}
