//go:build linux

package queue

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinWorker locks the calling goroutine to an OS thread and pins that thread
// to the core matching the worker's slot, wrapping past NumCPU. The returned
// func undoes the thread lock; the affinity mask dies with the thread.
func pinWorker(slot int) func() {
	runtime.LockOSThread()

	core := slot % runtime.NumCPU()
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)
	_ = unix.SchedSetaffinity(0, &mask) // 0 = current thread

	return runtime.UnlockOSThread
}
