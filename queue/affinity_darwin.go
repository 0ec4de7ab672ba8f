//go:build darwin

package queue

import "runtime"

// pinWorker locks the goroutine to an OS thread. macOS exposes no public
// thread-affinity API, so the slot is not tied to a particular core.
func pinWorker(int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
