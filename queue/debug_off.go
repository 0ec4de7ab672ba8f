//go:build !debug

package queue

// debugLog compiles to nothing without -tags debug; the hot paths pay only
// for evaluating the arguments.
func debugLog(string, ...any) {}
