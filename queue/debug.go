//go:build debug

package queue

import (
	"fmt"
	"log"
	"os"
)

var debugLogger = log.New(os.Stderr, "[QUEUEME DEBUG] ", log.Ltime|log.Lmicroseconds|log.Lshortfile)

// debugLog traces hot-path events (push depth, pops, retirements) when built
// with -tags debug.
func debugLog(format string, args ...any) {
	debugLogger.Output(2, fmt.Sprintf(format, args...))
}
