package queue

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a Pool.
type Option func(*config)

type config struct {
	workers     int
	name        string
	logger      *zap.Logger
	rateLimiter *rate.Limiter
	pinWorkers  bool
}

func defaultConfig() *config {
	return &config{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
}

// WithWorkerCount sets the initial desired worker count. If not specified,
// defaults to runtime.GOMAXPROCS(0). Zero is legal: the pool starts with an
// empty roster and holds queued work until SetWorkerCount raises the count.
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count >= 0 {
			cfg.workers = count
		}
	}
}

// WithName sets the instance name carried in the pool's log fields.
// If not specified, a random UUID is assigned.
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithLogger sets the structured logger for lifecycle events (start, stop,
// resizes, close) and per-slot spawn/retire traces at debug level.
// If not specified, everything is discarded.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithCPUAffinity locks every worker goroutine to an OS thread and pins that
// thread to the CPU core matching the worker's slot, wrapping around when the
// pool is larger than the machine. Useful for cache-sensitive workloads;
// because pinning follows the slot index, a slot keeps its core across
// Stop/Start cycles and resizes. On macOS only the thread lock applies, as
// the platform has no public affinity API.
// If not specified, workers float freely across cores.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.pinWorkers = true
	}
}

// WithRateLimit paces draining so that at most tasksPerSecond invokers start
// per second, with the given burst. Workers wait for a token after popping
// and before invoking, so queued work is metered out rather than refused.
// This is useful for pools that front external services or APIs.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // start at most 10 invokers/sec, burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}
