package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// ReadBackoff is how long the order processor waits after a failed read
	// before retrying.
	ReadBackoff time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		ReadBackoff: 100 * time.Millisecond,
	}
}
