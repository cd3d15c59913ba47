package engine

// Options represents configuration options for the Engine.
type Options struct {
	// RunQueueSize bounds how many change-triggered runs may queue while
	// one is executing. Bursts beyond the bound collapse into one run.
	RunQueueSize int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		RunQueueSize: 1,
	}
}
