package synthetic

import "time"

// Config holds configuration for a synthetic ranking run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Seed        int64         // PRNG seed; same seed, same pool
	NumCreators int           // Number of creator profiles to generate
	BrandID     string        // Brand id used for the generated spec
	Limit       int           // Result limit passed to the rank request
	Persist     bool          // Ask the service to persist match records
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Optional file to dump the generated pool
	Verbose     bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	CreatorsGenerated int
	RankedReturned    int
	PersistedCount    int
	PersistFailures   int
	Deterministic     bool
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
