// Package smoke drives a running server and checks every route against its contract.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Pairs   int           // Number of random credential pairs echoed per form route
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every check, not only failures
}

// Credentials is one generated username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Stats holds run statistics.
type Stats struct {
	ChecksRun    int
	ChecksPassed int
	ChecksFailed int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
