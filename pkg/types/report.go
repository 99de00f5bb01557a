package types

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ItemResult represents the outcome of acquiring one item
type ItemResult struct {
	// Item that was acquired
	Item TransferItem

	// Success indicates whether the file was written
	Success bool

	// Error contains any error that occurred during acquisition
	Error error

	// Message provides additional information about the result
	Message string

	// Bytes is the number of bytes written
	Bytes int64

	// Duration is how long the acquisition took
	Duration time.Duration

	// Skipped indicates the item was never attempted (dry run, fail-fast
	// or cancellation)
	Skipped bool
}

// Failed reports whether the item was attempted and did not succeed
func (r ItemResult) Failed() bool {
	return !r.Success && !r.Skipped
}

// Report is the outcome of one execution of a section tree
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	DryRun   bool

	// Results are in declaration order
	Results []ItemResult
}

// NewReport creates an empty report with a fresh run id
func NewReport(dryRun bool) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		DryRun:  dryRun,
	}
}

// Succeeded counts successful items
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed counts attempted items that failed
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Skipped counts items that were not attempted
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// HasFailures reports whether any item failed
func (r *Report) HasFailures() bool {
	return r.Failed() > 0
}

// Err joins every item error, or returns nil when nothing failed
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Failed() && res.Error != nil {
			errs = append(errs, res.Error)
		}
	}
	return errors.Join(errs...)
}
