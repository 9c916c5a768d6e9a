// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/denials/internal/model"
)

// ClaimClassifier classifies a single claim.
type ClaimClassifier interface {
	ClassifyClaim(ctx context.Context, claim model.ClaimInput) (model.ClaimOutput, error)
}

// ProgressReporter receives a callback after every claim attempt.
type ProgressReporter interface {
	Report(processed, total int)
}

// ProgressFunc adapts a plain function to ProgressReporter.
type ProgressFunc func(processed, total int)

// Report implements ProgressReporter.
func (f ProgressFunc) Report(processed, total int) {
	f(processed, total)
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	// Sleep replaces the real timer; tests use it to record backoff delays.
	Sleep SleepFunc
	// OnRetry is called before each backoff sleep with the failed attempt number.
	OnRetry      func(attempt int, delay time.Duration, err error)
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RunSummary contains aggregate information about a finished batch.
type RunSummary struct {
	CategoryCounts map[model.Category]int
	PayerCounts    map[string]int
	FailedIDs      []string
	Total          int
	Succeeded      int
	Failed         int
	Duration       time.Duration
}
