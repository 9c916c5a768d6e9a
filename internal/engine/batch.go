// Package engine runs claim classification over whole input files.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/model"
	"github.com/Veraticus/denials/internal/service"
)

// DefaultPacingInterval is the pause between successive classification calls.
const DefaultPacingInterval = 500 * time.Millisecond

// BatchRunner classifies claims one at a time, isolating per-claim failures.
type BatchRunner struct {
	classifier service.ClaimClassifier
	logger     *slog.Logger
	progress   service.ProgressReporter
	sleep      service.SleepFunc
	pacing     time.Duration
}

// Option customizes a BatchRunner.
type Option func(*BatchRunner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *BatchRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress registers a reporter called after every claim attempt.
func WithProgress(p service.ProgressReporter) Option {
	return func(r *BatchRunner) {
		r.progress = p
	}
}

// WithPacing overrides the pause between claims.
func WithPacing(d time.Duration) Option {
	return func(r *BatchRunner) {
		r.pacing = d
	}
}

// WithSleep replaces the pacing timer.
func WithSleep(sleep service.SleepFunc) Option {
	return func(r *BatchRunner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewBatchRunner creates a runner around the given classifier.
func NewBatchRunner(classifier service.ClaimClassifier, opts ...Option) *BatchRunner {
	r := &BatchRunner{
		classifier: classifier,
		logger:     slog.Default(),
		sleep:      common.Sleep,
		pacing:     DefaultPacingInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run classifies every claim in order and returns one output per input.
// A failed claim is recorded with its error and processing continues.
// Cancellation of ctx aborts the run and no partial results are returned.
func (r *BatchRunner) Run(ctx context.Context, claims []model.ClaimInput) ([]model.ClaimOutput, error) {
	total := len(claims)
	results := make([]model.ClaimOutput, 0, total)
	start := time.Now()

	r.logger.Info("Starting batch classification",
		"claims", total,
		"pacing", r.pacing)

	for i, claim := range claims {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := r.classifier.ClassifyClaim(ctx, claim)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				r.logger.Warn("Batch classification canceled",
					"processed", i,
					"total", total)
				return nil, ctxErr
			}
			r.logger.Warn("Failed to classify claim",
				"claim_id", claim.ID,
				"kind", common.KindOf(err).String(),
				"error", err)
			output = model.NewFailedClaimOutput(claim, err)
		}
		results = append(results, output)

		if r.progress != nil {
			r.progress.Report(i+1, total)
		}

		if i < total-1 && r.pacing > 0 {
			if err := r.sleep(ctx, r.pacing); err != nil {
				return nil, err
			}
		}
	}

	r.logger.Info("Batch classification complete",
		"claims", total,
		"duration", time.Since(start).Round(time.Millisecond))

	return results, nil
}
