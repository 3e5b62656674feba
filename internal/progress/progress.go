// Package progress defines how the scheduler reports per-attempt progress.
package progress

import (
	"fmt"

	"go.uber.org/zap"
)

// Outcome classifies one attempted link.
type Outcome string

// Supported attempt outcomes.
const (
	OutcomeExtracted   Outcome = "extracted"
	OutcomeDenied      Outcome = "denied"
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeNoRecord    Outcome = "no_record"
)

// Reporter observes attempt completions during a run. Implementations must be
// safe for concurrent use by multiple workers.
type Reporter interface {
	Attempt(done, total int, url string, outcome Outcome)
}

// LogReporter emits a human-readable "k/total" counter through a zap logger.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter wires a zap logger to the Reporter interface.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger}
}

// Attempt logs one attempt completion.
func (r *LogReporter) Attempt(done, total int, url string, outcome Outcome) {
	r.logger.Info("progress",
		zap.String("processed", fmt.Sprintf("%d/%d", done, total)),
		zap.String("url", url),
		zap.String("outcome", string(outcome)),
	)
}

// NopReporter discards all progress events.
type NopReporter struct{}

// Attempt implements Reporter.
func (NopReporter) Attempt(int, int, string, Outcome) {}
