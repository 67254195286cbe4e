package app

import (
	"context"
	"fmt"
	"time"

	"salesreport/internal"
)

// Pipeline stage names
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageRender    = "render"
	StageAssemble  = "assemble"
)

// StageTiming records how long one stage ran
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// StageRunner executes pipeline stages in order, checking for cancellation
// between them and timing each one.
type StageRunner struct {
	logger  *internal.Logger
	timings []StageTiming
}

// NewStageRunner creates a new stage runner
func NewStageRunner(logger *internal.Logger) *StageRunner {
	return &StageRunner{logger: logger}
}

// Run executes fn as the named stage. Errors are prefixed with the stage name.
func (r *StageRunner) Run(ctx context.Context, stage string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	r.logger.Debug("stage %s starting", stage)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	r.timings = append(r.timings, StageTiming{Stage: stage, Duration: elapsed})

	if err != nil {
		r.logger.Error("stage %s failed after %s: %v", stage, elapsed, err)
		return fmt.Errorf("%s: %w", stage, err)
	}
	r.logger.Info("stage %s done in %s", stage, elapsed)
	return nil
}

// Timings returns the stages run so far
func (r *StageRunner) Timings() []StageTiming {
	return append([]StageTiming(nil), r.timings...)
}
