package overview

import (
	"context"
	"time"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// overviewContextKey is the key used to store Overview in context.
const overviewContextKey contextKey = "overview"

// Overview aggregates evaluation statistics for a single calculator run:
// how many evaluations were attempted, how many completed, how often each
// operator was applied, and the run's wall-clock bounds.
type Overview struct {
	// LastResult is the accumulator value of the most recent successful
	// evaluation, nil before the first one.
	LastResult *float64 `json:"last_result,omitempty"`

	Evaluations int `json:"evaluations"`
	Successes   int `json:"successes"`
	Failures    int `json:"failures"`

	// OperatorStats tracks how many times each operator symbol was applied.
	OperatorStats map[string]int `json:"operator_stats,omitempty"`

	// ExecutionStartTime marks when the run started
	ExecutionStartTime time.Time `json:"execution_start_time,omitempty"`
	// ExecutionEndTime marks when the run ended
	ExecutionEndTime time.Time `json:"execution_end_time,omitempty"`
}

// Summary is a point-in-time breakdown of an Overview.
type Summary struct {
	Evaluations          int            `json:"evaluations"`
	Successes            int            `json:"successes"`
	Failures             int            `json:"failures"`
	OperatorApplications int            `json:"operator_applications"`
	OperatorStats        map[string]int `json:"operator_stats"`

	ExecutionDurationSeconds float64 `json:"execution_duration_seconds,omitempty"`
}

// OverviewFromContext retrieves the Overview from the context, creating one if
// it does not already exist. The context pointer is updated in-place when a new
// Overview is created so callers see the enriched context.
func OverviewFromContext(ctx *context.Context) *Overview {
	overviewVal := (*ctx).Value(overviewContextKey)
	if overviewVal == nil {
		overview := &Overview{
			OperatorStats: make(map[string]int),
		}
		*ctx = overview.ToContext(*ctx)
		return overview
	}

	overview, ok := overviewVal.(*Overview)
	if !ok {
		return nil
	}
	return overview
}

// ToContext stores the Overview in the given context and returns the enriched context.
func (overview *Overview) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, overviewContextKey, overview)
}

// RecordOperator records one application of the given operator symbol.
func (overview *Overview) RecordOperator(symbol string) {
	if overview.OperatorStats == nil {
		overview.OperatorStats = make(map[string]int)
	}
	overview.OperatorStats[symbol]++
}

// AddSuccess records one completed evaluation and its final result.
func (overview *Overview) AddSuccess(result float64) {
	overview.Evaluations++
	overview.Successes++
	overview.LastResult = &result
}

// AddFailure records one evaluation that ended in an error.
func (overview *Overview) AddFailure() {
	overview.Evaluations++
	overview.Failures++
}

// StartExecution marks the start of the run for duration tracking.
func (overview *Overview) StartExecution() {
	overview.ExecutionStartTime = time.Now()
}

// EndExecution marks the end of the run for duration tracking.
func (overview *Overview) EndExecution() {
	overview.ExecutionEndTime = time.Now()
}

// ExecutionDuration returns the total run duration.
// Returns 0 if the run hasn't started or ended.
func (overview *Overview) ExecutionDuration() time.Duration {
	if overview.ExecutionStartTime.IsZero() || overview.ExecutionEndTime.IsZero() {
		return 0
	}
	return overview.ExecutionEndTime.Sub(overview.ExecutionStartTime)
}

// Summary returns a detailed breakdown of the run's statistics.
func (overview *Overview) Summary() Summary {
	summary := Summary{
		Evaluations:   overview.Evaluations,
		Successes:     overview.Successes,
		Failures:      overview.Failures,
		OperatorStats: make(map[string]int),
	}

	for symbol, count := range overview.OperatorStats {
		summary.OperatorStats[symbol] = count
		summary.OperatorApplications += count
	}

	duration := overview.ExecutionDuration()
	if duration > 0 {
		summary.ExecutionDurationSeconds = duration.Seconds()
	}

	return summary
}
