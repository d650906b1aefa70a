package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Calculator Attributes ---

const (
	// AttrCalcName is the display name of the calculator instance
	AttrCalcName = "calc.name"

	// AttrCalcOperations is the number of operations a calculator carries
	AttrCalcOperations = "calc.operations"

	// AttrCalcCapacity is the operation capacity of a calculator
	AttrCalcCapacity = "calc.capacity"
)

// --- Evaluation Attributes ---

const (
	// AttrEvalSessionID is the unique identifier of one evaluation session
	AttrEvalSessionID = "eval.session.id"

	// AttrEvalSteps is the number of operator/operand pairs folded
	AttrEvalSteps = "eval.steps"

	// AttrEvalResult is the final accumulator value of a session
	AttrEvalResult = "eval.result"

	// AttrEvalInput is the raw input of a programmatic calculation request
	AttrEvalInput = "eval.input"

	// AttrEvalSuccesses is the number of completed evaluations in a run
	AttrEvalSuccesses = "eval.successes"

	// AttrEvalFailures is the number of failed evaluations in a run
	AttrEvalFailures = "eval.failures"

	// AttrEvalApplications is the total operator applications in a run
	AttrEvalApplications = "eval.applications"

	// AttrOpSymbol is the symbol of the operation being applied
	AttrOpSymbol = "op.symbol"

	// AttrOpName is the display name of the operation being applied
	AttrOpName = "op.name"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanEvaluate is the span name for token-stream evaluation sessions
	SpanEvaluate = "calc.evaluate"

	// SpanCall is the span name for JSON calculation requests
	SpanCall = "calc.call"
)

// --- Event Names ---

const (
	// EventEvaluateStart marks the start of an evaluation session
	EventEvaluateStart = "calc.evaluate.start"

	// EventEvaluateEnd marks the end of an evaluation session
	EventEvaluateEnd = "calc.evaluate.end"

	// EventOperationApplied marks one fold step over the accumulator
	EventOperationApplied = "calc.operation.applied"
)

// --- Metric Names ---

const (
	// MetricCalcSuccessCount counts completed calculations
	MetricCalcSuccessCount = "tally.calc.success.count"

	// MetricCalcEvalDuration is the histogram of evaluation durations
	MetricCalcEvalDuration = "tally.calc.eval.duration"
)
