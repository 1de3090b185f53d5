package observability

import (
	"log/slog"
	"time"
)

// Timer tracks the duration of one operation (a pipeline stage, a solver
// phase) and logs it on Stop.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
}

// StartTimer creates a new timer for the given operation.
func StartTimer(operation string) *Timer {
	return &Timer{operation: operation, start: time.Now()}
}

// WithLogger attaches a logger so Stop/StopWithError emit a log line.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// Stop records and logs the operation's duration.
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)
	if t.logger != nil {
		t.logger.Info("operation completed", "operation", t.operation, DurationKey, duration.Milliseconds())
	}
	return duration
}

// StopWithError records and logs the operation's duration, at Error level
// when err is non-nil.
func (t *Timer) StopWithError(err error) time.Duration {
	duration := time.Since(t.start)
	if t.logger == nil {
		return duration
	}
	if err != nil {
		t.logger.Error("operation failed", "operation", t.operation, DurationKey, duration.Milliseconds(), "error", err.Error())
	} else {
		t.logger.Info("operation completed", "operation", t.operation, DurationKey, duration.Milliseconds())
	}
	return duration
}

// Elapsed returns the elapsed time without stopping the timer.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
