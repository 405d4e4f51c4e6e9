package logging

import "time"

// TimedOperation measures how long an operation took and logs it on End.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at debug level with its duration
func (t *TimedOperation) End(extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Debug(t.msg, t.collect(elapsed, extra)...)
	return elapsed
}

// EndError logs the operation as a warning with its duration and error.
// Rejections such as collisions are expected outcomes, not faults.
func (t *TimedOperation) EndError(err error, extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Warn(t.msg, append(t.collect(elapsed, extra), Error(err))...)
	return elapsed
}

func (t *TimedOperation) collect(elapsed time.Duration, extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(elapsed))
}
