package log

// nullLogger discards everything. It is the default logger so that
// library packages never need a nil check before logging.
type nullLogger struct{}

func (nullLogger) Debug(string, ...Field) {}
func (nullLogger) Info(string, ...Field)  {}
func (nullLogger) Warn(string, ...Field)  {}
func (nullLogger) Error(string, ...Field) {}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() Logger {
	return nullLogger{}
}
