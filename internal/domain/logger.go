package domain

// Logger is the logging surface the report pipeline depends on.
// kv is a flat list of alternating keys and values.
type Logger interface {
	Debug(message string, kv ...any)
	Info(message string, kv ...any)
	Error(message string, err error, kv ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)        {}
func (NopLogger) Info(string, ...any)         {}
func (NopLogger) Error(string, error, ...any) {}
