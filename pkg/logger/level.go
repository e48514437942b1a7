package logger

// Level orders log severities.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the prefix StandardLogger prints for l.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LevelLogger forwards messages at or above Min to Next.
type LevelLogger struct {
	Next Logger
	Min  Level
}

// NewLevelLogger returns a logger that drops messages below min.
func NewLevelLogger(next Logger, min Level) *LevelLogger {
	return &LevelLogger{Next: next, Min: min}
}

// Info forwards the message when Min allows informational output.
func (l *LevelLogger) Info(format string, args ...interface{}) {
	if l.Min <= LevelInfo {
		l.Next.Info(format, args...)
	}
}

// Warning forwards the message unless Min is LevelError.
func (l *LevelLogger) Warning(format string, args ...interface{}) {
	if l.Min <= LevelWarning {
		l.Next.Warning(format, args...)
	}
}

// Error always forwards the message.
func (l *LevelLogger) Error(format string, args ...interface{}) {
	l.Next.Error(format, args...)
}

// Close closes Next.
func (l *LevelLogger) Close() error {
	return l.Next.Close()
}

var _ Logger = (*LevelLogger)(nil)
