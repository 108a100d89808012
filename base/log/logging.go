package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/tevino/abool"
)

// Severity describes a log level.
type Severity uint32

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

// slog has no trace or critical level, so they are placed next to their
// closest neighbours.
const (
	slogLevelTrace    = slog.LevelDebug - 4
	slogLevelCritical = slog.LevelError + 4
)

var (
	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	started = abool.NewBool(false)
)

func (s Severity) toSLogLevel() slog.Level {
	switch s {
	case TraceLevel:
		return slogLevelTrace
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarningLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case CriticalLevel:
		return slogLevelCritical
	}
	// Failed to convert, return default log level
	return slog.LevelWarn
}

// Name returns the name of the log level.
func (s Severity) Name() string {
	switch s {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	case CriticalLevel:
		return "critical"
	default:
		return "none"
	}
}

// ParseLevel returns the level severity of a log level name.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// SetLogLevel sets a new log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
	setLevelVar(level)
}

// IsStarted returns whether Start was called.
func IsStarted() bool {
	return started.IsSet()
}

// Start starts the logging system. Log lines are written to the given writer,
// or to stdout if writer is nil. An empty level falls back to the -log flag
// and then to info. Only the first call has an effect.
func Start(level string, writer io.Writer) error {
	if !started.SetToIf(false, true) {
		return nil
	}

	if level == "" {
		level = logLevelFlag
	}

	// Parse log level argument.
	initialLogLevel := InfoLevel
	var err error
	if level != "" {
		initialLogLevel = ParseLevel(level)
		if initialLogLevel == 0 {
			err = fmt.Errorf("invalid log level %q, falling back to level info", level)
			initialLogLevel = InfoLevel
		}
	}

	if writer == nil {
		writer = os.Stdout
	}

	setupSLog(writer, initialLogLevel)
	SetLogLevel(initialLogLevel)

	return err
}
