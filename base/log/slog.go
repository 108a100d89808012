package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const timeFormat = "060102 15:04:05.000"

var levelVar = new(slog.LevelVar)

func setLevelVar(level Severity) {
	levelVar.Set(level.toSLogLevel())
}

func setupSLog(writer io.Writer, level Severity) {
	setLevelVar(level)

	// Only use colors when writing to a terminal.
	noColor := true
	if f, ok := writer.(*os.File); ok && isTerminal(f) {
		noColor = false
		// Translate escape sequences on windows consoles.
		writer = colorable.NewColorable(f)
	}

	logHandler := tint.NewHandler(writer, &tint.Options{
		AddSource:   true,
		Level:       levelVar,
		TimeFormat:  timeFormat,
		NoColor:     noColor,
		ReplaceAttr: replaceAttr,
	})

	// Set as default logger.
	slog.SetDefault(slog.New(logHandler))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// replaceAttr prints levels with three letters, including trace and
// critical, and shortens the source to the package directory and file.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.LevelKey:
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		switch {
		case level <= slogLevelTrace:
			return slog.String(slog.LevelKey, "TRC")
		case level <= slog.LevelDebug:
			return slog.String(slog.LevelKey, "DBG")
		case level <= slog.LevelInfo:
			return slog.String(slog.LevelKey, "INF")
		case level <= slog.LevelWarn:
			return slog.String(slog.LevelKey, "WRN")
		case level <= slog.LevelError:
			return slog.String(slog.LevelKey, "ERR")
		default:
			return slog.String(slog.LevelKey, "CRT")
		}

	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok || src == nil {
			return a
		}
		dir, file := filepath.Split(src.File)
		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(dir), file), src.Line))
	}

	return a
}
