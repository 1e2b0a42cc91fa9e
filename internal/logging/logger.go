// Package logging builds the charm logger used by rvdis. Level, prefix and
// file output come from the environment.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LoggerCloser is the rvdis logger together with the log file it writes
// to, if any. Stderr is never closed.
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
}

// Close closes the log file. It is a no-op for stderr and for writers
// that cannot be closed.
func (lc *LoggerCloser) Close() error {
	if lc.closer != nil {
		return lc.closer.Close()
	}
	return nil
}

// ParseLevel maps a level name to a charm log level. Unknown names are
// info.
func ParseLevel(name string) log.Level {
	switch name {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// NewLoggerWithWriter logs to w with the level from RVDIS_LOG_LEVEL and
// the prefix from RVDIS_LOG_PREFIX ("rvdis " by default). Close will close
// w when it is an io.Closer other than os.Stderr.
func NewLoggerWithWriter(w io.Writer) *LoggerCloser {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           ParseLevel(os.Getenv("RVDIS_LOG_LEVEL")),
	})

	prefix := os.Getenv("RVDIS_LOG_PREFIX")
	if prefix == "" {
		prefix = "rvdis "
	}

	var closer io.Closer
	if c, ok := w.(io.Closer); ok && w != os.Stderr {
		closer = c
	}

	return &LoggerCloser{
		Logger: lg.WithPrefix(prefix),
		closer: closer,
	}
}

// NewLogger logs to stderr, or with RVDIS_LOG_TO_FILE=1 to
// rvdis-<timestamp>-debug.log in the working directory. An unwritable
// directory falls back to stderr.
func NewLogger() *LoggerCloser {
	output := io.Writer(os.Stderr)

	if os.Getenv("RVDIS_LOG_TO_FILE") == "1" {
		timestamp := time.Now().Format("20060102-150405")
		logFile := fmt.Sprintf("rvdis-%s-debug.log", timestamp)

		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err == nil {
			output = f
		}
	}

	return NewLoggerWithWriter(output)
}

// IsDebug reports whether RVDIS_LOG_LEVEL asks for debug output.
func IsDebug() bool {
	return os.Getenv("RVDIS_LOG_LEVEL") == "debug"
}
