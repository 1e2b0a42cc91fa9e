package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"info":  log.InfoLevel,
		"":      log.InfoLevel,
		"loud":  log.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestLoggerClosesOnlyFiles(t *testing.T) {
	t.Setenv("RVDIS_LOG_LEVEL", "debug")
	t.Setenv("RVDIS_LOG_PREFIX", "")

	w := &closeRecorder{}
	lg := NewLoggerWithWriter(w)
	lg.Debug("decoded", "count", 3)
	if out := w.String(); !strings.Contains(out, "rvdis") || !strings.Contains(out, "decoded") {
		t.Errorf("log output = %q", out)
	}
	if err := lg.Close(); err != nil || !w.closed {
		t.Errorf("Close = %v, closed %v; want the writer closed", err, w.closed)
	}

	if err := NewLoggerWithWriter(os.Stderr).Close(); err != nil {
		t.Errorf("closing the stderr logger: %v", err)
	}
	if err := NewLoggerWithWriter(&bytes.Buffer{}).Close(); err != nil {
		t.Errorf("closing a buffer logger: %v", err)
	}
}

func TestIsDebug(t *testing.T) {
	t.Setenv("RVDIS_LOG_LEVEL", "debug")
	if !IsDebug() {
		t.Error("IsDebug = false with RVDIS_LOG_LEVEL=debug")
	}
	t.Setenv("RVDIS_LOG_LEVEL", "warn")
	if IsDebug() {
		t.Error("IsDebug = true with RVDIS_LOG_LEVEL=warn")
	}
}
