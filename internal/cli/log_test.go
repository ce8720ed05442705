package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("loaded records", "records", 2)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("line does not start with a HH:MM:SS.ms timestamp: %q", line)
	}
	if !strings.Contains(line, "records=2") {
		t.Errorf("line is missing key/value: %q", line)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("rotating category labels")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("rotating category labels")
	if !strings.Contains(buf.String(), "rotating category labels") {
		t.Errorf("debug line missing at debug level: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	p.done("Wrote 2 file(s)")

	if !strings.Contains(buf.String(), "Wrote 2 file(s) (") {
		t.Errorf("done() output = %q", buf.String())
	}
	if p.elapsed() < 10*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 10ms", p.elapsed())
	}
}
