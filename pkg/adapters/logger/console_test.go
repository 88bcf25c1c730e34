package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/routemock/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWithWriters(ports.LevelWarn, &out, &errOut)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	if out.Len() != 0 {
		t.Errorf("stdout should be empty below warn level, got %q", out.String())
	}
	got := errOut.String()
	if strings.Contains(got, "debug message") || strings.Contains(got, "info message") {
		t.Errorf("suppressed levels leaked: %q", got)
	}
	if !strings.Contains(got, "warn message") || !strings.Contains(got, "error message") {
		t.Errorf("warn/error missing: %q", got)
	}
}

func TestConsoleLogger_StreamSplit(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWithWriters(ports.LevelDebug, &out, &errOut)

	log.Info("progress")
	log.Warn("problem")

	if !strings.Contains(out.String(), "progress") {
		t.Errorf("info should go to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "problem") {
		t.Errorf("warn should go to stderr, got %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWithWriters(ports.LevelDebug, &out, &errOut).WithComponent("dispatch")

	log.Debug("hook resolved")

	if !strings.Contains(out.String(), "[dispatch] hook resolved") {
		t.Errorf("component tag missing: %q", out.String())
	}
}
