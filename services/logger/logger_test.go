package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(WarnLevel, &buf)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	for _, unwanted := range []string{"debug 1", "info 2"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output should not contain %q:\n%s", unwanted, out)
		}
	}
	for _, wanted := range []string{"[WARN] warn 3", "[ERROR] error 4"} {
		if !strings.Contains(out, wanted) {
			t.Errorf("output should contain %q:\n%s", wanted, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		" error ": ErrorLevel,
		"":        InfoLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCronLoggerFormatsKeyValues(t *testing.T) {
	var buf bytes.Buffer
	c := NewCronLogger(NewWriterLogger(DebugLevel, &buf))

	c.Info("skip", "entry", 3)
	c.Error(errors.New("boom"), "panic", "job", "deadlines", "dangling")

	out := buf.String()
	if !strings.Contains(out, "cron: skip entry=3") {
		t.Errorf("missing info line:\n%s", out)
	}
	if !strings.Contains(out, "cron: panic: boom job=deadlines dangling") {
		t.Errorf("missing error line:\n%s", out)
	}
}
