package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestErrorOutputTagged(t *testing.T) {
	var buf bytes.Buffer
	Error.SetOutput(&buf)
	defer Error.SetOutput(os.Stderr)

	Errorf("settlement failed for %s", "ev1")

	got := buf.String()
	if !strings.Contains(got, "ERROR: settlement failed for ev1") {
		t.Errorf("expected tagged error line, got %q", got)
	}
}

func TestInfoOutputUntagged(t *testing.T) {
	var buf bytes.Buffer
	Info.SetOutput(&buf)
	defer Info.SetOutput(os.Stdout)

	Printf("event %s settled", "ev1")

	got := buf.String()
	if strings.Contains(got, "ERROR") {
		t.Errorf("info output must not carry the error tag, got %q", got)
	}
	if !strings.Contains(got, "event ev1 settled") {
		t.Errorf("expected info line, got %q", got)
	}
}
