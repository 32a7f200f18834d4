package diagfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReportPlainTextHasNoEscapeCodes(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)
	p.Report(StageCompile, errors.New("undefined variable \"x\""))

	out := buf.String()
	if !strings.Contains(out, "juno: compile error") {
		t.Fatalf("output = %q, want it to mention the compile stage", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output = %q, want no ANSI escapes when color is disabled", out)
	}
}

func TestReportColorModePreservesMessage(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	p.Report(StageRuntime, errors.New("division by zero"))

	out := buf.String()
	if !strings.Contains(out, "division by zero") {
		t.Fatalf("output = %q, want the error message preserved", out)
	}
}

func TestLocationFormat(t *testing.T) {
	p := New(&bytes.Buffer{}, false)
	got := p.Location("main.jn", 3, 7)
	if got != "main.jn:3:7" {
		t.Fatalf("Location() = %q, want %q", got, "main.jn:3:7")
	}
}
