package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressPrinterDeduplicates(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressPrinter()
	p.Out = &buf

	p.Update(10)
	p.Update(10)
	p.Update(10)
	p.Update(100)

	out := buf.String()
	if got := strings.Count(out, "Downloading:  10%"); got != 1 {
		t.Errorf("10%% rendered %d times, want 1", got)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("line not terminated after reaching 100%")
	}
}

func TestProgressPrinterUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressPrinter()
	p.Out = &buf

	p.Update(-1)
	p.Update(-1)

	if got := strings.Count(buf.String(), "Downloading..."); got != 1 {
		t.Errorf("indeterminate marker rendered %d times, want 1", got)
	}
}
