//go:build !gui

package overlay

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

func TestTermRendererTruncatesPlainText(t *testing.T) {
	var buf bytes.Buffer
	r := &termRenderer{out: &buf}
	r.Show("Listening")

	buf.Reset()
	r.Update(strings.Repeat("é", 200))

	out := strings.TrimPrefix(buf.String(), "\r\x1b[2K")
	if !utf8.ValidString(out) {
		t.Errorf("truncated line is not valid UTF-8: %q", out)
	}
	// No terminal in tests, so redraw falls back to 80 columns.
	if w := lipgloss.Width(out); w > 80 {
		t.Errorf("line width = %d, want <= 80", w)
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated line missing ellipsis")
	}
}

func TestTermRendererShortTextKeptWhole(t *testing.T) {
	var buf bytes.Buffer
	r := &termRenderer{out: &buf}
	r.Show("Listening")

	buf.Reset()
	r.Update("hello world")

	if out := buf.String(); !strings.Contains(out, "hello world") {
		t.Errorf("short text was altered: %q", out)
	}
}
