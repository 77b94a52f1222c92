//go:build !gui

package overlay

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// termRenderer draws a single status line on the controlling terminal.
// It is the default overlay surface; the gui build tag swaps in a
// floating window instead.
type termRenderer struct {
	out     io.Writer
	visible bool
	status  string
}

func NewRenderer() Renderer {
	return &termRenderer{out: os.Stderr}
}

func (t *termRenderer) Show(status string) {
	t.visible = true
	t.status = status
	t.redraw("")
}

func (t *termRenderer) Update(text string) {
	if !t.visible {
		return
	}
	t.redraw(text)
}

func (t *termRenderer) Hide() {
	if !t.visible {
		return
	}
	t.visible = false
	fmt.Fprint(t.out, "\r\x1b[2K")
}

func (t *termRenderer) Close() {
	t.Hide()
}

// redraw rewrites the status line in place. Truncation happens on the
// plain text before styling so the cut cannot land inside an escape
// sequence.
func (t *termRenderer) redraw(text string) {
	cols := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		cols = w
	}

	line := statusStyle.Render(t.status)
	if text != "" {
		if budget := cols - lipgloss.Width(t.status) - 1; budget >= 1 {
			if r := []rune(text); len(r) > budget {
				text = string(r[:budget-1]) + "…"
			}
			line += " " + textStyle.Render(text)
		}
	}
	fmt.Fprint(t.out, "\r\x1b[2K"+strings.TrimRight(line, "\n"))
}
