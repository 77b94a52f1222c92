package overlay

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

type recordRenderer struct {
	events []string
	closed bool
}

func (r *recordRenderer) Show(status string) { r.events = append(r.events, "show:"+status) }
func (r *recordRenderer) Update(text string) { r.events = append(r.events, "update:"+text) }
func (r *recordRenderer) Hide()              { r.events = append(r.events, "hide") }
func (r *recordRenderer) Close()             { r.closed = true }

func TestServeProtocol(t *testing.T) {
	input := strings.Join([]string{
		`{"action":"show","status":"Listening..."}`,
		`{"action":"update","text":"hello"}`,
		`{"action":"update","text":"hello world"}`,
		`{"action":"hide"}`,
		`{"action":"quit"}`,
		`{"action":"show","status":"never reached"}`,
	}, "\n")

	r := &recordRenderer{}
	Serve(strings.NewReader(input), r)

	want := []string{"show:Listening...", "update:hello", "update:hello world", "hide"}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, r.events[i], want[i])
		}
	}
	if !r.closed {
		t.Error("renderer not closed after quit")
	}
}

func TestServeIgnoresMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`not json at all`,
		`{"action":"unknown"}`,
		`{"action":`,
		``,
		`{"action":"update","text":"still alive"}`,
	}, "\n")

	r := &recordRenderer{}
	Serve(strings.NewReader(input), r)

	if len(r.events) != 1 || r.events[0] != "update:still alive" {
		t.Errorf("events = %v, want [update:still alive]", r.events)
	}
	if !r.closed {
		t.Error("renderer not closed on EOF")
	}
}

func TestCommandEncoding(t *testing.T) {
	for _, tt := range []struct {
		cmd  Command
		want string
	}{
		{Show("🎙️ Listening..."), `{"action":"show","status":"🎙️ Listening..."}`},
		{Update("some text"), `{"action":"update","text":"some text"}`},
		{Hide(), `{"action":"hide"}`},
		{Quit(), `{"action":"quit"}`},
	} {
		line, err := tt.cmd.encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got := strings.TrimSuffix(string(line), "\n")
		if got != tt.want {
			t.Errorf("encode = %s, want %s", got, tt.want)
		}
		if !strings.HasSuffix(string(line), "\n") {
			t.Error("encoded command missing newline terminator")
		}
	}
}

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
func (failWriter) Close() error              { return nil }

func TestChannelWritesLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewChannel()
	c.cmd = &exec.Cmd{} // pretend the process is alive
	c.stdin = nopWriteCloser{&buf}

	c.Show("Listening")
	c.Update("partial")
	c.Hide()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"show"`) ||
		!strings.Contains(lines[1], `"update"`) ||
		!strings.Contains(lines[2], `"hide"`) {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestChannelSwallowsWriteErrors(t *testing.T) {
	c := NewChannel()
	c.cmd = &exec.Cmd{}
	c.stdin = failWriter{}

	c.Update("does not panic") // must not propagate the error

	// The dead process is forgotten so a later Show can respawn.
	if c.cmd != nil {
		t.Error("channel did not reset after write failure")
	}
}

func TestChannelQuitAfterDeadProcess(t *testing.T) {
	c := NewChannel()
	c.cmd = &exec.Cmd{}
	c.stdin = failWriter{}

	c.Quit() // the quit write fails; must not panic

	if c.cmd != nil || c.stdin != nil {
		t.Error("channel not reset after quit against dead process")
	}
	c.Quit() // second quit is a no-op
}

func TestChannelUpdateWithoutProcessIsNoop(t *testing.T) {
	c := NewChannel()
	c.Update("nobody home")
	c.Hide()
	c.Quit()
	if c.cmd != nil {
		t.Error("update/hide must not spawn the overlay")
	}
}
