package overlay

import (
	"bufio"
	"encoding/json"
	"io"
)

// Renderer is the drawing side of the overlay subprocess.
type Renderer interface {
	Show(status string)
	Update(text string)
	Hide()
	Close()
}

// Serve reads commands from r until a quit command or EOF, driving the
// renderer. Malformed or unrecognized lines are ignored; a protocol
// error must never propagate back to the dictation process.
func Serve(r io.Reader, render Renderer) {
	defer render.Close()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var cmd Command
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}
		switch cmd.Action {
		case ActionShow:
			render.Show(cmd.Status)
		case ActionUpdate:
			render.Update(cmd.Text)
		case ActionHide:
			render.Hide()
		case ActionQuit:
			return
		}
	}
}
