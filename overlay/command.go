// Package overlay manages the visual feedback surface: a subprocess
// spoken to over newline-delimited JSON commands on its stdin. Feedback
// is cosmetic; nothing in here may fail or block a dictation session.
package overlay

import "encoding/json"

const (
	ActionShow   = "show"
	ActionUpdate = "update"
	ActionHide   = "hide"
	ActionQuit   = "quit"
)

// Command is one line of the wire protocol.
type Command struct {
	Action string `json:"action"`
	Status string `json:"status,omitempty"`
	Text   string `json:"text,omitempty"`
}

func Show(status string) Command { return Command{Action: ActionShow, Status: status} }
func Update(text string) Command { return Command{Action: ActionUpdate, Text: text} }
func Hide() Command              { return Command{Action: ActionHide} }
func Quit() Command              { return Command{Action: ActionQuit} }

func (c Command) encode() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
