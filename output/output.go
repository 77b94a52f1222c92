// Package output delivers a finished transcript to the focused
// application: copy it, type it, or paste it.
package output

import (
	"fmt"
	"time"

	cb "github.com/atotto/clipboard"

	"dikt/log"
)

type Method string

const (
	MethodClipboard Method = "clipboard"
	MethodType      Method = "type"
	MethodPaste     Method = "paste"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodClipboard, MethodType, MethodPaste:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown output method %q (use clipboard, type, or paste)", s)
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

func Read() (string, error) {
	return cb.ReadAll()
}

// Deliver hands the transcript to the focused window using the chosen
// method. Empty text is a no-op.
func Deliver(text string, method Method) error {
	if text == "" {
		return nil
	}

	switch method {
	case MethodType:
		if err := typeText(text); err != nil {
			// Typing covers a limited character set; fall back to the
			// clipboard so the text is never lost.
			log.Warnf("type output failed, copying instead: %v", err)
			return Copy(text)
		}
		return nil

	case MethodPaste:
		if err := Copy(text); err != nil {
			return err
		}
		// Give the clipboard manager a beat before the synthetic paste.
		time.Sleep(30 * time.Millisecond)
		if err := sendPaste(); err != nil {
			log.Warnf("paste injection failed, text left on clipboard: %v", err)
		}
		return nil

	default:
		return Copy(text)
	}
}
