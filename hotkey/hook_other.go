//go:build !linux

package hotkey

import (
	"sync"

	hook "github.com/robotn/gohook"
)

// hookSource delivers raw press/release events via gohook's global
// keyboard hook. Unlike a registered-hotkey API this sees every key, so
// modifier-only chords work the same as on linux.
type hookSource struct {
	stop chan struct{}
	once sync.Once
}

func NewSource() (Source, error) {
	return &hookSource{stop: make(chan struct{})}, nil
}

func (s *hookSource) Run(handle func(key Key, pressed bool)) error {
	events := hook.Start()

	go func() {
		for {
			select {
			case <-s.stop:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Kind != hook.KeyDown && ev.Kind != hook.KeyUp {
					continue // KeyHold is autorepeat
				}
				key := Identify(hook.RawcodetoKeychar(ev.Rawcode))
				handle(key, ev.Kind == hook.KeyDown)
			}
		}
	}()

	return nil
}

func (s *hookSource) Close() {
	s.once.Do(func() {
		close(s.stop)
		hook.End()
	})
}
