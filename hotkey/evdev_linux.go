//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

const inputEventSize = 24

// evdev keycodes (linux/input-event-codes.h) to canonical key names.
// Autorepeat events (value 2) never reach the listener.
var evdevKeys = map[uint16]string{
	29:  "ctrl", // left
	97:  "ctrl", // right
	42:  "shift",
	54:  "shift",
	56:  "alt",
	100: "alt",
	125: "cmd", // left meta
	126: "cmd",
	57:  "space",
	28:  "enter",
	15:  "tab",
	1:   "escape",
	14:  "backspace",
	111: "delete",
	103: "up",
	108: "down",
	105: "left",
	106: "right",
	59:  "f1",
	60:  "f2",
	61:  "f3",
	62:  "f4",
	63:  "f5",
	64:  "f6",
	65:  "f7",
	66:  "f8",
	67:  "f9",
	68:  "f10",
	87:  "f11",
	88:  "f12",
	16:  "q", 17: "w", 18: "e", 19: "r", 20: "t", 21: "y", 22: "u",
	23: "i", 24: "o", 25: "p",
	30: "a", 31: "s", 32: "d", 33: "f", 34: "g", 35: "h", 36: "j",
	37: "k", 38: "l",
	44: "z", 45: "x", 46: "c", 47: "v", 48: "b", 49: "n", 50: "m",
	2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8",
	10: "9", 11: "0",
}

type evdevSource struct {
	files []*os.File
	stop  chan struct{}
	once  sync.Once
}

func NewSource() (Source, error) {
	return &evdevSource{stop: make(chan struct{})}, nil
}

func (s *evdevSource) Run(handle func(key Key, pressed bool)) error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		s.files = append(s.files, f)
		go s.readEvents(f, handle)
	}

	if len(s.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (s *evdevSource) readEvents(f *os.File, handle func(key Key, pressed bool)) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}
			if evValue != keyPress && evValue != keyRelease {
				continue // autorepeat
			}

			name, ok := evdevKeys[evCode]
			if !ok {
				continue
			}
			handle(Identify(name), evValue == keyPress)
		}
	}
}

func (s *evdevSource) Close() {
	s.once.Do(func() {
		close(s.stop)
		for _, f := range s.files {
			f.Close()
		}
	})
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}
