package output

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

func initKeys() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil && runtime.GOOS == "linux" {
			// The uinput device needs a moment to be recognized.
			time.Sleep(200 * time.Millisecond)
		}
	})
	return kbErr
}

// sendPaste injects the platform paste chord (ctrl+V, cmd+V on mac).
func sendPaste() error {
	if err := initKeys(); err != nil {
		return err
	}
	kb.Clear()
	kb.SetKeys(keybd_event.VK_V)
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	return kb.Launching()
}

var letterKeys = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitKeys = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

// charKey maps a rune to its key code plus shift state. ok is false for
// characters synthetic typing cannot produce.
func charKey(r rune) (code int, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return letterKeys[r-'a'], false, true
	case r >= 'A' && r <= 'Z':
		return letterKeys[r-'A'], true, true
	case r >= '0' && r <= '9':
		return digitKeys[r-'0'], false, true
	case r == ' ':
		return keybd_event.VK_SPACE, false, true
	case r == '\n':
		return keybd_event.VK_ENTER, false, true
	case r == '\t':
		return keybd_event.VK_TAB, false, true
	}
	return 0, false, false
}

// typeText sends the transcript character by character. Fails on the
// first character outside the synthesizable set.
func typeText(text string) error {
	if err := initKeys(); err != nil {
		return err
	}
	for _, r := range text {
		code, shift, ok := charKey(r)
		if !ok {
			return fmt.Errorf("cannot type character %q", r)
		}
		kb.Clear()
		kb.SetKeys(code)
		kb.HasSHIFT(shift)
		if err := kb.Launching(); err != nil {
			return err
		}
	}
	return nil
}
