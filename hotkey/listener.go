package hotkey

import "sync"

type Mode string

const (
	ModePTT    Mode = "push-to-talk"
	ModeToggle Mode = "toggle"
)

// Source delivers raw press/release events for physical keys. Handle is
// invoked from the source's own event goroutine and must stay fast.
type Source interface {
	Run(handle func(key Key, pressed bool)) error
	Close()
}

// Listener turns raw key events into exactly two session transitions:
// OnStart and OnStop. It owns the only recording flag in the process;
// callbacks fire only on an actual state change, never twice for the
// same state.
type Listener struct {
	chord   Chord
	mode    Mode
	onStart func()
	onStop  func()

	source Source

	mu        sync.Mutex
	pressed   map[Key]bool
	recording bool
}

func NewListener(chord Chord, mode Mode, onStart, onStop func()) *Listener {
	return &Listener{
		chord:   chord,
		mode:    mode,
		onStart: onStart,
		onStop:  onStop,
		pressed: make(map[Key]bool),
	}
}

// Start begins consuming events from the source. The source's event
// goroutine invokes Handle directly.
func (l *Listener) Start(source Source) error {
	l.source = source
	return source.Run(l.Handle)
}

func (l *Listener) Stop() {
	if l.source != nil {
		l.source.Close()
	}
}

func (l *Listener) IsRecording() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.recording
}

// Handle processes one raw key event. Unknown keys carry a zero
// identity and are dropped; a release without a prior press is harmless
// (map delete of an absent entry).
func (l *Listener) Handle(key Key, pressed bool) {
	if key.IsZero() {
		return
	}
	if pressed {
		l.handlePress(key)
	} else {
		l.handleRelease(key)
	}
}

func (l *Listener) handlePress(key Key) {
	if key.IsModifier() {
		l.mu.Lock()
		l.pressed[key] = true
		l.mu.Unlock()

		// Modifier-only chords trigger on the press completing the set.
		if l.chord.TriggerIsModifier && l.chordHeld() {
			l.fireStart()
		}
		return
	}

	if key != l.chord.Trigger {
		return
	}
	if !l.modifiersHeld() {
		return
	}
	l.fireStart()
}

func (l *Listener) handleRelease(key Key) {
	if key.IsModifier() {
		l.mu.Lock()
		delete(l.pressed, key)
		recording := l.recording
		l.mu.Unlock()

		if l.mode != ModePTT || !recording {
			return
		}
		if l.chord.TriggerIsModifier && key == l.chord.Trigger {
			l.fireStop()
		} else if l.isRequiredModifier(key) {
			l.fireStop()
		}
		return
	}

	if key != l.chord.Trigger {
		return
	}
	if l.mode == ModePTT {
		l.fireStop()
	}
}

// chordHeld reports whether all required modifiers plus the (modifier)
// trigger are currently down.
func (l *Listener) chordHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.chord.Modifiers {
		if !l.pressed[m] {
			return false
		}
	}
	return l.pressed[l.chord.Trigger]
}

func (l *Listener) modifiersHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.chord.Modifiers {
		if !l.pressed[m] {
			return false
		}
	}
	return true
}

func (l *Listener) isRequiredModifier(key Key) bool {
	for _, m := range l.chord.Modifiers {
		if m == key {
			return true
		}
	}
	return false
}

// fireStart transitions Idle→Recording. In push-to-talk a repeated start
// while recording is a no-op (key repeat); in toggle the same chord press
// doubles as the stop trigger.
func (l *Listener) fireStart() {
	l.mu.Lock()
	var fire func()
	if !l.recording {
		l.recording = true
		fire = l.onStart
	} else if l.mode == ModeToggle {
		l.recording = false
		fire = l.onStop
	}
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
}

func (l *Listener) fireStop() {
	l.mu.Lock()
	var fire func()
	if l.recording {
		l.recording = false
		fire = l.onStop
	}
	l.mu.Unlock()

	if fire != nil {
		fire()
	}
}
