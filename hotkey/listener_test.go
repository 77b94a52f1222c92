package hotkey

import "testing"

type counter struct {
	starts int
	stops  int
}

func newTestListener(t *testing.T, chord string, mode Mode) (*Listener, *FakeSource, *counter) {
	t.Helper()
	c, err := ParseChord(chord)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", chord, err)
	}
	n := &counter{}
	l := NewListener(c, mode,
		func() { n.starts++ },
		func() { n.stops++ },
	)
	fk := NewFakeSource()
	if err := l.Start(fk); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return l, fk, n
}

func TestPushToTalkChord(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+shift+space", ModePTT)

	fk.Press("ctrl")
	fk.Press("shift")
	if l.IsRecording() {
		t.Error("recording before trigger press")
	}
	fk.Press("space")
	if !l.IsRecording() {
		t.Error("not recording after full chord")
	}
	if n.starts != 1 {
		t.Errorf("starts = %d, want 1", n.starts)
	}

	fk.Release("space")
	if l.IsRecording() {
		t.Error("still recording after trigger release")
	}
	if n.stops != 1 {
		t.Errorf("stops = %d, want 1", n.stops)
	}

	fk.Release("shift")
	fk.Release("ctrl")
	if n.stops != 1 {
		t.Errorf("stops = %d after modifier releases, want 1", n.stops)
	}
}

func TestPushToTalkMissingModifier(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+shift+space", ModePTT)

	fk.Press("ctrl")
	fk.Press("space")
	if l.IsRecording() || n.starts != 0 {
		t.Error("start fired without full modifier set")
	}
}

func TestPushToTalkModifierOnlyChord(t *testing.T) {
	l, fk, n := newTestListener(t, "cmd+alt", ModePTT)

	fk.Press("cmd")
	if l.IsRecording() {
		t.Error("recording after first modifier only")
	}
	fk.Press("alt")
	if !l.IsRecording() {
		t.Error("not recording after cmd+alt held")
	}
	if n.starts != 1 {
		t.Errorf("starts = %d, want 1", n.starts)
	}

	// Releasing the trigger modifier stops.
	fk.Release("alt")
	if l.IsRecording() {
		t.Error("still recording after trigger release")
	}
	if n.stops != 1 {
		t.Errorf("stops = %d, want 1", n.stops)
	}

	// Subsequent cmd release fires nothing further.
	fk.Release("cmd")
	if n.starts != 1 || n.stops != 1 {
		t.Errorf("starts/stops = %d/%d after cmd release, want 1/1", n.starts, n.stops)
	}
}

func TestPushToTalkRequiredModifierReleaseStops(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+shift+space", ModePTT)

	fk.Press("ctrl")
	fk.Press("shift")
	fk.Press("space")
	if !l.IsRecording() {
		t.Fatal("not recording")
	}

	// Releasing a required modifier while holding the trigger stops.
	fk.Release("ctrl")
	if l.IsRecording() {
		t.Error("still recording after required modifier release")
	}
	if n.stops != 1 {
		t.Errorf("stops = %d, want 1", n.stops)
	}
}

func TestPushToTalkNonChordReleaseIgnored(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+shift+space", ModePTT)

	fk.Press("ctrl")
	fk.Press("shift")
	fk.Press("space")

	fk.Press("alt")
	fk.Release("alt")
	fk.Release("a")
	if !l.IsRecording() {
		t.Error("non-chord release stopped recording")
	}
	if n.stops != 0 {
		t.Errorf("stops = %d, want 0", n.stops)
	}
}

func TestPushToTalkRepeatedStartIgnored(t *testing.T) {
	_, fk, n := newTestListener(t, "ctrl+shift+space", ModePTT)

	fk.Press("ctrl")
	fk.Press("shift")
	fk.Press("space")
	fk.Press("space") // second press while recording
	if n.starts != 1 {
		t.Errorf("starts = %d, want 1", n.starts)
	}
}

func TestToggleSecondChordStops(t *testing.T) {
	l, fk, n := newTestListener(t, "cmd+shift+space", ModeToggle)

	fk.Press("cmd")
	fk.Press("shift")
	fk.Press("space")
	fk.Release("space")
	fk.Release("shift")
	fk.Release("cmd")
	if !l.IsRecording() {
		t.Error("toggle not recording after first chord")
	}
	if n.starts != 1 || n.stops != 0 {
		t.Errorf("starts/stops = %d/%d, want 1/0", n.starts, n.stops)
	}

	// Second full chord press while recording stops, not a second start.
	fk.Press("cmd")
	fk.Press("shift")
	fk.Press("space")
	if l.IsRecording() {
		t.Error("toggle still recording after second chord")
	}
	if n.starts != 1 || n.stops != 1 {
		t.Errorf("starts/stops = %d/%d, want 1/1", n.starts, n.stops)
	}
}

func TestToggleReleaseDoesNotStop(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+space", ModeToggle)

	fk.Press("ctrl")
	fk.Press("space")
	fk.Release("space")
	fk.Release("ctrl")
	if !l.IsRecording() {
		t.Error("toggle stopped on release")
	}
	if n.stops != 0 {
		t.Errorf("stops = %d, want 0", n.stops)
	}
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	l, fk, n := newTestListener(t, "ctrl+space", ModePTT)

	fk.Release("ctrl")
	fk.Release("space")
	if l.IsRecording() || n.starts != 0 || n.stops != 0 {
		t.Error("release without press fired a transition")
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	l, fk, _ := newTestListener(t, "ctrl+space", ModePTT)

	fk.Press("volumeup")
	fk.Press("ctrl")
	fk.Press("volumeup")
	fk.Press("space")
	if !l.IsRecording() {
		t.Error("unknown keys broke chord detection")
	}
}
