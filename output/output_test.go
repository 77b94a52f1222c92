package output

import "testing"

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"clipboard", "type", "paste"} {
		m, err := ParseMethod(s)
		if err != nil {
			t.Errorf("ParseMethod(%q): %v", s, err)
		}
		if string(m) != s {
			t.Errorf("ParseMethod(%q) = %q", s, m)
		}
	}
	if _, err := ParseMethod("telepathy"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestCharKey(t *testing.T) {
	for _, tt := range []struct {
		r         rune
		wantShift bool
		wantOK    bool
	}{
		{'a', false, true},
		{'z', false, true},
		{'A', true, true},
		{'0', false, true},
		{' ', false, true},
		{'\n', false, true},
		{'\t', false, true},
		{'é', false, false},
		{'€', false, false},
	} {
		_, shift, ok := charKey(tt.r)
		if ok != tt.wantOK {
			t.Errorf("charKey(%q) ok = %v, want %v", tt.r, ok, tt.wantOK)
			continue
		}
		if ok && shift != tt.wantShift {
			t.Errorf("charKey(%q) shift = %v, want %v", tt.r, shift, tt.wantShift)
		}
	}
}

func TestDeliverEmptyTextIsNoop(t *testing.T) {
	if err := Deliver("", MethodPaste); err != nil {
		t.Errorf("Deliver(\"\"): %v", err)
	}
}
