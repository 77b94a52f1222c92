package hotkey

import (
	"fmt"
	"strings"
)

// Key is the canonical identity of a physical key. Two events referring
// to the same physical key (left/right variants, upper/lower case chars)
// normalize to the same Key.
type Key struct {
	name string
}

func (k Key) String() string { return k.name }

func (k Key) IsZero() bool { return k.name == "" }

func (k Key) IsModifier() bool {
	_, ok := modifierAliases[k.name]
	return ok && modifierAliases[k.name] == k.name
}

// modifierAliases maps accepted modifier spellings to canonical names.
var modifierAliases = map[string]string{
	"cmd":     "cmd",
	"command": "cmd",
	"super":   "cmd",
	"meta":    "cmd",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
}

// namedKeys maps accepted non-modifier key spellings to canonical names.
var namedKeys = map[string]string{
	"space":     "space",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"escape":    "escape",
	"esc":       "escape",
	"backspace": "backspace",
	"delete":    "delete",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"f1":        "f1",
	"f2":        "f2",
	"f3":        "f3",
	"f4":        "f4",
	"f5":        "f5",
	"f6":        "f6",
	"f7":        "f7",
	"f8":        "f8",
	"f9":        "f9",
	"f10":       "f10",
	"f11":       "f11",
	"f12":       "f12",
}

// ParseKey resolves a key name into its canonical identity. Accepts
// modifier names, named keys, and single characters (case-insensitive).
func ParseKey(s string) (Key, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := modifierAliases[lower]; ok {
		return Key{name: canonical}, nil
	}
	if canonical, ok := namedKeys[lower]; ok {
		return Key{name: canonical}, nil
	}
	if len([]rune(lower)) == 1 {
		return Key{name: lower}, nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}

// Identify normalizes a raw key name delivered by a Source. Unlike
// ParseKey it never fails: unmapped names yield a zero Key, which the
// listener ignores.
func Identify(raw string) Key {
	lower := strings.ToLower(raw)
	// Left/right variants from evdev and hook backends.
	lower = strings.TrimPrefix(lower, "left ")
	lower = strings.TrimPrefix(lower, "right ")
	if canonical, ok := modifierAliases[lower]; ok {
		return Key{name: canonical}
	}
	if canonical, ok := namedKeys[lower]; ok {
		return Key{name: canonical}
	}
	if len([]rune(lower)) == 1 {
		return Key{name: lower}
	}
	return Key{}
}

// Chord is a hotkey combination: zero or more required modifiers plus one
// trigger key. The trigger may itself be a modifier (e.g. cmd+alt held
// together), which changes how press events are matched.
type Chord struct {
	Modifiers         []Key
	Trigger           Key
	TriggerIsModifier bool
}

// ParseChord parses a "mod+mod+key" string (lowercase, last segment is
// the trigger key) into a Chord.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 || s == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	trigger, err := ParseKey(parts[len(parts)-1])
	if err != nil {
		return Chord{}, fmt.Errorf("parsing chord %q: %w", s, err)
	}

	var mods []Key
	for _, part := range parts[:len(parts)-1] {
		lower := strings.ToLower(strings.TrimSpace(part))
		canonical, ok := modifierAliases[lower]
		if !ok {
			return Chord{}, fmt.Errorf("parsing chord %q: %q is not a modifier", s, part)
		}
		mods = append(mods, Key{name: canonical})
	}

	return Chord{
		Modifiers:         mods,
		Trigger:           trigger,
		TriggerIsModifier: trigger.IsModifier(),
	}, nil
}

func (c Chord) String() string {
	var parts []string
	for _, m := range c.Modifiers {
		parts = append(parts, m.String())
	}
	parts = append(parts, c.Trigger.String())
	return strings.Join(parts, "+")
}
