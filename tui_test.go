package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapTextMultiByte(t *testing.T) {
	lines := wrapText(strings.Repeat("é", 10), 4)
	want := []string{"éééé", "éééé", "éé"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i, line := range lines {
		if !utf8.ValidString(line) {
			t.Errorf("line %d is not valid UTF-8: %q", i, line)
		}
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestWrapTextEmptyAndZeroWidth(t *testing.T) {
	if lines := wrapText("", 10); len(lines) != 1 || lines[0] != "" {
		t.Errorf("wrapText(\"\") = %q", lines)
	}
	if lines := wrapText("ab", 0); len(lines) != 2 {
		t.Errorf("wrapText with zero width = %q, want one rune per line", lines)
	}
}
