package crosslight

import (
	"testing"
)

func TestNextMode(t *testing.T) {
	none := Availability{}
	every := Availability{Left: true, Forward: true, Right: true}
	noRight := Availability{Left: true, Forward: true}

	testCases := []struct {
		name     string
		current  Mode
		avail    Availability
		expected Mode
	}{
		{"simple without left", Simple, none, SingleLeft},
		{"simple with left", Simple, every, SingleRight},
		{"single right with forward and right", SingleRight, every, SingleLeft},
		{"single right without right", SingleRight, noRight, Simple},
		{"single right without forward", SingleRight, Availability{Left: true, Right: true}, Simple},
		{"single left with left", SingleLeft, every, All},
		{"single left without left", SingleLeft, Availability{Forward: true, Right: true}, Simple},
		{"all", All, every, Simple},
		{"all without lanes", All, none, Simple},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextMode(tc.current, tc.avail); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestMode_StringAndParse(t *testing.T) {
	for _, m := range Modes {
		if !m.Valid() {
			t.Errorf("Expected %s to be valid", m)
		}
		parsed, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("Unexpected error parsing %q: %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("Expected %s, got %s", m, parsed)
		}
	}

	if Mode(0).Valid() || Mode(5).Valid() {
		t.Error("Expected modes outside 1..4 to be invalid")
	}

	if _, err := ParseMode("diagonal"); err == nil {
		t.Error("Expected error for unknown mode name")
	}

	if Simple != 1 || All != 4 {
		t.Error("Expected mode values 1..4")
	}
}
