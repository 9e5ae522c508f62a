package epd

import (
	"strings"
	"testing"
)

func TestPackAlphabet(t *testing.T) {
	// One nibble per possible value, MSB first.
	var plane BitPlane
	for v := 0; v < 16; v++ {
		plane = append(plane,
			uint8(v>>3)&1, uint8(v>>2)&1, uint8(v>>1)&1, uint8(v)&1)
	}

	want := "abcdefghijklmnop"
	if got := plane.Pack(); got != want {
		t.Errorf("Pack() = %q, want %q", got, want)
	}
}

func TestPackFullPanel(t *testing.T) {
	plane := NewBitPlane(PanelWidth * PanelHeight)
	packed := plane.Pack()

	if len(packed) != PackedLen {
		t.Fatalf("packed length = %d, want %d", len(packed), PackedLen)
	}
	if strings.Count(packed, "p") != PackedLen {
		t.Error("no-ink plane did not pack to all 'p'")
	}

	for i := range plane {
		plane.Ink(i)
	}
	packed = plane.Pack()
	if strings.Count(packed, "a") != PackedLen {
		t.Error("all-ink plane did not pack to all 'a'")
	}
}

func TestPackPartialNibble(t *testing.T) {
	tests := []struct {
		name string
		bits BitPlane
		want string
	}{
		{"empty", BitPlane{}, ""},
		{"one bit", BitPlane{1}, "i"},          // 1000
		{"two bits", BitPlane{1, 0}, "i"},      // 1000
		{"three bits", BitPlane{0, 1, 1}, "g"}, // 0110
		{"five bits", BitPlane{1, 1, 1, 1, 1}, "pi"},
		{"six bits", BitPlane{1, 1, 1, 1, 1, 0}, "pi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bits.Pack(); got != tt.want {
				t.Errorf("Pack(%v) = %q, want %q", tt.bits, got, tt.want)
			}
		})
	}
}
