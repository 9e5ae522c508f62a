package epd

import "testing"

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		name    string
		model   Model
		mode    Mode
		wantLen int
	}{
		{"mono flat", ModelMono, FlatColor, 2},
		{"mono flat-mono", ModelMono, FlatMono, 2},
		{"red flat", ModelRed, FlatColor, 3},
		{"red flat-mono", ModelRed, FlatMono, 2},
		{"red dither", ModelRed, DitherColor, 3},
		{"red dither-mono", ModelRed, DitherMono, 2},
		{"yellow flat", ModelYellow, FlatColor, 3},
		{"yellow dither-mono", ModelYellow, DitherMono, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal := PaletteFor(tt.model, tt.mode)
			if len(pal) != tt.wantLen {
				t.Fatalf("palette has %d entries, want %d", len(pal), tt.wantLen)
			}
			if pal[0] != black {
				t.Errorf("palette[0] = %v, want black", pal[0])
			}
			if pal[1] != white {
				t.Errorf("palette[1] = %v, want white", pal[1])
			}
			if tt.wantLen == 3 {
				accent, ok := tt.model.Accent()
				if !ok {
					t.Fatal("model has a 3-color palette but no accent")
				}
				if pal[2] != accent {
					t.Errorf("palette[2] = %v, want accent %v", pal[2], accent)
				}
			}
		})
	}
}

func TestModelID(t *testing.T) {
	tests := []struct {
		model Model
		want  string
	}{
		{ModelMono, "EPD12in48"},
		{ModelRed, "EPD12in48B"},
		{ModelYellow, "EPD12in48Y"},
	}

	for _, tt := range tests {
		if got := tt.model.ID(); got != tt.want {
			t.Errorf("%s.ID() = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestParseModel(t *testing.T) {
	for _, model := range []Model{ModelMono, ModelRed, ModelYellow} {
		got, err := ParseModel(model.String())
		if err != nil {
			t.Fatalf("ParseModel(%q): %v", model.String(), err)
		}
		if got != model {
			t.Errorf("ParseModel(%q) = %v, want %v", model.String(), got, model)
		}
	}

	if _, err := ParseModel("grey"); err == nil {
		t.Error("ParseModel accepted an unknown model")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in           string
		want         Mode
		mono, dither bool
	}{
		{"flat", FlatColor, false, false},
		{"", FlatColor, false, false},
		{"flat-mono", FlatMono, true, false},
		{"dither", DitherColor, false, true},
		{"dither-mono", DitherMono, true, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.Mono() != tt.mono || got.Dithered() != tt.dither {
			t.Errorf("%v: Mono()=%v Dithered()=%v, want %v %v",
				got, got.Mono(), got.Dithered(), tt.mono, tt.dither)
		}
	}

	if _, err := ParseMode("ordered"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
}
