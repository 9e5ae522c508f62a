// Package epd encodes raster frames into the format the 12.48" e-paper
// panel controller expects: palette quantization, ink plane separation,
// nibble packing and the controller's frame-buffer reordering.
package epd

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
)

// Panel geometry. These are controller facts taken from the panel datasheet,
// not derived values: the controller drives the panel as four independent
// segments and the split column is fixed in firmware.
const (
	PanelWidth  = 1304
	PanelHeight = 984

	// packedRow is the number of packed characters per pixel row.
	packedRow = PanelWidth / 4
	// halfRows is the number of pixel rows in each panel half.
	halfRows = PanelHeight / 2
	// splitCol is the packed-character column where the left segment ends.
	splitCol = 162
)

// PackedLen is the required length of a packed plane stream for the panel.
const PackedLen = packedRow * PanelHeight

// Model identifies a panel variant. The controller matches the ID strings
// verbatim.
type Model uint8

const (
	ModelMono Model = iota
	ModelRed
	ModelYellow
)

// String returns the config-facing name of the model.
func (m Model) String() string {
	switch m {
	case ModelMono:
		return "mono"
	case ModelRed:
		return "red"
	case ModelYellow:
		return "yellow"
	default:
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
}

// ID returns the identifier string the controller firmware expects.
func (m Model) ID() string {
	switch m {
	case ModelMono:
		return "EPD12in48"
	case ModelRed:
		return "EPD12in48B"
	case ModelYellow:
		return "EPD12in48Y"
	default:
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
}

// Accent returns the model's accent reference color, if it has one.
func (m Model) Accent() (color.RGBA, bool) {
	switch m {
	case ModelRed:
		return paletteRed[2], true
	case ModelYellow:
		return paletteYellow[2], true
	default:
		return color.RGBA{}, false
	}
}

// ParseModel maps a configuration string to a panel model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "mono":
		return ModelMono, nil
	case "red":
		return ModelRed, nil
	case "yellow":
		return ModelYellow, nil
	default:
		return 0, errors.Errorf("unknown panel model %q", s)
	}
}

// Mode selects the quantization algorithm. The low bit requests a monochrome
// render, the second bit enables error diffusion.
type Mode uint8

const (
	FlatColor   Mode = 0
	FlatMono    Mode = 1
	DitherColor Mode = 2
	DitherMono  Mode = 3
)

// Mono reports whether the mode requests a black/white-only render.
func (m Mode) Mono() bool { return m&1 != 0 }

// Dithered reports whether the mode uses error diffusion.
func (m Mode) Dithered() bool { return m&2 != 0 }

// String returns the config-facing name of the mode.
func (m Mode) String() string {
	switch m {
	case FlatColor:
		return "flat"
	case FlatMono:
		return "flat-mono"
	case DitherColor:
		return "dither"
	case DitherMono:
		return "dither-mono"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode maps a configuration string to a render mode. An empty string
// selects the flat color mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "flat", "":
		return FlatColor, nil
	case "flat-mono":
		return FlatMono, nil
	case "dither":
		return DitherColor, nil
	case "dither-mono":
		return DitherMono, nil
	default:
		return 0, errors.Errorf("unknown render mode %q", s)
	}
}
