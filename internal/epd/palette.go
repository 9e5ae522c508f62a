package epd

import "image/color"

// Palette is an ordered list of panel ink colors. Index 0 is always pure
// black and index 1 always pure white; a third entry, when present, is the
// panel's accent color.
type Palette []color.RGBA

var (
	black  = color.RGBA{0x00, 0x00, 0x00, 0xff}
	white  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red    = color.RGBA{0xff, 0x00, 0x00, 0xff}
	yellow = color.RGBA{0xff, 0xff, 0x00, 0xff}
)

var (
	paletteMono   = Palette{black, white}
	paletteRed    = Palette{black, white, red}
	paletteYellow = Palette{black, white, yellow}

	// paletteGrey matches the controller reference renderer's 4-level
	// greyscale table. No shipped panel variant selects it.
	paletteGrey = Palette{
		black,
		{0x55, 0x55, 0x55, 0xff},
		{0xaa, 0xaa, 0xaa, 0xff},
		white,
	}
)

// PaletteFor returns the palette for a model and render mode. The model
// picks the base palette; a monochrome mode drops the accent entry.
func PaletteFor(model Model, mode Mode) Palette {
	pal := paletteMono
	switch model {
	case ModelRed:
		pal = paletteRed
	case ModelYellow:
		pal = paletteYellow
	}
	if mode.Mono() {
		pal = pal[:2]
	}
	return pal
}
