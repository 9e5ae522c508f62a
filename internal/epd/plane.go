package epd

import "image"

// BitPlane holds one bit per pixel in row-major order for a single physical
// ink. Bit semantics follow the controller: 0 means ink is deposited at the
// pixel, 1 means no ink.
type BitPlane []uint8

// NewBitPlane creates a plane of n pixels with no ink anywhere.
func NewBitPlane(n int) BitPlane {
	p := make(BitPlane, n)
	for i := range p {
		p[i] = 1
	}
	return p
}

// Ink marks the pixel at the given index as inked.
func (p BitPlane) Ink(i int) {
	p[i] = 0
}

// Inked reports whether the pixel at the given index carries ink.
func (p BitPlane) Inked(i int) bool {
	return p[i] == 0
}

// SeparatePlanes splits a quantized image into the dark and accent ink
// planes. Only pure black pixels ink the dark plane. Pixels matching the
// model's accent color ink the accent plane, and only when the model has an
// accent ink and the mode asks for a color render. Everything else,
// including transparent pixels and colors the palette does not contain,
// renders white: no ink on either plane. A pixel therefore never carries
// both inks.
func SeparatePlanes(img *image.RGBA, model Model, mode Mode) (dark, accent BitPlane) {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	dark = NewBitPlane(n)
	accent = NewBitPlane(n)

	ac, hasAccent := model.Accent()
	useAccent := hasAccent && !mode.Mono()

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := img.PixOffset(x, y)
			r, g, bl, a := img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3]

			switch {
			case a < 0x10:
				// Transparent pixels render white.
			case r == 0x00 && g == 0x00 && bl == 0x00:
				dark.Ink(i)
			case useAccent && r == ac.R && g == ac.G && bl == ac.B:
				accent.Ink(i)
			}

			i++
		}
	}

	return dark, accent
}
