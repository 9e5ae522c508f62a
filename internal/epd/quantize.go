package epd

import (
	"image"
	"image/color"
)

// Quantize maps every pixel of img to the nearest palette color. The
// dithered modes diffuse the quantization error to unprocessed neighbors;
// the flat modes treat every pixel independently. The output has the same
// bounds as the input and is fully opaque.
func Quantize(img *image.RGBA, pal Palette, mode Mode) *image.RGBA {
	if mode.Dithered() {
		return quantizeDiffuse(img, pal)
	}
	return quantizeFlat(img, pal)
}

func quantizeFlat(img *image.RGBA, pal Palette) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := img.PixOffset(x, y)
			c := nearest(pal, int(img.Pix[o]), int(img.Pix[o+1]), int(img.Pix[o+2]))
			d := out.PixOffset(x, y)
			out.Pix[d+0] = c.R
			out.Pix[d+1] = c.G
			out.Pix[d+2] = c.B
			out.Pix[d+3] = 0xff
		}
	}
	return out
}

// quantizeDiffuse quantizes with the controller reference renderer's error
// diffusion. The kernel is not the usual Floyd-Steinberg one: every weight
// is divided by 32, and the edge columns use their own weights. It has to be
// reproduced exactly for the panel to match renders done by the controller
// itself.
func quantizeDiffuse(img *image.RGBA, pal Palette) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(b)

	// Two rolling rows of per-column RGB error accumulators, owned by this
	// call so repeated quantizations stay independent.
	cur := make([][3]int, w)
	next := make([][3]int, w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r := int(img.Pix[o+0]) + cur[x][0]
			g := int(img.Pix[o+1]) + cur[x][1]
			bl := int(img.Pix[o+2]) + cur[x][2]

			c := nearest(pal, r, g, bl)
			d := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			out.Pix[d+0] = c.R
			out.Pix[d+1] = c.G
			out.Pix[d+2] = c.B
			out.Pix[d+3] = 0xff

			er := r - int(c.R)
			eg := g - int(c.G)
			eb := bl - int(c.B)

			switch {
			case x == 0:
				diffuse(cur, x+1, er, eg, eb, 2)
				diffuse(next, x+1, er, eg, eb, 7)
				diffuse(next, x, er, eg, eb, 7)
			case x == w-1:
				diffuse(next, x-1, er, eg, eb, 7)
				diffuse(next, x, er, eg, eb, 9)
			default:
				diffuse(next, x-1, er, eg, eb, 3)
				diffuse(next, x, er, eg, eb, 5)
				diffuse(next, x+1, er, eg, eb, 1)
				diffuse(cur, x+1, er, eg, eb, 7)
			}
		}

		cur = next
		next = make([][3]int, w)
	}

	return out
}

// diffuse adds a weighted 32nd of the error to the accumulator column.
// Out-of-range columns are dropped.
func diffuse(row [][3]int, x, er, eg, eb, weight int) {
	if x < 0 || x >= len(row) {
		return
	}
	row[x][0] += er * weight / 32
	row[x][1] += eg * weight / 32
	row[x][2] += eb * weight / 32
}

// nearest returns the palette entry with the smallest squared RGB distance.
// Ties go to the earlier entry.
func nearest(pal Palette, r, g, b int) color.RGBA {
	best := 0
	bestDist := -1
	for i, p := range pal {
		dr := r - int(p.R)
		dg := g - int(p.G)
		db := b - int(p.B)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return pal[best]
}
