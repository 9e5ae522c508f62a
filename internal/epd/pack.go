package epd

import "strings"

// Pack serializes the plane into the controller's character stream: four
// consecutive bits per character, first bit most significant, mapped to
// 'a'..'p'. A trailing group of fewer than four bits is padded with zero
// bits; the fixed panel width never produces one, but the packer should not
// fall over if the geometry ever changes.
func (p BitPlane) Pack() string {
	var sb strings.Builder
	sb.Grow((len(p) + 3) / 4)

	for i := 0; i < len(p); i += 4 {
		var nib byte
		for j := 0; j < 4; j++ {
			nib <<= 1
			if i+j < len(p) {
				nib |= p[i+j] & 1
			}
		}
		sb.WriteByte('a' + nib)
	}

	return sb.String()
}
