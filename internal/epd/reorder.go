package epd

import (
	"strings"

	"github.com/pkg/errors"
)

// Reorder permutes a packed plane stream into the order the controller's
// frame buffer expects. The controller addresses the panel as four segment
// streams: the top and bottom halves of the panel, each split at a fixed
// packed column into a left and a right segment. The output is the left
// slice of every top-half row, then the right slice of every top-half row,
// then the same for the bottom half.
func Reorder(packed string) (string, error) {
	if len(packed) != PackedLen {
		return "", errors.Errorf("packed stream is %d characters, want %d", len(packed), PackedLen)
	}

	var sb strings.Builder
	sb.Grow(PackedLen)

	for _, first := range [2]int{0, halfRows} {
		for y := first; y < first+halfRows; y++ {
			row := y * packedRow
			sb.WriteString(packed[row : row+splitCol])
		}
		for y := first; y < first+halfRows; y++ {
			row := y * packedRow
			sb.WriteString(packed[row+splitCol : row+packedRow])
		}
	}

	return sb.String(), nil
}
