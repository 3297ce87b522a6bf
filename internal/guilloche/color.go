package guilloche

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor converts "#rgb" or "#rrggbb" plus an opacity in [0, 1] into a
// straight-alpha colour. Malformed strings yield black.
func ParseColor(hex string, opacity float64) color.NRGBA {
	c := color.NRGBA{A: uint8(math.Round(clamp01(opacity) * 255))}
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return c
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return c
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c
}

// Hex formats the RGB part of c as "#rrggbb".
func Hex(c color.NRGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
