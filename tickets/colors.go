package tickets

import (
	"strconv"
	"strings"
)

// Embed colors.
const (
	ColorGreen   = 0x2ecc71
	ColorRed     = 0xe74c3c
	ColorBlue    = 0x3498db
	ColorBlurple = 0x5865f2
)

var namedColors = map[string]int{
	"green":      ColorGreen,
	"red":        ColorRed,
	"blue":       ColorBlue,
	"blurple":    ColorBlurple,
	"gold":       0xf1c40f,
	"orange":     0xe67e22,
	"purple":     0x9b59b6,
	"teal":       0x1abc9c,
	"yellow":     0xfee75c,
	"fuchsia":    0xeb459e,
	"magenta":    0xe91e63,
	"grey":       0x95a5a6,
	"gray":       0x95a5a6,
	"white":      0xffffff,
	"black":      0x000000,
	"og_blurple": 0x7289da,
}

// ParseColor resolves a color name or #RRGGBB / 0xRRGGBB value. Unknown input is green.
func ParseColor(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	if c, ok := namedColors[s]; ok {
		return c
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) == 6 {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return int(v)
		}
	}
	return ColorGreen
}
