package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for map elements and HUD text.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrown
	ColorGold
	ColorForest
)

var colorNames = map[string]Color{
	"default":      ColorDefault,
	"red":          ColorRed,
	"green":        ColorGreen,
	"yellow":       ColorYellow,
	"blue":         ColorBlue,
	"magenta":      ColorMagenta,
	"cyan":         ColorCyan,
	"white":        ColorWhite,
	"bright_white": ColorBrightWhite,
	"orange":       ColorOrange,
	"gray":         ColorGray,
	"dark_gray":    ColorDarkGray,
	"brown":        ColorBrown,
	"gold":         ColorGold,
	"forest":       ColorForest,
}

// ParseColor resolves a color name as written in map legends.
// Unknown names report false.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// String returns the legend name of the color.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return "default"
}
