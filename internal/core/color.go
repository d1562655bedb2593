package core

import "image/color"

// Color is a palette index shared by the terminal and window hosts.
type Color uint8

// Palette entries. ColorDefault leaves the terminal foreground untouched.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightCyan
)

type paletteEntry struct {
	ansi string
	rgba color.RGBA
}

var palette = [...]paletteEntry{
	ColorDefault:      {"", color.RGBA{200, 200, 210, 255}},
	ColorRed:          {"1", color.RGBA{220, 70, 70, 255}},
	ColorGreen:        {"2", color.RGBA{90, 200, 110, 255}},
	ColorYellow:       {"3", color.RGBA{230, 170, 60, 255}},
	ColorMagenta:      {"5", color.RGBA{190, 90, 210, 255}},
	ColorCyan:         {"6", color.RGBA{230, 230, 240, 255}},
	ColorWhite:        {"7", color.RGBA{255, 255, 255, 255}},
	ColorBrightYellow: {"11", color.RGBA{255, 230, 90, 255}},
	ColorBrightCyan:   {"14", color.RGBA{120, 220, 255, 255}},
}

func (c Color) entry() paletteEntry {
	if int(c) >= len(palette) {
		return palette[ColorDefault]
	}
	return palette[c]
}

// ANSI returns the 256-color code for c, or "" for the default foreground.
func (c Color) ANSI() string {
	return c.entry().ansi
}

// RGBA returns the window-host rendition of c.
func (c Color) RGBA() color.RGBA {
	return c.entry().rgba
}
