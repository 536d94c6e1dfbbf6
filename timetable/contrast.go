package timetable

import (
	"image/color"
	"strconv"

	"schedgrid/errors"
)

const (
	Black = "#000000"
	White = "#FFFFFF"
)

// ContrastColor picks black or white text for a "#RRGGBB" background using
// the YIQ luma (299R + 587G + 114B) / 1000, black from 128 up.
func ContrastColor(hex string) string {
	r, g, b := channel(hex, 1), channel(hex, 3), channel(hex, 5)
	if (299*r+587*g+114*b)/1000 >= 128 {
		return Black
	}
	return White
}

func channel(hex string, at int) int {
	if len(hex) < at+2 {
		return 0
	}
	v, _ := strconv.ParseUint(hex[at:at+2], 16, 8)
	return int(v)
}

// ParseHex decodes a "#RRGGBB" colour, rejecting any other shape.
func ParseHex(hex string) (color.RGBA, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, errors.NewError("timetable.ParseHex", hex, errors.ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, errors.NewError("timetable.ParseHex", hex, errors.ErrInvalidColor)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// Style holds the two background colours of the grid: one for lectures,
// one for everything else.
type Style struct {
	Lecture  string
	Tutorial string
}

var DefaultStyle = Style{
	Lecture:  "#FFDE59",
	Tutorial: "#5CE1E6",
}

// Colors returns the background and text colour for a session's cell.
func (st Style) Colors(s Session) (bg, fg string) {
	bg = st.Tutorial
	if s.IsLecture() {
		bg = st.Lecture
	}
	return bg, ContrastColor(bg)
}
