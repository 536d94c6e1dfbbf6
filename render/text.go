package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"schedgrid/errors"
)

type faces struct {
	title font.Face
	head  font.Face
	name  font.Face
	small font.Face
}

func newFaces(scale float64) (faces, error) {
	boldttf, err := freetype.ParseFont(gobold.TTF)
	if err != nil {
		return faces{}, errors.NewError("render", "cannot parse bold font", err)
	}
	regttf, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return faces{}, errors.NewError("render", "cannot parse regular font", err)
	}
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72 * scale,
			Hinting: font.HintingNone,
		})
	}
	return faces{
		title: face(boldttf, 26),
		head:  face(boldttf, 15),
		name:  face(boldttf, 15),
		small: face(regttf, 11),
	}, nil
}

// imprint draws text with its baseline starting at pos.
func imprint(dest *image.RGBA, text string, face font.Face, pos image.Point, c color.Color) {
	pen := font.Drawer{
		Dst:  dest,
		Src:  image.NewUniform(c),
		Face: face,
	}
	pen.Dot = fixed.Point26_6{
		X: fixed.I(pos.X),
		Y: fixed.I(pos.Y),
	}
	pen.DrawString(text)
}

// centre draws text horizontally centred in the span [x, x+w).
func centre(dest *image.RGBA, text string, face font.Face, x, w, baseline int, c color.Color) {
	imprint(dest, text, face, image.Pt(x+(w-width(face, text))/2, baseline), c)
}

func width(face font.Face, text string) int {
	return font.MeasureString(face, text).Round()
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// fit shortens text with an ellipsis until it is no wider than w.
func fit(face font.Face, text string, w int) string {
	if width(face, text) <= w {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := strings.TrimSpace(string(runes)) + "…"
		if width(face, s) <= w {
			return s
		}
	}
	return ""
}

// wrap breaks text into at most max lines no wider than w. The last line
// is shortened when the text does not fit.
func wrap(face font.Face, text string, w, max int) []string {
	if max < 1 {
		return nil
	}
	var lines []string
	var cur string
	words := strings.Fields(text)
	for i, word := range words {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur == "" || width(face, next) <= w {
			cur = next
			continue
		}
		if len(lines) == max-1 {
			cur = strings.Join(append([]string{cur}, words[i:]...), " ")
			break
		}
		lines = append(lines, fit(face, cur, w))
		cur = word
	}
	if cur != "" {
		lines = append(lines, fit(face, cur, w))
	}
	return lines
}
