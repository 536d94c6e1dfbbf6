// Package render draws a laid out timetable grid as an image and encodes
// it for download.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"schedgrid/errors"
	"schedgrid/timetable"
)

var (
	charcoal = color.RGBA{0x30, 0x30, 0x30, 0xff}
	shade    = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

// Unscaled geometry, in pixels.
const (
	timeWidth   = 120
	dayWidth    = 190
	titleHeight = 64
	headHeight  = 44
	rowHeight   = 96
	rule        = 2
	inset       = 4
	textPad     = 8
)

// Options controls how a grid is drawn.
type Options struct {
	// Name is shown in the title as "<Name>'s Schedule".
	Name  string
	Style timetable.Style
	// Scale multiplies every dimension and font size. Zero means 1.
	Scale float64
}

type geometry struct {
	scale float64
}

func (g geometry) px(v int) int {
	return int(float64(v)*g.scale + 0.5)
}

func fillrect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(img *image.RGBA, rect image.Rectangle, w int, c color.Color) {
	fillrect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+w), c)
	fillrect(img, image.Rect(rect.Min.X, rect.Max.Y-w, rect.Max.X, rect.Max.Y), c)
	fillrect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+w, rect.Max.Y), c)
	fillrect(img, image.Rect(rect.Max.X-w, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

// Size returns the pixel size Draw produces for a grid.
func Size(grid timetable.Grid, scale float64) image.Point {
	if scale <= 0 {
		scale = 1
	}
	g := geometry{scale}
	return image.Pt(
		g.px(timeWidth)+len(grid.Days)*g.px(dayWidth),
		g.px(titleHeight)+g.px(headHeight)+len(grid.Rows)*g.px(rowHeight),
	)
}

// Draw renders grid. Every occupied cell becomes a block as tall as the
// session's span, coloured by the style's lecture or tutorial colour with
// contrasting text.
func Draw(grid timetable.Grid, opts Options) (*image.RGBA, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if _, err := timetable.ParseHex(opts.Style.Lecture); err != nil {
		return nil, errors.NewError("render.Draw", "bad lecture colour", err)
	}
	if _, err := timetable.ParseHex(opts.Style.Tutorial); err != nil {
		return nil, errors.NewError("render.Draw", "bad tutorial colour", err)
	}
	ff, err := newFaces(opts.Scale)
	if err != nil {
		return nil, err
	}

	size := Size(grid, opts.Scale)
	canvas := image.NewRGBA(image.Rectangle{image.Point{0, 0}, size})
	fillrect(canvas, canvas.Bounds(), color.White)

	mkcanvas(canvas, grid, opts, ff)
	if err := mkblocks(canvas, grid, opts, ff); err != nil {
		return nil, err
	}
	return canvas, nil
}

// mkcanvas draws the title, the day header, the time column and the rules.
func mkcanvas(canvas *image.RGBA, grid timetable.Grid, opts Options, ff faces) {
	g := geometry{opts.Scale}
	w := canvas.Bounds().Dx()
	top := g.px(titleHeight)
	gridTop := top + g.px(headHeight)
	timeW := g.px(timeWidth)
	dayW := g.px(dayWidth)
	rowH := g.px(rowHeight)
	ruleW := g.px(rule)

	title := opts.Name + "'s Schedule"
	if opts.Name == "" {
		title = "My Schedule"
	}
	imprint(canvas, fit(ff.title, title, w-2*g.px(textPad)), ff.title, image.Pt(g.px(textPad), top-g.px(20)), charcoal)
	fillrect(canvas, image.Rect(0, top-g.px(4)-ruleW, w, top-ruleW), charcoal)

	fillrect(canvas, image.Rect(0, top, w, gridTop), charcoal)
	base := top + (g.px(headHeight)+lineHeight(ff.head))/2 - g.px(3)
	centre(canvas, "Time", ff.head, 0, timeW, base, color.White)
	for d, day := range grid.Days {
		centre(canvas, day.String(), ff.head, timeW+d*dayW, dayW, base, color.White)
	}

	for r, row := range grid.Rows {
		y := gridTop + r*rowH
		fillrect(canvas, image.Rect(0, y, timeW, y+rowH), shade)
		centre(canvas, row.Label, ff.small, 0, timeW, y+(rowH+lineHeight(ff.small))/2-g.px(2), charcoal)
	}

	bottom := gridTop + len(grid.Rows)*rowH
	for r := 0; r <= len(grid.Rows); r++ {
		y := gridTop + r*rowH
		fillrect(canvas, image.Rect(0, y-ruleW/2, w, y-ruleW/2+ruleW), charcoal)
	}
	for d := 0; d <= len(grid.Days); d++ {
		x := timeW + d*dayW
		fillrect(canvas, image.Rect(x-ruleW/2, top, x-ruleW/2+ruleW, bottom), charcoal)
	}
	outline(canvas, image.Rect(0, top, w, bottom), ruleW, charcoal)
}

// mkblocks draws every occupied cell. A block never reaches below the last
// row, even when its session runs past it.
func mkblocks(canvas *image.RGBA, grid timetable.Grid, opts Options, ff faces) error {
	g := geometry{opts.Scale}
	gridTop := g.px(titleHeight) + g.px(headHeight)
	dayW, rowH, in := g.px(dayWidth), g.px(rowHeight), g.px(inset)
	for r := range grid.Rows {
		for d := range grid.Days {
			cell := grid.Cell(r, d)
			if cell.Empty() {
				continue
			}
			x := g.px(timeWidth) + d*dayW + in
			y := gridTop + r*rowH + in
			w := dayW - 2*in
			h := min(cell.Span, len(grid.Rows)-r)*rowH - 2*in
			if err := mkblock(canvas, *cell.Session, image.Rect(x, y, x+w, y+h), opts, ff); err != nil {
				return err
			}
		}
	}
	return nil
}

// mkblock draws one session: code at the top, the name below it, location
// on the bottom left and the type badge with the group on the bottom right.
func mkblock(canvas *image.RGBA, s timetable.Session, rect image.Rectangle, opts Options, ff faces) error {
	g := geometry{opts.Scale}
	bgHex, fgHex := opts.Style.Colors(s)
	bg, err := timetable.ParseHex(bgHex)
	if err != nil {
		return errors.NewError("render.mkblock", "bad background", err)
	}
	fg, _ := timetable.ParseHex(fgHex)

	block := image.NewRGBA(image.Rectangle{image.Point{0, 0}, rect.Size()})
	fillrect(block, block.Bounds(), bg)
	outline(block, block.Bounds(), g.px(rule), charcoal)

	pad := g.px(textPad)
	inner := block.Bounds().Dx() - 2*pad
	y := pad + lineHeight(ff.small)
	imprint(block, fit(ff.small, s.Code, inner), ff.small, image.Pt(pad, y), fg)

	footer := block.Bounds().Dy() - pad
	for _, line := range wrap(ff.name, s.Name, inner, 2) {
		y += lineHeight(ff.name)
		if y > footer-lineHeight(ff.small) {
			break
		}
		imprint(block, line, ff.name, image.Pt(pad, y), fg)
	}

	badge := s.Badge() + " " + s.Group
	bw := width(ff.small, badge)
	imprint(block, badge, ff.small, image.Pt(block.Bounds().Dx()-pad-bw, footer), fg)
	imprint(block, fit(ff.small, s.Location, inner-bw-pad), ff.small, image.Pt(pad, footer), fg)

	draw.Draw(canvas, rect, block, image.Pt(0, 0), draw.Src)
	return nil
}
