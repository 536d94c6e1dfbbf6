package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"schedgrid/errors"
	"schedgrid/tests"
	"schedgrid/timetable"
)

func grid() timetable.Grid {
	return timetable.Layout(timetable.Parse(tests.PortalPaste), timetable.DisplayRows, timetable.GridDays)
}

func TestDrawSize(t *testing.T) {
	g := grid()
	img, err := Draw(g, Options{Name: "Biso", Style: timetable.DefaultStyle})
	if err != nil {
		t.Fatal(err)
	}
	want := image.Pt(120+5*190, 64+44+11*96)
	if img.Bounds().Size() != want {
		t.Errorf("size = %v, want %v", img.Bounds().Size(), want)
	}

	img2, err := Draw(g, Options{Style: timetable.DefaultStyle, Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if img2.Bounds().Dx() != 2*want.X || img2.Bounds().Dy() != 2*want.Y {
		t.Errorf("scaled size = %v", img2.Bounds().Size())
	}
}

func TestDrawBlockColours(t *testing.T) {
	style := timetable.Style{Lecture: "#FF0000", Tutorial: "#0000FF"}
	img, err := Draw(grid(), Options{Name: "Biso", Style: style})
	if err != nil {
		t.Fatal(err)
	}

	// Sunday 9:00 is a lecture spanning two rows; sample near the bottom
	// of its second row, away from any text.
	x := timeWidth + dayWidth - inset - 2*rule - 1
	y := titleHeight + headHeight + 2*rowHeight + rowHeight/2
	if got := color.RGBAModel.Convert(img.At(x, y)); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("lecture block at (%d,%d) = %v", x, y, got)
	}

	// Sunday 11:00 is a tutorial.
	y = titleHeight + headHeight + 3*rowHeight + rowHeight/2
	if got := color.RGBAModel.Convert(img.At(x, y)); got != (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Errorf("tutorial block at (%d,%d) = %v", x, y, got)
	}

	// Wednesday is empty.
	x = timeWidth + 3*dayWidth + dayWidth/2
	if got := color.RGBAModel.Convert(img.At(x, y)); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("empty Wednesday cell = %v", got)
	}
}

func TestDrawClampsLastRow(t *testing.T) {
	// 6:00 - 7:50 spans two rows but starts in the last one.
	s := timetable.Parse("Sunday " + tests.Clause("ARCN300", "Studio", "Regular Lecture", "S1", "6:00", "7:50", "2"))
	g := timetable.Layout(s, timetable.DisplayRows, timetable.GridDays)
	last := len(g.Rows) - 1
	if c := g.Cell(last, 0); c.Empty() || c.Span != 2 {
		t.Fatalf("last Sunday cell = %+v", c)
	}

	style := timetable.Style{Lecture: "#FF0000", Tutorial: "#0000FF"}
	img, err := Draw(g, Options{Style: style})
	if err != nil {
		t.Fatal(err)
	}
	// The block's bottom outline sits inside the canvas, one inset above
	// the bottom rule.
	x := timeWidth + dayWidth - inset - 2*rule - 1
	y := img.Bounds().Dy() - inset - 1
	if got := color.RGBAModel.Convert(img.At(x, y)); got != color.RGBAModel.Convert(charcoal) {
		t.Errorf("pixel (%d,%d) = %v, want the block outline", x, y, got)
	}
	if got := color.RGBAModel.Convert(img.At(x, y-rule-2)); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("pixel above the outline = %v, want the lecture colour", got)
	}
}

func TestDrawRejectsBadColour(t *testing.T) {
	_, err := Draw(grid(), Options{Style: timetable.Style{Lecture: "red", Tutorial: "#0000FF"}})
	if !errors.Is(err, errors.ErrInvalidColor) {
		t.Errorf("err = %v", err)
	}
}

func TestExportPadding(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 40))
	out := Export(src, 50, 0)
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 140 {
		t.Errorf("size = %v", out.Bounds().Size())
	}
	if got := color.RGBAModel.Convert(out.At(10, 10)); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("margin = %v", got)
	}

	small := Export(src, 50, 100)
	if small.Bounds().Dx() != 100 || small.Bounds().Dy() != 70 {
		t.Errorf("scaled size = %v", small.Bounds().Size())
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := Encode(&buf, img, PNG); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
	if err := Encode(&buf, img, Format("gif")); !errors.Is(err, errors.ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestFormats(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"out.png", PNG, true},
		{"out.WEBP", WebP, true},
		{"out", PNG, true},
		{"out.jpg", "", false},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v", tt.in, got, err)
		}
	}
	if WebP.MimeType() != "image/webp" {
		t.Errorf("mime = %s", WebP.MimeType())
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Biso", PNG); got != "Biso_Schedule.png" {
		t.Errorf("got %q", got)
	}
	if got := Filename("  ", PNG); got != "My_Schedule.png" {
		t.Errorf("got %q", got)
	}
	if got := Filename("a/b", WebP); got != "a_b_Schedule.webp" {
		t.Errorf("got %q", got)
	}
}

func TestWrap(t *testing.T) {
	ff, err := newFaces(1)
	if err != nil {
		t.Fatal(err)
	}
	lines := wrap(ff.name, "Introduction to Computer Systems and Digital Logic Design", 150, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for _, l := range lines {
		if width(ff.name, l) > 150 {
			t.Errorf("line %q is too wide", l)
		}
	}
}
