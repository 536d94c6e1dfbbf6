package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"schedgrid/errors"
)

// Format is an image encoding offered for download.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// MimeType returns the Content-Type for f.
func (f Format) MimeType() string {
	return "image/" + string(f)
}

// ParseFormat maps a name or file extension ("png", ".webp") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png", "":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return "", errors.NewError("render.ParseFormat", s, errors.ErrUnsupportedFormat)
}

// FormatOf picks the format from an output path's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Export surrounds img with a white margin of padding pixels on every side.
// If maxWidth is positive and the result is wider, it is scaled down to
// that width keeping its aspect ratio.
func Export(img image.Image, padding, maxWidth int) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx()+2*padding, b.Dy()+2*padding, color.White)
	out = imaging.Paste(out, img, image.Pt(padding, padding))
	if maxWidth > 0 && out.Bounds().Dx() > maxWidth {
		out = imaging.Resize(out, maxWidth, 0, imaging.Lanczos)
	}
	return out
}

// Encode writes img to w in format f. WebP output is lossless, the grid
// being flat colour and text.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return errors.NewError("render.Encode", "cannot encode PNG", err)
		}
	case WebP:
		if err := webp.Encode(w, img, &webp.Options{Lossless: true}); err != nil {
			return errors.NewError("render.Encode", "cannot encode WebP", err)
		}
	default:
		return errors.NewError("render.Encode", string(f), errors.ErrUnsupportedFormat)
	}
	return nil
}

// Filename is the download name for a student's schedule image.
func Filename(name string, f Format) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "My"
	}
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, name)
	return name + "_Schedule." + string(f)
}
