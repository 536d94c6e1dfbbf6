// Package paste cleans up what a student pastes into the import form. Most
// pastes are plain text, but copying the portal's page source or dropping
// an exported page gives HTML, which is reduced to its visible text.
package paste

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"schedgrid/errors"
)

var markupPattern = regexp.MustCompile(`(?i)<\s*(html|body|table|tr|td|div|p|br|span)\b`)

// blocks are the elements whose text must not run into the next element's.
const blocks = "tr, td, th, li, p, div, br, h1, h2, h3, h4, table"

// IsHTML reports whether raw looks like markup rather than copied text.
func IsHTML(raw string) bool {
	return markupPattern.MatchString(raw)
}

// Text returns the visible text of raw. Plain text is returned unchanged.
func Text(raw string) (string, error) {
	if !IsHTML(raw) {
		return raw, nil
	}
	return FromHTML(strings.NewReader(raw))
}

// FromHTML extracts the visible text of an HTML document. Block elements
// are separated by a line break.
func FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", errors.NewError("paste.FromHTML", "cannot parse HTML", err)
	}
	doc.Find("head, script, style, noscript, template").Remove()
	doc.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return strings.TrimSpace(doc.Text()), nil
}
