// Package document provides the text-provider abstraction the extraction
// strategies consume: full linear text per document and text confined to a
// rectangular region of one page. Strategies never see file handles or PDF
// internals, only this interface.
package document

import (
	"fmt"
	"strings"
)

// RelRect is a page-relative rectangle: all coordinates are fractions of
// the page width/height in [0, 1], with the origin at the top-left corner.
type RelRect struct {
	X0, Y0, X1, Y1 float64
}

// Document yields text from one statement document. Implementations hold a
// caller-owned handle; the extraction core never closes it.
type Document interface {
	// Text returns the concatenated linear text of all pages, with page
	// breaks normalized to a single newline.
	Text() (string, error)
	// RegionText returns the text inside a rectangle on one page
	// (zero-based index). expand grows the rectangle by that many PDF
	// units on every side before filtering.
	RegionText(page int, r RelRect, expand float64) (string, error)
}

// UnreadableError means no readable text could be recovered from the
// document by any backend. Fatal for the extraction call.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document %s is unreadable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("document %s is unreadable: no readable text", e.Path)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// StaticDocument is an in-memory Document for tests and pre-extracted text.
type StaticDocument struct {
	Pages []string
	// Regions, when set, answers RegionText calls; otherwise region
	// requests return empty text.
	Regions func(page int, r RelRect, expand float64) string
}

func (d *StaticDocument) Text() (string, error) {
	return strings.Join(d.Pages, "\n"), nil
}

func (d *StaticDocument) RegionText(page int, r RelRect, expand float64) (string, error) {
	if d.Regions == nil {
		return "", nil
	}
	return d.Regions(page, r, expand), nil
}
