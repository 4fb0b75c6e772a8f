package document

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// PDF is a Document backed by a PDF file. The primary backend is the
// ledongthuc/pdf reader, which exposes positioned text items and therefore
// supports region-bounded extraction; full-text extraction falls back to
// the MuPDF backend when the primary output fails the readability gate.
type PDF struct {
	path    string
	file    *os.File
	reader  *pdf.Reader
	openErr error

	text   string
	textOK bool
}

// OpenPDF opens a statement PDF. A file the primary reader cannot parse is
// not an immediate failure: full-text extraction may still succeed through
// the fallback backend, so the error is held until text is requested.
func OpenPDF(path string) (*PDF, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &PDF{path: path}
	f, r, err := openReader(path)
	if err != nil {
		d.openErr = err
	} else {
		d.file = f
		d.reader = r
	}
	return d, nil
}

// Close releases the underlying file handle. Ownership stays with the
// caller that opened the document; extraction strategies never call this.
func (d *PDF) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// openReader wraps pdf.Open with a recover: the library panics on some
// malformed cross-reference tables.
func openReader(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf reader crashed: %v", rec)
		}
	}()
	return pdf.Open(path)
}

// Text extracts the full linear text, trying the primary reader's text
// methods in order of layout fidelity and gating each result on
// readability before accepting it.
func (d *PDF) Text() (string, error) {
	if d.textOK {
		return d.text, nil
	}

	if d.reader != nil {
		for _, method := range []func() []string{d.pagesByRow, d.pagesByContent, d.pagesByPlainText} {
			pages := safePages(method)
			if isReadableText(pages) {
				return d.cache(pages), nil
			}
		}
	}

	pages, err := fitzPages(d.path)
	if err == nil && isReadableText(pages) {
		return d.cache(pages), nil
	}

	return "", &UnreadableError{Path: d.path, Err: d.openErr}
}

func (d *PDF) cache(pages []string) string {
	d.text = strings.Join(pages, "\n")
	d.textOK = true
	return d.text
}

// safePages guards an extraction method against library panics.
func safePages(method func() []string) (pages []string) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
		}
	}()
	return method()
}

func (d *PDF) pagesByRow() []string {
	var pages []string
	for i := 1; i <= d.reader.NumPage(); i++ {
		page := d.reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// pagesByContent reconstructs rows from positioned text items: group by
// rounded Y, emit top-to-bottom, order items left-to-right.
func (d *PDF) pagesByContent() []string {
	var pages []string
	for i := 1; i <= d.reader.NumPage(); i++ {
		page := d.reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := rowsFromItems(page.Content().Text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func (d *PDF) pagesByPlainText() []string {
	var pages []string
	for i := 1; i <= d.reader.NumPage(); i++ {
		page := d.reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// RegionText returns the text inside a page-relative rectangle, expanded by
// expand PDF units on each side. Region extraction needs positioned text,
// so it is only available through the primary reader.
func (d *PDF) RegionText(pageIndex int, r RelRect, expand float64) (text string, err error) {
	if d.reader == nil {
		return "", &UnreadableError{Path: d.path, Err: d.openErr}
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("region extraction crashed: %v", rec)
		}
	}()

	if pageIndex < 0 || pageIndex >= d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (document has %d pages)", pageIndex, d.reader.NumPage())
	}
	page := d.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", pageIndex)
	}

	x0, y0, x1, y1 := mediaBox(page)
	width, height := x1-x0, y1-y0

	// Relative coordinates use a top-left origin; PDF user space grows
	// upward, so the rectangle's vertical bounds flip.
	minX := x0 + r.X0*width - expand
	maxX := x0 + r.X1*width + expand
	maxY := y1 - r.Y0*height + expand
	minY := y1 - r.Y1*height - expand

	var inside []pdf.Text
	for _, t := range page.Content().Text {
		if t.X >= minX && t.X <= maxX && t.Y >= minY && t.Y <= maxY {
			inside = append(inside, t)
		}
	}
	return rowsFromItems(inside), nil
}

// mediaBox resolves the page's MediaBox, walking up the page tree when the
// entry is inherited. Defaults to US Letter when absent.
func mediaBox(page pdf.Page) (x0, y0, x1, y1 float64) {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); mb.Len() == 4 {
			return mb.Index(0).Float64(), mb.Index(1).Float64(),
				mb.Index(2).Float64(), mb.Index(3).Float64()
		}
		v = v.Key("Parent")
	}
	return 0, 0, 612, 792
}

// rowsFromItems rebuilds reading-order text from positioned items.
func rowsFromItems(items []pdf.Text) string {
	type item struct {
		x float64
		s string
	}
	rowMap := make(map[int][]item)
	for _, t := range items {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], item{x: t.X, s: t.S})
	}

	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		row := rowMap[y]
		sort.Slice(row, func(a, b int) bool { return row[a].x < row[b].x })
		var parts []string
		for _, it := range row {
			parts = append(parts, it.s)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// commonWords that appear in virtually every card statement. Extracted text
// containing none of them is treated as garbage.
var commonWords = []string{
	"statement", "card", "payment", "due", "total", "amount",
	"credit", "debit", "transaction", "date", "limit", "balance",
	"minimum", "period", "page", "summary",
}

// isReadableText checks that pages contain enough text, that it is mostly
// readable ASCII rather than decode garbage, and that at least one word a
// statement would contain is present.
func isReadableText(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of plain readable characters to total.
// Strict ASCII on purpose: identity-encoded fonts produce accented garbage
// that unicode.IsLetter would happily accept.
func textQuality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"%&@#!?+=*`, r) ||
				r == '₹' || r == '$' || r == '`' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
