package document

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// fitzPages extracts per-page text through MuPDF. Fallback path for PDFs
// whose fonts or streams the primary reader cannot decode.
func fitzPages(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF with mupdf: %w", err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("mupdf produced no text from %s", path)
	}
	return pages, nil
}
