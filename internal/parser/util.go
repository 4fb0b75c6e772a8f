package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-parser/internal/normalize"
)

var (
	multiSpacePattern = regexp.MustCompile(`\s+`)
	cidPattern        = regexp.MustCompile(`\(cid:[^)]+\)`)
)

// rupeeAmountClass matches the currency decorations some issuers print
// before a figure: the rupee sign, "Rs", or a backtick stand-in for the
// currency glyph.
const rupeeAmountClass = "[₹rRs\x60.\\s]*"

// cleanText collapses all whitespace runs to single spaces and re-attaches
// punctuation that extraction split off ("FOO ." → "FOO.").
func cleanText(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " .", ".")
	s = strings.ReplaceAll(s, " ,", ",")
	return strings.TrimSpace(s)
}

// stripArtifacts removes (cid:NN) glyph artifacts some extractors leave in
// place of unmapped characters.
func stripArtifacts(s string) string {
	return strings.TrimSpace(cidPattern.ReplaceAllString(s, ""))
}

// summaryAmount normalizes a billing-summary figure. A Cr flag (or an
// explicit negative) yields a negative value: a credit balance on a
// summary field means the holder is owed money. Returns nil, leaving the
// field absent, when the raw text cannot be normalized.
func summaryAmount(raw string, flag string) *decimal.Decimal {
	if flag != "" {
		raw = raw + " " + flag
	}
	d, credit, err := normalize.Amount(raw)
	if err != nil {
		return nil
	}
	if credit {
		d = d.Neg()
	}
	return &d
}

// isoDate normalizes a raw date, returning "" (absent) on failure.
func isoDate(raw string, layouts []string) string {
	s, err := normalize.DateToISO(raw, layouts)
	if err != nil {
		return ""
	}
	return s
}

// isoRange normalizes a start/end date pair, returning "" on failure.
func isoRange(start, end string, layouts []string) string {
	s, err := normalize.RangeToISO(start, end, layouts)
	if err != nil {
		return ""
	}
	return s
}

// splitLines returns the document's lines with surrounding whitespace kept
// for the callers that need positional heuristics.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
