// Package normalize holds the pure field-normalization functions shared by
// every issuer strategy: monetary amounts, calendar dates, and masked-card
// last-4 extraction. Nothing here touches a document or keeps state.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountError reports a raw string that could not be normalized into a
// monetary value. It is a field-level error: callers omit the field and
// continue.
type AmountError struct {
	Raw    string
	Reason string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("cannot normalize amount %q: %s", e.Raw, e.Reason)
}

var (
	// Cr/Dr markers appear either as a suffix ("1,234.50 Cr") or, on some
	// layouts, before the figure.
	suffixFlagPattern = regexp.MustCompile(`(?i)\s*(cr|dr)\.?\s*$`)
	prefixFlagPattern = regexp.MustCompile(`(?i)^(cr|dr)\.?\s+`)
	// The numeric core: optional sign, digit groups with thousands commas,
	// optional 1-2 decimal places.
	amountCorePattern = regexp.MustCompile(`-?[\d][\d,]*(?:\.\d{1,2})?`)
	// "Rs" / "Rs." currency prefix.
	rsTokenPattern = regexp.MustCompile(`(?i)\brs\.?`)
)

// Amount converts a raw monetary string into an exact decimal magnitude and
// a credit flag. Currency decorations (₹, Rs, backtick, commas, stray
// spaces) are stripped; a trailing or leading "Cr" marker, or a negative
// sign, classifies the value as credit. The returned magnitude is never
// negative. Input with no decimal digits yields an *AmountError.
func Amount(raw string) (decimal.Decimal, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false, &AmountError{Raw: raw, Reason: "empty"}
	}

	credit := false
	if m := suffixFlagPattern.FindStringSubmatch(s); m != nil {
		credit = strings.EqualFold(m[1], "cr")
		s = suffixFlagPattern.ReplaceAllString(s, "")
	} else if m := prefixFlagPattern.FindStringSubmatch(s); m != nil {
		credit = strings.EqualFold(m[1], "cr")
		s = prefixFlagPattern.ReplaceAllString(s, "")
	}

	// Drop currency symbols and separators before locating the figure.
	s = strings.NewReplacer("₹", "", "`", "", "£", "", "$", "", " ", " ").Replace(s)
	s = rsTokenPattern.ReplaceAllString(s, "")

	core := amountCorePattern.FindString(s)
	if core == "" {
		return decimal.Zero, false, &AmountError{Raw: raw, Reason: "no digits"}
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(core, ",", ""))
	if err != nil {
		return decimal.Zero, false, &AmountError{Raw: raw, Reason: err.Error()}
	}

	if d.IsNegative() {
		credit = true
		d = d.Abs()
	}
	return d, credit, nil
}
