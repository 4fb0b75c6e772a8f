// Package scanner locates the transaction section of a statement's text and
// turns its lines into transaction records. It is a small 3-state machine:
// seeking the section start, consuming section lines, done. Issuers plug in
// their own start/end markers and line patterns; the scanner itself knows
// nothing about any issuer.
package scanner

import (
	"regexp"
	"strings"

	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
)

// Config carries the issuer-supplied grammar for one scan.
//
// LinePatterns are tried per line in fallback order and must use the named
// groups "date", "desc" and "amount", plus an optional "flag" group for a
// Cr/Dr marker. An empty StartMarkers list means the section begins at the
// first line of input; such markerless scans also skip continuation-line
// handling, since without a section boundary every trailing line of the
// document would bleed into the last record's description.
type Config struct {
	StartMarkers []*regexp.Regexp
	EndMarkers   []*regexp.Regexp
	LinePatterns []*regexp.Regexp
	DateLayouts  []string

	// MultiSection re-arms start seeking after an end marker, for layouts
	// that repeat the transaction block (one per card).
	MultiSection bool
}

type state int

const (
	seekingStart state = iota
	inSection
	done
)

// Scan walks the text line by line and returns the transactions found, in
// document order, plus whether a transaction section was entered at all.
// A false second return is a soft signal ("no transaction section found"),
// not an error. Lines inside the section that match no pattern and no
// marker are appended to the previous record's description.
func (c Config) Scan(text string) ([]models.Transaction, bool) {
	var txns []models.Transaction
	sectionFound := false

	st := seekingStart
	gated := len(c.StartMarkers) > 0
	if !gated {
		st = inSection
		sectionFound = true
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if st == done {
			break
		}

		if st == seekingStart {
			if matchesAny(c.StartMarkers, line) {
				st = inSection
				sectionFound = true
			}
			continue
		}

		// In section.
		if matchesAny(c.EndMarkers, line) {
			if c.MultiSection {
				st = seekingStart
			} else {
				st = done
			}
			continue
		}

		txn, matched, ok := c.matchLine(line)
		if matched {
			// A matched line whose date or amount failed normalization
			// drops that single record, not the whole scan.
			if ok {
				txns = append(txns, txn)
			}
			continue
		}

		// Continuation text for a multi-line description. Only gated
		// scans know where the section ends, so only they may append.
		if gated && len(txns) > 0 {
			last := &txns[len(txns)-1]
			last.Description = collapseSpaces(last.Description + " " + line)
		}
	}

	return txns, sectionFound
}

// matchLine tries the line patterns in order. The second return reports
// whether any pattern matched; the third whether the matched line survived
// date/amount normalization.
func (c Config) matchLine(line string) (models.Transaction, bool, bool) {
	for _, pat := range c.LinePatterns {
		m := pat.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := normalize.DateToISO(group(pat, m, "date"), c.DateLayouts)
		if err != nil {
			return models.Transaction{}, true, false
		}

		rawAmount := group(pat, m, "amount")
		if flag := group(pat, m, "flag"); flag != "" {
			rawAmount += " " + flag
		}
		amount, credit, err := normalize.Amount(rawAmount)
		if err != nil {
			return models.Transaction{}, true, false
		}

		txnType := models.Debit
		if credit {
			txnType = models.Credit
		}
		return models.Transaction{
			Date:        date,
			Description: collapseSpaces(group(pat, m, "desc")),
			Amount:      amount,
			Type:        txnType,
		}, true, true
	}
	return models.Transaction{}, false, false
}

func matchesAny(markers []*regexp.Regexp, line string) bool {
	for _, m := range markers {
		if m.MatchString(line) {
			return true
		}
	}
	return false
}

func group(pat *regexp.Regexp, m []string, name string) string {
	idx := pat.SubexpIndex(name)
	if idx < 0 || idx >= len(m) {
		return ""
	}
	return strings.TrimSpace(m[idx])
}

var multiSpacePattern = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}
