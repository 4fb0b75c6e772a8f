package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
	"github.com/cardlens/statement-parser/internal/scanner"
)

// IDFCStrategy handles IDFC FIRST Bank credit-card statements.
//
// IDFC prints summary labels on one line with the value on the next, uses
// rupee-decorated amounts, leaves (cid:NN) glyph artifacts in extracted
// text, and repeats its "YOUR TRANSACTIONS" block once per card on the
// statement.
type IDFCStrategy struct{}

var (
	idfcCardLinePattern   = regexp.MustCompile(`\d{4}[Xx*]{2,}\d{2,}`)
	idfcMaskedCardPattern = regexp.MustCompile(`(\d{4}[\sXx*]{4,}\d{2,4})`)
	idfcMaskedAltPattern  = regexp.MustCompile(`([Xx*]{2,}\s*\d{3,4})`)

	idfcPeriodPattern    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`)
	idfcPeriodAltPattern = regexp.MustCompile(
		`(?is)From\s*[:\-]?\s*(\d{2}/\d{2}/\d{4}).*?To\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})`)

	// Labelled dates print as "Month D, YYYY" or "DD/MM/YYYY" on the
	// following line.
	idfcStatementDatePattern = regexp.MustCompile(
		`(?i)Statement\s+Date\s*\n\s*([A-Za-z]+\s+\d{1,2},\s*\d{4}|\d{2}/\d{2}/\d{4})`)
	idfcDueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s*\n\s*([A-Za-z]+\s+\d{1,2},\s*\d{4}|\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s*[:\-]?\s*([A-Za-z]+\s+\d{1,2},\s*\d{4}|\d{2}/\d{2}/\d{4})`),
	}
)

var (
	idfcStartMarkers = []*regexp.Regexp{regexp.MustCompile(`YOUR TRANSACTIONS`)}
	idfcEndMarkers   = []*regexp.Regexp{
		regexp.MustCompile(`REWARDS SUMMARY`),
		regexp.MustCompile(`SPECIAL BENEFITS`),
		regexp.MustCompile(`IMPORTANT INFORMATION`),
		regexp.MustCompile(`REWARDS`),
	}
	idfcLinePattern = regexp.MustCompile(
		`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>-?` +
			rupeeAmountClass + `[\d,]+(?:\.\d{1,2})?)\s*(?P<flag>(?i:CR|DR))?$`)
)

var idfcDateLayouts = []string{
	normalize.LayoutDMYSlash,
	normalize.LayoutMonthDY,
	normalize.LayoutMonDY,
}

func (s *IDFCStrategy) Issuer() models.Issuer {
	return models.IssuerIDFC
}

func (s *IDFCStrategy) ExtractMetadata(doc document.Document) (*models.StatementRecord, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, err
	}
	lines := splitLines(text)

	record := &models.StatementRecord{
		CardLast4Digits:  normalize.Last4(text),
		CardholderName:   idfcCardholderName(lines),
		MaskedCardNumber: idfcMaskedCard(text),
	}

	if m := idfcPeriodPattern.FindStringSubmatch(text); m != nil {
		record.StatementPeriod = isoRange(m[1], m[2], idfcDateLayouts)
	} else if m := idfcPeriodAltPattern.FindStringSubmatch(text); m != nil {
		record.StatementPeriod = isoRange(m[1], m[2], idfcDateLayouts)
	}

	if m := idfcStatementDatePattern.FindStringSubmatch(text); m != nil {
		record.StatementDate = isoDate(stripArtifacts(m[1]), idfcDateLayouts)
	}
	for _, pat := range idfcDueDatePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			record.PaymentDueDate = isoDate(stripArtifacts(m[1]), idfcDateLayouts)
			break
		}
	}

	record.TotalAmountDue = idfcLabelledAmount("Total\\s+Amount\\s+Due", text)
	record.MinimumAmountDue = idfcLabelledAmount("Minimum\\s+Amount\\s+Due", text)
	record.CreditLimit = idfcLabelledAmount("Credit\\s+Limit", text)
	record.AvailableCreditLimit = idfcLabelledAmount("Available\\s+Credit\\s+Limit", text)
	record.CashLimit = idfcLabelledAmount("Cash\\s+Limit", text)
	record.AvailableCash = idfcLabelledAmount("Available\\s+Cash", text)

	return record, nil
}

// idfcLabelledAmount finds a label-on-one-line, value-on-the-next summary
// figure.
func idfcLabelledAmount(label, text string) *decimal.Decimal {
	pat := regexp.MustCompile(
		`(?i)` + label + `\s*(?:[:\-])?\s*\n\s*(` + rupeeAmountClass + `[\d,]+(?:\.\d{1,2})?)`)
	m := pat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return summaryAmount(m[1], "")
}

// idfcCardholderName looks for the name just above the masked-card line,
// falling back to the first plausible line of the header.
func idfcCardholderName(lines []string) string {
	for i, line := range lines {
		if !idfcCardLinePattern.MatchString(strings.ReplaceAll(line, " ", "")) {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-5; j-- {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" || strings.Contains(candidate, ":") {
				continue
			}
			if idfcCardLinePattern.MatchString(strings.ReplaceAll(candidate, " ", "")) {
				continue
			}
			return candidate
		}
		break
	}

	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		candidate := strings.TrimSpace(line)
		if candidate == "" || strings.Contains(candidate, ":") {
			continue
		}
		if strings.Contains(strings.ToLower(candidate), "credit card statement") {
			continue
		}
		if idfcPeriodPattern.MatchString(candidate) {
			continue
		}
		if strings.ContainsFunc(candidate, func(r rune) bool {
			return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		}) {
			return candidate
		}
	}
	return ""
}

func idfcMaskedCard(text string) string {
	if m := idfcMaskedCardPattern.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), "")
	}
	if m := idfcMaskedAltPattern.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), "")
	}
	return ""
}

func (s *IDFCStrategy) ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, false, err
	}
	cfg := scanner.Config{
		StartMarkers: idfcStartMarkers,
		EndMarkers:   idfcEndMarkers,
		LinePatterns: []*regexp.Regexp{idfcLinePattern},
		DateLayouts:  idfcDateLayouts,
		MultiSection: true,
	}
	txns, found := cfg.Scan(text)
	return txns, found, nil
}
