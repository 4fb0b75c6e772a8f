package parser

import (
	"regexp"
	"strings"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
	"github.com/cardlens/statement-parser/internal/scanner"
)

// AxisStrategy handles AXIS Bank credit-card statements.
//
// AXIS layouts are positionally unstable but carry stable textual anchors:
// the cardholder name follows the product banner line, and the billing
// summary values sit on the line after the "Total Payment Due" header.
// Amounts carry Dr/Cr flags.
type AxisStrategy struct{}

const axisBanner = "MY ZONE CREDIT CARD STATEMENT"

// The header line is followed by total due, minimum due, statement period,
// payment due date and (on newer versions) the generated date.
var axisSummaryPattern = regexp.MustCompile(
	`(?i)Total\s+Payment\s+Due[^\n]*\n` +
		`(?P<total>[\d,]+\.\d{2})\s*(?P<totalFlag>Dr|Cr)?\s+` +
		`(?P<minimum>[\d,]+\.\d{2})\s*(?P<minFlag>Dr|Cr)?\s+` +
		`(?P<periodStart>\d{2}/\d{2}/\d{4})\s*-\s*(?P<periodEnd>\d{2}/\d{2}/\d{4})\s+` +
		`(?P<due>\d{2}/\d{2}/\d{4})` +
		`(?:\s+(?P<generated>\d{2}/\d{2}/\d{4}))?`)

var (
	axisStartMarkers = []*regexp.Regexp{regexp.MustCompile(`Account Summary`)}
	axisEndMarkers   = []*regexp.Regexp{regexp.MustCompile(`\*{4} End of Statement \*{4}`)}
	axisLinePattern  = regexp.MustCompile(
		`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>-?[\d,]+\.\d{2})\s*(?P<flag>Dr|Cr)?$`)
)

var axisDateLayouts = []string{normalize.LayoutDMYSlash}

func (s *AxisStrategy) Issuer() models.Issuer {
	return models.IssuerAxis
}

func (s *AxisStrategy) ExtractMetadata(doc document.Document) (*models.StatementRecord, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, err
	}

	record := &models.StatementRecord{
		CardLast4Digits: normalize.Last4(text),
		CardholderName:  axisCardholderName(splitLines(text)),
	}

	if m := axisSummaryPattern.FindStringSubmatch(text); m != nil {
		g := func(name string) string {
			return strings.TrimSpace(m[axisSummaryPattern.SubexpIndex(name)])
		}
		record.StatementPeriod = isoRange(g("periodStart"), g("periodEnd"), axisDateLayouts)
		record.PaymentDueDate = isoDate(g("due"), axisDateLayouts)
		if generated := g("generated"); generated != "" {
			record.StatementDate = isoDate(generated, axisDateLayouts)
		}
		record.TotalAmountDue = summaryAmount(g("total"), g("totalFlag"))
		record.MinimumAmountDue = summaryAmount(g("minimum"), g("minFlag"))
	}

	return record, nil
}

// axisCardholderName returns the first non-blank line after the product
// banner.
func axisCardholderName(lines []string) string {
	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), axisBanner) {
			continue
		}
		for _, candidate := range lines[i+1:] {
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				return candidate
			}
		}
		break
	}
	return ""
}

func (s *AxisStrategy) ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, false, err
	}
	cfg := scanner.Config{
		StartMarkers: axisStartMarkers,
		EndMarkers:   axisEndMarkers,
		LinePatterns: []*regexp.Regexp{axisLinePattern},
		DateLayouts:  axisDateLayouts,
	}
	txns, found := cfg.Scan(text)
	return txns, found, nil
}
