package parser

import (
	"regexp"
	"strings"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
	"github.com/cardlens/statement-parser/internal/scanner"
)

// ICICIStrategy handles ICICI Bank credit-card statements.
//
// The cardholder name and the native masked card number share the lines
// below the "Customer Name" label. The billing summary is a three-column
// header whose values follow inline once whitespace is collapsed, with
// optional "|" column separators.
type ICICIStrategy struct{}

var (
	iciciMaskedCardPattern = regexp.MustCompile(`(\d{4}\s+[Xx*]{2,}\s+[Xx*]{2,}\s+\d{3,4})`)

	iciciSummaryPattern = regexp.MustCompile(
		`(?i)Statement\s+Date\s+Minimum\s+Amount\s+Due\s+Your\s+Total\s+Amount\s+Due\s+` +
			`(?P<statementDate>\d{2}/\d{2}/\d{4})\s*\|?\s*` +
			`(?P<minimum>[\d,]+\.\d{2})\s*\|?\s*` +
			`(?P<total>[\d,]+\.\d{2})`)
	iciciPeriodPattern = regexp.MustCompile(
		`(?i)Statement\s*Period\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`)
	iciciDueDatePattern = regexp.MustCompile(
		`(?i)Due\s+Date\s*[:\-]?\s*(\d{2}/\d{2}/\d{4})`)
)

var (
	iciciStartMarkers = []*regexp.Regexp{regexp.MustCompile(`Account Summary`)}
	iciciEndMarkers   = []*regexp.Regexp{
		regexp.MustCompile(`Schedule of charges`),
		regexp.MustCompile(`Important Message`),
		regexp.MustCompile(`\*{4} End of Statement \*{4}`),
	}
	iciciLinePattern = regexp.MustCompile(
		`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>-?[\d,]+\.\d{2})\s*(?P<flag>Dr|Cr)?$`)
)

var iciciDateLayouts = []string{normalize.LayoutDMYSlash}

func (s *ICICIStrategy) Issuer() models.Issuer {
	return models.IssuerICICI
}

func (s *ICICIStrategy) ExtractMetadata(doc document.Document) (*models.StatementRecord, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, err
	}

	record := &models.StatementRecord{
		CardLast4Digits: normalize.Last4(text),
	}
	record.CardholderName, record.MaskedCardNumber = iciciCustomerDetails(splitLines(text))

	if m := iciciSummaryPattern.FindStringSubmatch(cleanText(text)); m != nil {
		g := func(name string) string {
			return m[iciciSummaryPattern.SubexpIndex(name)]
		}
		record.StatementDate = isoDate(g("statementDate"), iciciDateLayouts)
		record.MinimumAmountDue = summaryAmount(g("minimum"), "")
		record.TotalAmountDue = summaryAmount(g("total"), "")
	}
	if m := iciciPeriodPattern.FindStringSubmatch(text); m != nil {
		record.StatementPeriod = isoRange(m[1], m[2], iciciDateLayouts)
	}
	if m := iciciDueDatePattern.FindStringSubmatch(text); m != nil {
		record.PaymentDueDate = isoDate(m[1], iciciDateLayouts)
	}

	return record, nil
}

// iciciCustomerDetails scans the lines following "Customer Name" for the
// holder's name and the masked card number, which may share one line.
func iciciCustomerDetails(lines []string) (name, maskedCard string) {
	for i, line := range lines {
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "customer name") {
			continue
		}
		limit := i + 5
		if limit > len(lines) {
			limit = len(lines)
		}
		for _, candidate := range lines[i+1 : limit] {
			candidate = strings.TrimSpace(candidate)
			if candidate == "" {
				continue
			}
			if m := iciciMaskedCardPattern.FindStringSubmatchIndex(candidate); m != nil {
				maskedCard = candidate[m[2]:m[3]]
				name = strings.TrimSpace(candidate[:m[2]])
				if name == "" {
					name = strings.TrimSpace(strings.Replace(candidate, maskedCard, "", 1))
				}
			} else {
				name = candidate
			}
			break
		}
		if name != "" || maskedCard != "" {
			break
		}
	}
	return name, maskedCard
}

func (s *ICICIStrategy) ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, false, err
	}
	cfg := scanner.Config{
		StartMarkers: iciciStartMarkers,
		EndMarkers:   iciciEndMarkers,
		LinePatterns: []*regexp.Regexp{iciciLinePattern},
		DateLayouts:  iciciDateLayouts,
	}
	txns, found := cfg.Scan(text)
	return txns, found, nil
}
