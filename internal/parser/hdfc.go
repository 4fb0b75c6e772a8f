package parser

import (
	"regexp"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
	"github.com/cardlens/statement-parser/internal/scanner"
)

// HDFCStrategy handles HDFC credit-card statements.
//
// HDFC layouts keep the cardholder block and the billing summary at fixed
// page positions, so metadata comes from region-bounded extraction on the
// first page. Transaction lines use DD/MM/YYYY dates with a trailing "Cr"
// marker on credits and appear throughout the document, so the scan runs
// ungated.
type HDFCStrategy struct{}

// First-page blocks, in page-relative coordinates.
var (
	hdfcDetailsBlock = document.RelRect{X0: 0.03, Y0: 0.05, X1: 0.40, Y1: 0.18}
	hdfcSummaryBlock = document.RelRect{X0: 0.40, Y0: 0.06, X1: 0.97, Y1: 0.39}
)

const hdfcBlockExpand = 4

var (
	hdfcNamePattern = regexp.MustCompile(
		`(?i)Name\s*[:\-]?\s*([A-Za-z\s\.]+?)\s+(?:Email|Mobile|Phone)\b`)
	hdfcStatementDatePattern = regexp.MustCompile(
		`(?i)Statement\s*Date\s*[:\-]?\s*(\d{1,2}/\d{1,2}/\d{4})`)

	// The summary header is followed by its three values, date first or
	// date last depending on the statement version.
	hdfcSummaryDateFirst = regexp.MustCompile(
		`(?i)Payment\s+Due\s+Date\s+Total\s+Dues\s+Minimum\s+Amount\s+Due\s+` +
			`(\d{1,2}/\d{1,2}/\d{4})\s+([\d,]+(?:\.\d{2})?)\s+([\d,]+(?:\.\d{2})?)`)
	hdfcSummaryDateLast = regexp.MustCompile(
		`(?i)Payment\s+Due\s+Date\s+Total\s+Dues\s+Minimum\s+Amount\s+Due\s+` +
			`([\d,]+(?:\.\d{2})?)\s+([\d,]+(?:\.\d{2})?)\s+(\d{1,2}/\d{1,2}/\d{4})`)

	hdfcLinePattern = regexp.MustCompile(
		`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>-?[\d,]+\.\d{2})\s*(?P<flag>Cr)?$`)
)

var hdfcDateLayouts = []string{normalize.LayoutDMYSlash}

func (s *HDFCStrategy) Issuer() models.Issuer {
	return models.IssuerHDFC
}

func (s *HDFCStrategy) ExtractMetadata(doc document.Document) (*models.StatementRecord, error) {
	fullText, err := doc.Text()
	if err != nil {
		return nil, err
	}

	record := &models.StatementRecord{
		CardLast4Digits: normalize.Last4(fullText),
	}

	// Region failures leave the summary fields absent; the document
	// itself is readable, so extraction continues.
	if details, err := doc.RegionText(0, hdfcDetailsBlock, hdfcBlockExpand); err == nil {
		if m := hdfcNamePattern.FindStringSubmatch(cleanText(details)); m != nil {
			record.CardholderName = cleanText(m[1])
		}
	}

	summary, err := doc.RegionText(0, hdfcSummaryBlock, hdfcBlockExpand)
	if err != nil {
		return record, nil
	}
	summaryClean := cleanText(summary)

	if m := hdfcStatementDatePattern.FindStringSubmatch(summaryClean); m != nil {
		record.StatementDate = isoDate(m[1], hdfcDateLayouts)
	}

	var dueDate, totalDues, minimumDue string
	if m := hdfcSummaryDateFirst.FindStringSubmatch(summaryClean); m != nil {
		dueDate, totalDues, minimumDue = m[1], m[2], m[3]
	} else if m := hdfcSummaryDateLast.FindStringSubmatch(summaryClean); m != nil {
		totalDues, minimumDue, dueDate = m[1], m[2], m[3]
	}
	if dueDate != "" {
		record.PaymentDueDate = isoDate(dueDate, hdfcDateLayouts)
	}
	if totalDues != "" {
		record.TotalAmountDue = summaryAmount(totalDues, "")
	}
	if minimumDue != "" {
		record.MinimumAmountDue = summaryAmount(minimumDue, "")
	}

	return record, nil
}

func (s *HDFCStrategy) ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, false, err
	}
	cfg := scanner.Config{
		LinePatterns: []*regexp.Regexp{hdfcLinePattern},
		DateLayouts:  hdfcDateLayouts,
	}
	txns, found := cfg.Scan(text)
	return txns, found, nil
}
