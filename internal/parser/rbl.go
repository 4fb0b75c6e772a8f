package parser

import (
	"regexp"
	"strings"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
	"github.com/cardlens/statement-parser/internal/scanner"
)

// RBLStrategy handles RBL Bank credit-card statements.
//
// RBL prints the statement period as "from to due-date" date triples and
// dates transactions as DD-Mon-YYYY. There is no reliable section header,
// so transaction lines are recognized across the whole document.
type RBLStrategy struct{}

var (
	rblMaskedCardPattern = regexp.MustCompile(`(\d{4}[\sXx*]{4,}\d{2,4})`)

	// "01/05/2024 to 31/05/2024 18/06/2024": the trailing date, when
	// present, is the payment due date.
	rblPeriodPattern = regexp.MustCompile(
		`(\d{2}/\d{2}/\d{4})\s+to\s+(\d{2}/\d{2}/\d{4})(?:\s+(\d{2}/\d{2}/\d{4}))?`)
	rblDueDatePattern = regexp.MustCompile(
		`(?i)Payment\s+Due\s+Date\s*(?:[:\-])?\s*(\d{2}/\d{2}/\d{4})`)

	rblTotalDuePattern = regexp.MustCompile(
		`(?i)Total\s+Amount\s+Due\s*(?:[:\-])?\s*(` + rupeeAmountClass + `[\d,]+(?:\.\d{1,2})?)`)
	rblMinimumDuePattern = regexp.MustCompile(
		`(?i)Minimum\s+Amount\s+Due\s*(?:[:\-])?\s*(` + rupeeAmountClass + `[\d,]+(?:\.\d{1,2})?)`)
	// Older layouts only print the total as the figure after the period
	// triple.
	rblTotalFallbackPattern = regexp.MustCompile(
		`to\s+\d{2}/\d{2}/\d{4}\s+\d{2}/\d{2}/\d{4}\s+([\d,]+\.\d{2})`)

	rblBoilerplateWords = []string{"bangalore", "contact", "page", "goods", "message", "offer"}
	rblHasDigitPattern  = regexp.MustCompile(`\d`)
)

var (
	rblLinePattern = regexp.MustCompile(
		`^(?P<date>\d{2}-[A-Za-z]{3}-\d{4})\s+(?P<desc>.+?)\s+(?P<amount>-?` +
			rupeeAmountClass + `[\d,]+(?:\.\d{1,2})?)\s*(?P<flag>(?i:Cr|Dr))?$`)

	rblPeriodLayouts = []string{normalize.LayoutDMYSlash}
	rblTxnLayouts    = []string{normalize.LayoutDMonDash}
)

func (s *RBLStrategy) Issuer() models.Issuer {
	return models.IssuerRBL
}

func (s *RBLStrategy) ExtractMetadata(doc document.Document) (*models.StatementRecord, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, err
	}

	record := &models.StatementRecord{
		CardLast4Digits: normalize.Last4(text),
		CardholderName:  rblCardholderName(splitLines(text)),
	}
	if m := rblMaskedCardPattern.FindStringSubmatch(text); m != nil {
		record.MaskedCardNumber = strings.Join(strings.Fields(m[1]), "")
	}

	if m := rblPeriodPattern.FindStringSubmatch(text); m != nil {
		record.StatementPeriod = isoRange(m[1], m[2], rblPeriodLayouts)
		if m[3] != "" {
			record.PaymentDueDate = isoDate(m[3], rblPeriodLayouts)
		}
	}
	if record.PaymentDueDate == "" {
		if m := rblDueDatePattern.FindStringSubmatch(text); m != nil {
			record.PaymentDueDate = isoDate(m[1], rblPeriodLayouts)
		}
	}

	if m := rblTotalDuePattern.FindStringSubmatch(text); m != nil {
		record.TotalAmountDue = summaryAmount(m[1], "")
	}
	if m := rblMinimumDuePattern.FindStringSubmatch(text); m != nil {
		record.MinimumAmountDue = summaryAmount(m[1], "")
	}
	if record.TotalAmountDue == nil {
		if m := rblTotalFallbackPattern.FindStringSubmatch(text); m != nil {
			record.TotalAmountDue = summaryAmount(m[1], "")
		}
	}

	return record, nil
}

// rblCardholderName returns the first short, digit-free line that is not
// obvious boilerplate.
func rblCardholderName(lines []string) string {
	for _, line := range lines {
		candidate := strings.TrimSpace(line)
		if candidate == "" || rblHasDigitPattern.MatchString(candidate) {
			continue
		}
		lowered := strings.ToLower(candidate)
		boilerplate := false
		for _, word := range rblBoilerplateWords {
			if strings.Contains(lowered, word) {
				boilerplate = true
				break
			}
		}
		if boilerplate {
			continue
		}
		if len(strings.Fields(candidate)) <= 4 {
			return candidate
		}
	}
	return ""
}

func (s *RBLStrategy) ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, false, err
	}
	cfg := scanner.Config{
		LinePatterns: []*regexp.Regexp{rblLinePattern},
		DateLayouts:  rblTxnLayouts,
	}
	txns, found := cfg.Scan(text)
	return txns, found, nil
}
