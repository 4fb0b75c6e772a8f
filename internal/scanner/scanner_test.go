package scanner

import (
	"regexp"
	"testing"

	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/normalize"
)

func testConfig() Config {
	return Config{
		StartMarkers: []*regexp.Regexp{regexp.MustCompile(`(?i)transaction details`)},
		EndMarkers:   []*regexp.Regexp{regexp.MustCompile(`(?i)end of statement`)},
		LinePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s*(?P<flag>Cr)?$`),
		},
		DateLayouts: []string{normalize.LayoutDMYSlash},
	}
}

func TestScanBasicSection(t *testing.T) {
	text := `Some header noise
TRANSACTION DETAILS
15/01/2024 AMAZON RETAIL 1,249.00
18/01/2024 PAYMENT RECEIVED 5,000.00 Cr
End of Statement
20/01/2024 AFTER SECTION 99.00`

	txns, found := testConfig().Scan(text)
	if !found {
		t.Fatal("expected section to be found")
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d: %v", len(txns), txns)
	}
	if txns[0].Date != "2024-01-15" || txns[0].Description != "AMAZON RETAIL" {
		t.Errorf("unexpected first transaction: %+v", txns[0])
	}
	if txns[0].Type != models.Debit {
		t.Errorf("expected debit, got %s", txns[0].Type)
	}
	if txns[1].Type != models.Credit {
		t.Errorf("expected credit for Cr-flagged line, got %s", txns[1].Type)
	}
	if !txns[1].Amount.Equal(txns[1].Amount.Abs()) {
		t.Errorf("credit amount must stay a magnitude, got %s", txns[1].Amount)
	}
}

func TestScanNoSection(t *testing.T) {
	text := `Just some summary text
Total Amount Due 1,500.00`

	txns, found := testConfig().Scan(text)
	if found {
		t.Error("expected no section")
	}
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %v", txns)
	}
}

// A start marker immediately followed by an end marker is a found but empty
// section.
func TestScanEmptySection(t *testing.T) {
	text := `TRANSACTION DETAILS
End of Statement`

	txns, found := testConfig().Scan(text)
	if !found {
		t.Error("expected section to be found")
	}
	if len(txns) != 0 {
		t.Errorf("expected empty section, got %v", txns)
	}
}

func TestScanContinuationLine(t *testing.T) {
	text := `TRANSACTION DETAILS
15/01/2024 AMAZON RETAIL 1,249.00
  INDIA PVT LTD MUMBAI
End of Statement`

	txns, _ := testConfig().Scan(text)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if want := "AMAZON RETAIL INDIA PVT LTD MUMBAI"; txns[0].Description != want {
		t.Errorf("got description %q, want %q", txns[0].Description, want)
	}
}

// A continuation line before any record matched is dropped silently.
func TestScanContinuationBeforeFirstRecord(t *testing.T) {
	text := `TRANSACTION DETAILS
column header noise
15/01/2024 AMAZON RETAIL 1,249.00
End of Statement`

	txns, _ := testConfig().Scan(text)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Description != "AMAZON RETAIL" {
		t.Errorf("header noise leaked into description: %q", txns[0].Description)
	}
}

// A line that matches a pattern but fails normalization drops only that
// record; it must not become continuation text either.
func TestScanDropsUnnormalizableRecord(t *testing.T) {
	text := `TRANSACTION DETAILS
99/99/2024 BAD DATE LINE 500.00
15/01/2024 GOOD LINE 1,249.00
End of Statement`

	txns, _ := testConfig().Scan(text)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d: %v", len(txns), txns)
	}
	if txns[0].Description != "GOOD LINE" {
		t.Errorf("dropped record leaked: %+v", txns[0])
	}
}

func TestScanMultiSection(t *testing.T) {
	cfg := testConfig()
	cfg.MultiSection = true
	text := `TRANSACTION DETAILS
15/01/2024 FIRST CARD SPEND 100.00
End of Statement
other content between blocks
TRANSACTION DETAILS
16/01/2024 SECOND CARD SPEND 200.00
End of Statement`

	txns, found := cfg.Scan(text)
	if !found {
		t.Fatal("expected sections to be found")
	}
	if len(txns) != 2 {
		t.Fatalf("expected transactions from both sections, got %d", len(txns))
	}
	if txns[1].Description != "SECOND CARD SPEND" {
		t.Errorf("second section not scanned: %+v", txns)
	}
}

// Without start markers the scan begins at line one, and non-matching
// lines never become continuation text: there is no section boundary, so
// appending them would glue the document's trailing boilerplate onto the
// last record.
func TestScanNoStartMarkers(t *testing.T) {
	cfg := testConfig()
	cfg.StartMarkers = nil
	text := `Statement summary header
15/01/2024 UNGATED SPEND 100.00
random interleaved text
16/01/2024 SECOND SPEND 200.00
random trailing text
more trailing boilerplate`

	txns, found := cfg.Scan(text)
	if !found {
		t.Error("markerless scan should report the section as found")
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d: %v", len(txns), txns)
	}
	if txns[0].Description != "UNGATED SPEND" {
		t.Errorf("interleaved text leaked into description: %q", txns[0].Description)
	}
	if txns[1].Description != "SECOND SPEND" {
		t.Errorf("trailing text leaked into description: %q", txns[1].Description)
	}
}

func TestScanPatternFallbackOrder(t *testing.T) {
	cfg := testConfig()
	cfg.LinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<flag>Cr)$`),
		regexp.MustCompile(`^(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})$`),
	}
	text := `TRANSACTION DETAILS
15/01/2024 REFUND 300.00 Cr
16/01/2024 GROCERY 450.00
End of Statement`

	txns, _ := cfg.Scan(text)
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].Type != models.Credit || txns[1].Type != models.Debit {
		t.Errorf("fallback order broke flag handling: %+v", txns)
	}
}
