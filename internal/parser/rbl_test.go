package parser

import (
	"testing"

	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
)

func rblFixture() *document.StaticDocument {
	return &document.StaticDocument{
		Pages: []string{
			`RBL Bank Credit Card Statement 05/2024
AMIT DESAI
Card Number: 5264 XXXX XXXX 0921
Statement Period Payment Due Date
01/05/2024 to 31/05/2024 18/06/2024
Total Amount Due: 12,840.30
Minimum Amount Due: 645.00
02-May-2024 MYNTRA DESIGNS GURGAON 3,150.00
15-May-2024 NEFT PAYMENT RECEIVED 8,000.00 Cr
26-May-2024 DMART AVENUE SUPERMARTS 1,940.30`,
		},
	}
}

func TestRBLMetadata(t *testing.T) {
	record, err := (&RBLStrategy{}).ExtractMetadata(rblFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.CardholderName != "AMIT DESAI" {
		t.Errorf("cardholder name = %q", record.CardholderName)
	}
	if record.MaskedCardNumber != "5264XXXXXXXX0921" {
		t.Errorf("masked card = %q", record.MaskedCardNumber)
	}
	if len(record.CardLast4Digits) != 1 || record.CardLast4Digits[0] != "0921" {
		t.Errorf("card last4 = %v", record.CardLast4Digits)
	}
	if record.StatementPeriod != "2024-05-01/2024-05-31" {
		t.Errorf("statement period = %q", record.StatementPeriod)
	}
	if record.PaymentDueDate != "2024-06-18" {
		t.Errorf("payment due date = %q", record.PaymentDueDate)
	}
	assertAmount(t, "total due", record.TotalAmountDue, "12840.30")
	assertAmount(t, "minimum due", record.MinimumAmountDue, "645.00")
}

// Without a trailing date on the period triple the due date comes from its
// own labelled line.
func TestRBLDueDateFallback(t *testing.T) {
	doc := &document.StaticDocument{
		Pages: []string{
			`Statement 05/2024
AMIT DESAI
01/05/2024 to 31/05/2024
Payment Due Date: 18/06/2024`,
		},
	}
	record, err := (&RBLStrategy{}).ExtractMetadata(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.PaymentDueDate != "2024-06-18" {
		t.Errorf("payment due date = %q", record.PaymentDueDate)
	}
}

// Older layouts print the total as the bare figure after the period triple.
func TestRBLTotalDueFallback(t *testing.T) {
	doc := &document.StaticDocument{
		Pages: []string{
			`Statement 05/2024
01/05/2024 to 31/05/2024 18/06/2024 12,840.30`,
		},
	}
	record, err := (&RBLStrategy{}).ExtractMetadata(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "total due", record.TotalAmountDue, "12840.30")
}

func TestRBLTransactions(t *testing.T) {
	txns, found, err := (&RBLStrategy{}).ExtractTransactions(rblFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Error("markerless scan must report the section as found")
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d: %v", len(txns), txns)
	}
	if txns[0].Date != "2024-05-02" || txns[0].Description != "MYNTRA DESIGNS GURGAON" {
		t.Errorf("unexpected first transaction: %+v", txns[0])
	}
	if txns[1].Type != models.Credit {
		t.Errorf("Cr-flagged payment must be a credit: %+v", txns[1])
	}
	if txns[2].Type != models.Debit {
		t.Errorf("unflagged line must default to debit: %+v", txns[2])
	}
}
