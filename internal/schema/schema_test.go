package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/parser"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAssemble(t *testing.T) {
	result := &parser.Result{
		Record: &models.StatementRecord{
			Issuer:          models.IssuerHDFC,
			CardholderName:  "RAHUL SHARMA",
			CardLast4Digits: []string{"1234"},
			StatementDate:   "2024-06-20",
			PaymentDueDate:  "2024-07-10",
			TotalAmountDue:  decPtr("45320.505"),
			Transactions: []models.Transaction{
				{
					Date:        "2024-06-15",
					Description: "AMAZON PAY INDIA",
					Amount:      decimal.RequireFromString("1249.00"),
					Type:        models.Debit,
				},
			},
		},
	}

	resp := Assemble(result)
	if resp.Issuer != "hdfc" {
		t.Errorf("issuer = %q", resp.Issuer)
	}
	if resp.TotalAmountDue == nil || *resp.TotalAmountDue != 45320.51 {
		t.Errorf("total due = %v, want rounded 45320.51", resp.TotalAmountDue)
	}
	if resp.MinimumAmountDue != nil {
		t.Errorf("absent minimum due must stay absent, got %v", *resp.MinimumAmountDue)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("transactions = %v", resp.Transactions)
	}
	if resp.Transactions[0].Amount != 1249.00 || resp.Transactions[0].Type != "debit" {
		t.Errorf("unexpected transaction: %+v", resp.Transactions[0])
	}
}

// Empty collections serialize as [] and absent optionals disappear from the
// JSON entirely.
func TestAssembleEmptyRecordJSON(t *testing.T) {
	result := &parser.Result{
		Record:   &models.StatementRecord{Issuer: models.IssuerRBL},
		Warnings: []string{"no transaction section found"},
	}

	out, err := json.Marshal(Assemble(result))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `"card_last4_digits":[]`) {
		t.Errorf("last4 must serialize as [], got %s", s)
	}
	if !strings.Contains(s, `"transactions":[]`) {
		t.Errorf("transactions must serialize as [], got %s", s)
	}
	if strings.Contains(s, "total_amount_due") {
		t.Errorf("absent total due leaked into JSON: %s", s)
	}
	if strings.Contains(s, "cardholder_name") {
		t.Errorf("absent cardholder name leaked into JSON: %s", s)
	}
	if !strings.Contains(s, `"warnings":["no transaction section found"]`) {
		t.Errorf("warnings missing from JSON: %s", s)
	}
}

// Money crosses the boundary with at most two decimal places.
func TestBoundaryRounding(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"100.1", 100.1},
		{"100.125", 100.13},
		{"-50.005", -50.01},
	}
	for _, tt := range tests {
		got := boundaryFloat(decPtr(tt.in))
		if got == nil || *got != tt.want {
			t.Errorf("boundaryFloat(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if boundaryFloat(nil) != nil {
		t.Error("nil input must stay nil")
	}
}
