// Package schema maps parsed statement records onto the wire contract.
// This is the single point where exact decimal amounts become JSON
// numbers; nothing downstream re-enters the extraction pipeline.
package schema

import (
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-parser/internal/parser"
)

// minorUnitPlaces is the rounding applied at the serialization boundary.
// INR, like most card currencies, carries two minor-unit digits.
const minorUnitPlaces = 2

// TransactionJSON is one transaction in the output schema.
type TransactionJSON struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

// ParseResponse is the JSON-serializable result of one extraction call.
// Absent optional fields are omitted, never rendered as zero values.
type ParseResponse struct {
	Issuer           string   `json:"issuer"`
	CardholderName   string   `json:"cardholder_name,omitempty"`
	MaskedCardNumber string   `json:"masked_card_number,omitempty"`
	CardLast4Digits  []string `json:"card_last4_digits"`

	StatementPeriod string `json:"statement_period,omitempty"`
	StatementDate   string `json:"statement_date,omitempty"`
	PaymentDueDate  string `json:"payment_due_date,omitempty"`

	TotalAmountDue   *float64 `json:"total_amount_due,omitempty"`
	MinimumAmountDue *float64 `json:"minimum_amount_due,omitempty"`

	CreditLimit          *float64 `json:"credit_limit,omitempty"`
	AvailableCreditLimit *float64 `json:"available_credit_limit,omitempty"`
	CashLimit            *float64 `json:"cash_limit,omitempty"`
	AvailableCash        *float64 `json:"available_cash,omitempty"`

	Transactions []TransactionJSON `json:"transactions"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// Assemble converts a parse result into the output contract.
func Assemble(result *parser.Result) *ParseResponse {
	record := result.Record
	resp := &ParseResponse{
		Issuer:           string(record.Issuer),
		CardholderName:   record.CardholderName,
		MaskedCardNumber: record.MaskedCardNumber,
		CardLast4Digits:  record.CardLast4Digits,

		StatementPeriod: record.StatementPeriod,
		StatementDate:   record.StatementDate,
		PaymentDueDate:  record.PaymentDueDate,

		TotalAmountDue:   boundaryFloat(record.TotalAmountDue),
		MinimumAmountDue: boundaryFloat(record.MinimumAmountDue),

		CreditLimit:          boundaryFloat(record.CreditLimit),
		AvailableCreditLimit: boundaryFloat(record.AvailableCreditLimit),
		CashLimit:            boundaryFloat(record.CashLimit),
		AvailableCash:        boundaryFloat(record.AvailableCash),

		Warnings: result.Warnings,
	}

	// Never nil: an empty list must serialize as [], not JSON null.
	if resp.CardLast4Digits == nil {
		resp.CardLast4Digits = []string{}
	}
	resp.Transactions = make([]TransactionJSON, 0, len(record.Transactions))
	for _, txn := range record.Transactions {
		resp.Transactions = append(resp.Transactions, TransactionJSON{
			Date:        txn.Date,
			Description: txn.Description,
			Amount:      txn.Amount.Round(minorUnitPlaces).InexactFloat64(),
			Type:        string(txn.Type),
		})
	}
	return resp
}

// boundaryFloat converts an optional exact decimal into the output numeric
// representation, rounding to the currency's minor-unit precision. Absent
// stays absent.
func boundaryFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.Round(minorUnitPlaces).InexactFloat64()
	return &f
}
