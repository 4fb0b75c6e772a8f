package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Issuer identifies the institution that produced a statement's format.
type Issuer string

const (
	IssuerAxis  Issuer = "axis"
	IssuerHDFC  Issuer = "hdfc"
	IssuerICICI Issuer = "icici"
	IssuerIDFC  Issuer = "idfc"
	IssuerRBL   Issuer = "rbl"
)

// Issuers lists every supported issuer in a stable order.
var Issuers = []Issuer{IssuerAxis, IssuerHDFC, IssuerICICI, IssuerIDFC, IssuerRBL}

// UnsupportedIssuerError reports an issuer code that is not registered.
// It is returned before any document access is attempted.
type UnsupportedIssuerError struct {
	Code string
}

func (e *UnsupportedIssuerError) Error() string {
	return fmt.Sprintf("unsupported issuer: %q", e.Code)
}

// ParseIssuer resolves an issuer code case-insensitively.
func ParseIssuer(code string) (Issuer, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "axis":
		return IssuerAxis, nil
	case "hdfc":
		return IssuerHDFC, nil
	case "icici":
		return IssuerICICI, nil
	case "idfc":
		return IssuerIDFC, nil
	case "rbl":
		return IssuerRBL, nil
	default:
		return "", &UnsupportedIssuerError{Code: code}
	}
}

// TransactionType classifies a transaction as money out or money in.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Transaction is a single statement line item. Amount is always a
// non-negative magnitude; the direction lives in Type. Date is an
// ISO 8601 string, normalized exactly once at extraction time.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
}

// StatementRecord is the normalized output of one extraction call.
// Optional string fields are absent when empty; optional monetary
// fields are absent when nil and are never defaulted to zero.
// Dates and date ranges are ISO 8601 strings; a range is rendered as
// "start/end". Transactions preserve document order.
type StatementRecord struct {
	Issuer           Issuer   `json:"issuer"`
	CardholderName   string   `json:"cardholder_name,omitempty"`
	MaskedCardNumber string   `json:"masked_card_number,omitempty"`
	CardLast4Digits  []string `json:"card_last4_digits"`

	StatementPeriod string `json:"statement_period,omitempty"`
	StatementDate   string `json:"statement_date,omitempty"`
	PaymentDueDate  string `json:"payment_due_date,omitempty"`

	TotalAmountDue   *decimal.Decimal `json:"total_amount_due,omitempty"`
	MinimumAmountDue *decimal.Decimal `json:"minimum_amount_due,omitempty"`

	// Populated only by issuers whose statements expose them.
	CreditLimit          *decimal.Decimal `json:"credit_limit,omitempty"`
	AvailableCreditLimit *decimal.Decimal `json:"available_credit_limit,omitempty"`
	CashLimit            *decimal.Decimal `json:"cash_limit,omitempty"`
	AvailableCash        *decimal.Decimal `json:"available_cash,omitempty"`

	Transactions []Transaction `json:"transactions"`
}
