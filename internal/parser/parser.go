// Package parser holds the per-issuer extraction strategies and the
// dispatcher that selects one by issuer code. Every strategy implements the
// same two capabilities, metadata extraction and transaction extraction,
// and composes them into one StatementRecord.
package parser

import (
	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
)

// Strategy is the shared capability set implemented once per issuer.
type Strategy interface {
	// Issuer returns the issuer this strategy handles.
	Issuer() models.Issuer
	// ExtractMetadata recovers identity and billing-summary fields. A
	// field that cannot be recovered is left absent, never defaulted;
	// only an unreadable document is an error.
	ExtractMetadata(doc document.Document) (*models.StatementRecord, error)
	// ExtractTransactions runs the transaction scanner with the issuer's
	// grammar. The bool reports whether a transaction section was found;
	// a missing section is not an error.
	ExtractTransactions(doc document.Document) ([]models.Transaction, bool, error)
}

// New returns the strategy for the given issuer.
func New(issuer models.Issuer) (Strategy, error) {
	switch issuer {
	case models.IssuerAxis:
		return &AxisStrategy{}, nil
	case models.IssuerHDFC:
		return &HDFCStrategy{}, nil
	case models.IssuerICICI:
		return &ICICIStrategy{}, nil
	case models.IssuerIDFC:
		return &IDFCStrategy{}, nil
	case models.IssuerRBL:
		return &RBLStrategy{}, nil
	default:
		return nil, &models.UnsupportedIssuerError{Code: string(issuer)}
	}
}

// Result is a parsed statement plus any soft warnings raised along the way.
type Result struct {
	Record   *models.StatementRecord
	Warnings []string
}

// Parse resolves the issuer code, runs its strategy against the document
// and assembles the final record. Unknown codes fail before any document
// access. Field-level extraction failures never surface here; only
// dispatch errors and unreadable documents do.
func Parse(issuerCode string, doc document.Document) (*Result, error) {
	issuer, err := models.ParseIssuer(issuerCode)
	if err != nil {
		return nil, err
	}
	strat, err := New(issuer)
	if err != nil {
		return nil, err
	}

	record, err := strat.ExtractMetadata(doc)
	if err != nil {
		return nil, err
	}
	record.Issuer = issuer

	txns, sectionFound, err := strat.ExtractTransactions(doc)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	record.Transactions = txns

	result := &Result{Record: record}
	if !sectionFound {
		result.Warnings = append(result.Warnings, "no transaction section found")
	}
	return result, nil
}
