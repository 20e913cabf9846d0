package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// Parser turns the text lines of one statement document into a structured
// StatementDocument. Implementations are stateless across documents and
// never fail on malformed rows; the error return is reserved for genuinely
// unusable input.
type Parser interface {
	Parse(in models.Input) (*models.StatementDocument, error)
	Name() string
}

// New returns the parser for the given statement family.
func New(family models.Family) Parser {
	if family == models.FamilyLedger {
		return &LedgerParser{}
	}
	return &GenericParser{}
}

// Extract is the whole pipeline: normalize, dispatch on statement family,
// parse, assemble. Empty input yields an empty document with a reason code
// rather than an error.
func Extract(in models.Input) (*models.StatementDocument, error) {
	in.Lines = NormalizeLines(in.Lines)
	for label, frag := range in.Regions {
		in.Regions[label] = NormalizeLines(frag)
	}

	if !hasText(in) {
		return &models.StatementDocument{
			Transactions: []models.Transaction{},
			Reason:       models.ReasonNoInput,
		}, nil
	}

	return New(DetectFamily(in.Lines)).Parse(in)
}

// assemble finalizes a parsed document: the statement period falls back to
// the first and last transaction dates in table order, and empty results
// get a reason code so callers can tell "nothing extracted" apart from a
// failure.
func assemble(doc *models.StatementDocument) *models.StatementDocument {
	if doc.Period == "" {
		doc.Period = derivePeriod(doc.Transactions)
	}
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}
	if doc.Empty() {
		doc.Reason = models.ReasonUnrecognizedFormat
	}
	return doc
}

// derivePeriod takes the first and last transaction dates in appearance
// order — statements are already chronological, so re-sorting would only
// amplify OCR date errors.
func derivePeriod(txns []models.Transaction) string {
	if len(txns) == 0 {
		return ""
	}
	first := txns[0].Date
	last := txns[len(txns)-1].Date
	if first == "" || last == "" {
		return ""
	}
	return first + " - " + last
}

// normalizeDateYear expands a 2-digit year to 20YY.
func normalizeDateYear(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) == 3 && len(parts[2]) == 2 {
		parts[2] = "20" + parts[2]
	}
	return strings.Join(parts, "/")
}

func hasText(in models.Input) bool {
	for _, line := range in.Lines {
		if line != "" {
			return true
		}
	}
	for _, frag := range in.Regions {
		for _, line := range frag {
			if line != "" {
				return true
			}
		}
	}
	return false
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
