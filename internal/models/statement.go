package models

import "github.com/shopspring/decimal"

// Direction indicates whether a transaction moved money out of or into the account.
type Direction string

const (
	DirectionDebit   Direction = "DEBIT"
	DirectionCredit  Direction = "CREDIT"
	DirectionUnknown Direction = ""
)

// Family identifies which parsing rule set applies to a document.
type Family string

const (
	// FamilyGeneric is the fallback heuristic parser for layouts the engine
	// has not been taught.
	FamilyGeneric Family = "generic"
	// FamilyLedger is the ledger-style statement layout with
	// date / value date / description / debit / credit / balance columns.
	FamilyLedger Family = "ledger"
)

// Reason codes attached to an empty StatementDocument instead of an error.
const (
	ReasonNoInput            = "no-input"
	ReasonUnrecognizedFormat = "unrecognized-format"
)

// Transaction is one logical statement row. Amount is unsigned; the sign
// lives in Direction. Balance is the running balance after the row.
type Transaction struct {
	Date        string              `json:"date"`
	ValueDate   string              `json:"valueDate,omitempty"`
	Description string              `json:"description"`
	Amount      decimal.NullDecimal `json:"amount"`
	Direction   Direction           `json:"direction"`
	Balance     decimal.NullDecimal `json:"balance"`
}

// StatementDocument is the assembled result for one input document.
// It is built once and not mutated after assembly.
type StatementDocument struct {
	Bank         string        `json:"bank,omitempty"`
	Account      string        `json:"account,omitempty"`
	Holder       string        `json:"holder,omitempty"`
	Period       string        `json:"period,omitempty"`
	Transactions []Transaction `json:"transactions"`
	// Reason is set on empty results ("no-input", "unrecognized-format")
	// and left blank on success.
	Reason string `json:"reason,omitempty"`
}

// Empty reports whether the document carries no extracted data at all.
func (d *StatementDocument) Empty() bool {
	return len(d.Transactions) == 0 && d.Bank == "" && d.Account == "" &&
		d.Holder == "" && d.Period == ""
}
