package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// GenericParser is the fallback rule set for statement layouts the engine
// was never taught. It assumes one leading date per row and a single amount
// column, upgrading to balance reconciliation only when a row carries at
// least two plausible amounts.
type GenericParser struct{}

func (p *GenericParser) Name() string {
	return "generic"
}

var genericRowStart = regexp.MustCompile(`^(` + dayMonthYear + `)\s+(.+)$`)

func (p *GenericParser) Parse(in models.Input) (*models.StatementDocument, error) {
	tableLines := in.Lines
	if frag := in.Region(models.RegionTransactionLines); frag != nil {
		tableLines = frag
	}

	rows, preamble := BuildRows(dropColumnHeaders(tableLines), func(line string) bool {
		return genericRowStart.MatchString(line)
	})

	// A labeled header line sitting right above the first transaction is
	// preamble, not a stray description fragment.
	if len(rows) > 0 && isHeaderLine(rows[0].Prefix) {
		preamble = append(preamble, rows[0].Prefix)
		rows[0].Prefix = ""
	}

	h := extractHeader(preamble)
	h.applyRegions(in)

	rec := &reconciler{}
	if h.OpeningBalance.Valid {
		rec.Seed(h.OpeningBalance.Decimal)
	}

	var txns []models.Transaction
	for _, row := range rows {
		m := genericRowStart.FindStringSubmatch(row.Text)
		if m == nil {
			continue
		}

		txn := p.parseRow(m[1], m[2], rec)
		if row.Prefix != "" {
			txn.Description = strings.TrimSpace(row.Prefix + " " + txn.Description)
		}
		txns = append(txns, txn)
	}

	doc := &models.StatementDocument{
		Bank:         h.Bank,
		Account:      h.Account,
		Holder:       h.Holder,
		Period:       h.Period,
		Transactions: txns,
	}
	return assemble(doc), nil
}

func (p *GenericParser) parseRow(date, tail string, rec *reconciler) models.Transaction {
	txn := models.Transaction{Date: normalizeDateYear(date)}

	tokens := ScanAmounts(tail)
	switch {
	case len(tokens) == 0:
		txn.Description = cleanDescription(tail, nil)

	case len(tokens) == 1 || !rec.prev.Valid:
		// Single-amount layout — or no running balance to confirm that a
		// trailing token really is a balance column, in which case the
		// first token is the movement and the rest stays description.
		tok := tokens[0]
		txn.Amount = nullDecimal(tok.Value)
		if tok.Negative {
			txn.Direction = models.DirectionDebit
		} else {
			txn.Direction = keywordDirection(tail)
		}
		txn.Description = cleanDescription(tail, tokens[:1])

	default:
		// Two or more amounts and a running balance: trailing balance
		// column, hand the row to the reconciler.
		res := rec.Resolve(tail)
		txn.Amount = res.Amount
		txn.Direction = res.Direction
		txn.Balance = res.Balance
		txn.Description = res.Description
	}
	return txn
}
