package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// LedgerParser handles ledger-style statements with a fixed column order:
//
//	Date | Date de valeur | Opération | Débit | Crédit | Solde
//
// Date format: DD/MM/YYYY or DD/MM/YY.
// Example row: "02/01/2025 31/12/2024 PRELV ALIOS FINANCE 566 293 1 257 225"
//
// OCR rarely preserves the debit/credit column split, so the row's amounts
// are disambiguated against the running balance instead of by position.
type LedgerParser struct{}

func (p *LedgerParser) Name() string {
	return "ledger"
}

// dayMonthYear is deliberately strict about day and month ranges so that
// amount fragments like "12/34" never open a row.
const dayMonthYear = `(?:0?[1-9]|[12][0-9]|3[01])/(?:0?[1-9]|1[0-2])/(?:\d{4}|\d{2})`

var (
	ledgerRowStart = regexp.MustCompile(`^(` + dayMonthYear + `)\s+(` + dayMonthYear + `)\s+(.+)$`)
	tableHeaderRow = regexp.MustCompile(`(?i)(opération|operation)`)
)

func (p *LedgerParser) Parse(in models.Input) (*models.StatementDocument, error) {
	h := extractHeader(in.Lines)
	h.applyRegions(in)
	h.applyLedgerDefaults()

	tableLines := in.Lines
	if frag := in.Region(models.RegionTransactionLines); frag != nil {
		tableLines = frag
	} else {
		tableLines = tableLines[tableStart(tableLines):]
	}
	tableLines = dropColumnHeaders(tableLines)

	rows, _ := BuildRows(tableLines, func(line string) bool {
		return ledgerRowStart.MatchString(line)
	})
	// Header fields were already scanned over the whole document; a labeled
	// line left above the first row is not a description fragment.
	if len(rows) > 0 && isHeaderLine(rows[0].Prefix) {
		rows[0].Prefix = ""
	}

	rec := &reconciler{}
	if h.OpeningBalance.Valid {
		rec.Seed(h.OpeningBalance.Decimal)
	}

	var txns []models.Transaction
	for _, row := range rows {
		m := ledgerRowStart.FindStringSubmatch(row.Text)
		if m == nil {
			continue
		}

		res := rec.Resolve(m[3])

		desc := res.Description
		if row.Prefix != "" {
			desc = strings.TrimSpace(row.Prefix + " " + desc)
		}

		txns = append(txns, models.Transaction{
			Date:        normalizeDateYear(m[1]),
			ValueDate:   normalizeDateYear(m[2]),
			Description: desc,
			Amount:      res.Amount,
			Direction:   res.Direction,
			Balance:     res.Balance,
		})
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

// tableStart locates the transaction-table column header ("Date  Date de
// valeur  Opération ... Solde") and returns the index of the first line
// after it; with no such header the whole document is scanned and the
// row-start predicate does the filtering.
func tableStart(lines []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if tableHeaderRow.MatchString(lower) &&
			strings.Contains(lower, "date") && strings.Contains(lower, "solde") {
			return i + 1
		}
	}
	return 0
}
