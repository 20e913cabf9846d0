package parser

import "strings"

// Row is one logical transaction row: the merged row text plus any stray
// description fragment OCR emitted on the line above the row's date.
type Row struct {
	Text   string
	Prefix string
}

// BuildRows regroups normalized lines into logical transaction rows. A row
// opens at every line matching isRowStart and swallows each following line
// until the next row start, so descriptions broken across lines end up on
// the row they belong to; trailing lines after the last row start stay with
// that row. Lines seen before the first row start are returned as preamble
// for header extraction — except that a line directly preceding a row start
// which is not a row start itself becomes that row's description Prefix.
func BuildRows(lines []string, isRowStart func(string) bool) (rows []Row, preamble []string) {
	current := -1
	var pending string

	for _, line := range lines {
		if line == "" {
			continue
		}

		if isRowStart(line) {
			rows = append(rows, Row{Text: line, Prefix: pending})
			pending = ""
			current = len(rows) - 1
			continue
		}

		if current >= 0 {
			rows[current].Text = strings.TrimSpace(rows[current].Text + " " + line)
			continue
		}

		// Not inside the table yet. Hold the line back one step: if the
		// next line opens a row this was a stray prefix, otherwise it is
		// preamble.
		if pending != "" {
			preamble = append(preamble, pending)
		}
		pending = line
	}

	if pending != "" {
		preamble = append(preamble, pending)
	}
	return rows, preamble
}

var (
	headerDescWords   = []string{"opération", "operation", "description", "détails", "details", "libellé", "libelle"}
	headerAmountWords = []string{"solde", "balance", "montant", "amount", "débit", "debit", "crédit", "credit"}
)

// IsColumnHeader reports whether a line is a transaction-table column
// header rather than data. OCR repeats these on every page, and they must
// not end up as description prefixes or row continuations.
func IsColumnHeader(line string) bool {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "date") {
		return false
	}
	return containsAnyLabel(lower, headerDescWords) && containsAnyLabel(lower, headerAmountWords)
}

// dropColumnHeaders filters column-header lines out of a table-line slice.
func dropColumnHeaders(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsColumnHeader(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
