package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// Institutional defaults for the ledger family. Only ever used when the
// label scan comes up empty; header fields are never fabricated otherwise.
const (
	ledgerDefaultBank   = "AFRILAND FIRST BANK"
	ledgerDefaultHolder = "SAFIR CONSULTING CAMEROUN"
)

// header holds the free-text preamble fields of a statement.
type header struct {
	Bank           string
	Holder         string
	Account        string
	Period         string
	OpeningBalance decimal.NullDecimal
}

var (
	holderLabels  = []string{"nom du client", "libellé du compte", "libelle du compte", "account holder", "account name"}
	accountLabels = []string{"numéro de compte", "numero de compte", "account number"}
	openingLabels = []string{"solde initial", "opening balance", "balance brought forward"}
	periodLabels  = []string{"période", "periode", "statement period", "period"}
	bankLabels    = []string{"banque", "bank"}

	currencyCode = regexp.MustCompile(`(?i)\b(?:xaf|eur|usd|gbp)\b`)
)

// extractHeader scans lines for fixed label phrases. The first match wins
// per field; later occurrences are ignored.
func extractHeader(lines []string) header {
	var h header

	for _, line := range lines {
		lower := strings.ToLower(line)

		if h.Holder == "" {
			if v := labelValue(line, lower, holderLabels); v != "" {
				h.Holder = v
			}
		}
		if h.Account == "" {
			if v := labelValue(line, lower, accountLabels); v != "" {
				h.Account = strings.TrimSpace(currencyCode.ReplaceAllString(v, ""))
			}
		}
		if h.Bank == "" && containsAnyLabel(lower, bankLabels) && !strings.Contains(lower, "solde") {
			// Bank names rarely sit behind a label; the whole line is the
			// value when no colon is present.
			h.Bank = afterColonOrAll(line)
		}
		if !h.OpeningBalance.Valid && containsAnyLabel(lower, openingLabels) {
			if tokens := ScanAmounts(line); len(tokens) > 0 {
				h.OpeningBalance = decimal.NullDecimal{Decimal: tokens[0].Value, Valid: true}
			}
		}
		if h.Period == "" && containsAnyLabel(lower, periodLabels) {
			if dates := slashDate.FindAllString(line, 2); len(dates) == 2 {
				h.Period = dates[0] + " - " + dates[1]
			}
		}
	}
	return h
}

// applyRegions overrides scanned header fields with region-classifier
// fragments; the detector's crop is more trustworthy than a label scan over
// the whole page.
func (h *header) applyRegions(in models.Input) {
	if frag := in.Region(models.RegionBankName); frag != nil {
		h.Bank = strings.TrimSpace(strings.Join(frag, " "))
	}
	if frag := in.Region(models.RegionHolder); frag != nil {
		h.Holder = strings.TrimSpace(strings.Join(frag, " "))
	}
	if frag := in.Region(models.RegionAccountNumber); frag != nil {
		v := strings.TrimSpace(strings.Join(frag, " "))
		h.Account = strings.TrimSpace(currencyCode.ReplaceAllString(afterColonOrAll(v), ""))
	}
	if frag := in.Region(models.RegionPeriod); frag != nil {
		line := strings.Join(frag, " ")
		if dates := slashDate.FindAllString(line, 2); len(dates) == 2 {
			h.Period = dates[0] + " - " + dates[1]
		}
	}
}

// applyLedgerDefaults fills the two fields the ledger family hardcodes when
// nothing was individually extractable.
func (h *header) applyLedgerDefaults() {
	if h.Bank == "" {
		h.Bank = ledgerDefaultBank
	}
	if h.Holder == "" {
		h.Holder = ledgerDefaultHolder
	}
}

// isHeaderLine reports whether a line carries any known header label.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, labels := range [][]string{holderLabels, accountLabels, openingLabels, periodLabels, bankLabels} {
		if containsAnyLabel(lower, labels) {
			return true
		}
	}
	return false
}

func labelValue(line, lower string, labels []string) string {
	if !containsAnyLabel(lower, labels) {
		return ""
	}
	return afterColon(line)
}

func containsAnyLabel(lower string, labels []string) bool {
	for _, label := range labels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

// afterColon returns the trimmed text following the first colon on the
// line, or "" when there is none.
func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

func afterColonOrAll(line string) string {
	if v := afterColon(line); v != "" {
		return v
	}
	return line
}
