package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// Keyword vocabularies used as the last resort when neither the running
// balance nor an explicit sign can settle a row's direction.
var (
	debitKeywords = []string{
		"frais", "commission", "comm.", "taxe", "découvert", "decouvert",
		"intérêts", "interets", "dbt", "débit", "debit",
		"withdrawal", "fee", "charge",
	}
	creditKeywords = []string{
		"virement", "versement", "remboursement", "remb", "salaire",
		"crédit", "credit", "deposit", "payment received",
	}
)

var (
	slashDate    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	columnLabels = regexp.MustCompile(`(?i)\b(?:debit|débit|credit|crédit|solde|balance)\b`)
)

// reconciler carries the single piece of state in the whole engine: the
// running balance of the row-by-row pass over one document.
type reconciler struct {
	prev decimal.NullDecimal
}

// Seed sets the running balance from an explicit opening-balance header field.
func (r *reconciler) Seed(balance decimal.Decimal) {
	r.prev = decimal.NullDecimal{Decimal: balance, Valid: true}
}

// resolved is the outcome of one row: any field may be absent, but a row is
// never rejected once it reached the reconciler.
type resolved struct {
	Amount      decimal.NullDecimal
	Balance     decimal.NullDecimal
	Direction   models.Direction
	Description string
}

// Resolve assigns a row's trailing text (everything after the leading date
// tokens) to amount and balance, infers the direction from the running
// balance where possible, and advances the running balance. It never fails;
// ambiguous rows come back with the ambiguous fields unset.
func (r *reconciler) Resolve(tail string) resolved {
	tokens := ScanAmounts(tail)

	switch len(tokens) {
	case 0:
		return resolved{Description: cleanDescription(tail, nil)}

	case 1:
		// A lone amount is the balance column; the movement itself is not
		// recoverable from this row.
		out := resolved{
			Balance:     decimal.NullDecimal{Decimal: tokens[0].Value, Valid: true},
			Direction:   keywordDirection(tail),
			Description: cleanDescription(tail, tokens[:1]),
		}
		r.prev = out.Balance
		return out
	}

	balanceTok := tokens[len(tokens)-1]
	balance := balanceTok.Value
	candidates := tokens[:len(tokens)-1]

	amountTok := chooseAmount(candidates, balance, r.prev)

	out := resolved{
		Amount:      decimal.NullDecimal{Decimal: amountTok.Value, Valid: true},
		Balance:     decimal.NullDecimal{Decimal: balance, Valid: true},
		Direction:   r.inferDirection(amountTok, balance, tail),
		Description: cleanDescription(tail, []Token{amountTok, balanceTok}),
	}

	// Balance continuity survives any ambiguity above.
	r.prev = out.Balance
	return out
}

// chooseAmount picks the movement amount among the non-balance tokens.
// When the previous balance is known, the token closest to the absolute
// balance change wins, provided it lands within tolerance — that keeps
// OCR-mangled stray digits in the description from being picked up as the
// amount. Otherwise the token immediately preceding the balance is taken.
func chooseAmount(candidates []Token, balance decimal.Decimal, prev decimal.NullDecimal) Token {
	if prev.Valid {
		delta := balance.Sub(prev.Decimal).Abs()
		best := -1
		var bestDist decimal.Decimal
		for i, tok := range candidates {
			dist := tok.Value.Sub(delta).Abs()
			if best < 0 || dist.LessThan(bestDist) {
				best = i
				bestDist = dist
			}
		}
		if best >= 0 && bestDist.LessThanOrEqual(tolerance(delta)) {
			return candidates[best]
		}
	}
	return candidates[len(candidates)-1]
}

// inferDirection works down the priority chain: balance reconstruction,
// explicit sign, description keywords. It never guesses beyond that.
func (r *reconciler) inferDirection(amountTok Token, balance decimal.Decimal, tail string) models.Direction {
	if r.prev.Valid {
		amount := amountTok.Value
		tol := tolerance(amount)
		if r.prev.Decimal.Sub(amount).Sub(balance).Abs().LessThanOrEqual(tol) {
			return models.DirectionDebit
		}
		if r.prev.Decimal.Add(amount).Sub(balance).Abs().LessThanOrEqual(tol) {
			return models.DirectionCredit
		}
	}
	if amountTok.Negative {
		return models.DirectionDebit
	}
	return keywordDirection(tail)
}

func keywordDirection(text string) models.Direction {
	lower := strings.ToLower(text)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return models.DirectionCredit
		}
	}
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return models.DirectionDebit
		}
	}
	return models.DirectionUnknown
}

// tolerance is relative 2% or absolute 5 units, whichever is looser.
func tolerance(reference decimal.Decimal) decimal.Decimal {
	rel := reference.Abs().Mul(decimal.New(2, -2))
	abs := decimal.New(5, 0)
	if rel.GreaterThan(abs) {
		return rel
	}
	return abs
}

// cleanDescription removes the consumed tokens from the trailing text by
// their exact byte spans — not by substring replacement, which could delete
// an unrelated occurrence of the same digits — then strips leftover literal
// dates and column-label words and collapses whitespace.
func cleanDescription(tail string, consumed []Token) string {
	spans := make([][2]int, 0, len(consumed))
	for _, tok := range consumed {
		spans = append(spans, [2]int{tok.Start, tok.End})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] > spans[j][0] })

	desc := tail
	for _, span := range spans {
		desc = desc[:span[0]] + " " + desc[span[1]:]
	}

	desc = slashDate.ReplaceAllString(desc, " ")
	desc = columnLabels.ReplaceAllString(desc, " ")
	desc = spaceRuns.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}
