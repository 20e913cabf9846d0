package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

func seeded(balance int64) *reconciler {
	r := &reconciler{}
	r.Seed(decimal.NewFromInt(balance))
	return r
}

func TestResolveDirectionViaDelta(t *testing.T) {
	tests := []struct {
		name      string
		prev      int64
		tail      string
		amount    string
		direction models.Direction
		balance   string
	}{
		{
			name:      "debit case",
			prev:      1000,
			tail:      "CARD PURCHASE 50.00 950.00",
			amount:    "50",
			direction: models.DirectionDebit,
			balance:   "950",
		},
		{
			name:      "credit case",
			prev:      1000,
			tail:      "INCOMING 200.00 1200.00",
			amount:    "200",
			direction: models.DirectionCredit,
			balance:   "1200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := seeded(tt.prev)
			res := rec.Resolve(tt.tail)

			require.True(t, res.Amount.Valid)
			require.True(t, res.Balance.Valid)
			assert.Equal(t, tt.amount, res.Amount.Decimal.String())
			assert.Equal(t, tt.direction, res.Direction)
			assert.Equal(t, tt.balance, res.Balance.Decimal.String())
		})
	}
}

func TestResolveDeltaMatchSkipsStrayDigits(t *testing.T) {
	// "1224" is an OCR fragment inside the description; the delta against
	// the previous balance singles out the real movement.
	rec := seeded(1823518)
	res := rec.Resolve("PRELV ALIOS FINANCE 1224 566 293 1 257 225")

	require.True(t, res.Amount.Valid)
	assert.Equal(t, "566293", res.Amount.Decimal.String())
	assert.Equal(t, models.DirectionDebit, res.Direction)
	assert.Equal(t, "1257225", res.Balance.Decimal.String())
	assert.Equal(t, "PRELV ALIOS FINANCE 1224", res.Description)
}

func TestResolvePositionalFallbackWithoutPreviousBalance(t *testing.T) {
	rec := &reconciler{}
	res := rec.Resolve("FRAIS TENUE DE COMPTE 32 500 1 224 725")

	require.True(t, res.Amount.Valid)
	assert.Equal(t, "32500", res.Amount.Decimal.String())
	assert.Equal(t, "1224725", res.Balance.Decimal.String())
	// No previous balance, no sign: keywords decide ("frais").
	assert.Equal(t, models.DirectionDebit, res.Direction)
}

func TestResolveSingleTokenIsBalanceOnly(t *testing.T) {
	rec := &reconciler{}
	res := rec.Resolve("COMMISSION DE MOUVEMENT 1 224 725")

	assert.False(t, res.Amount.Valid)
	require.True(t, res.Balance.Valid)
	assert.Equal(t, "1224725", res.Balance.Decimal.String())
	assert.Equal(t, models.DirectionDebit, res.Direction) // "commission" keyword
	assert.Equal(t, "COMMISSION DE MOUVEMENT", res.Description)

	// The lone balance still advances the running balance.
	next := rec.Resolve("VIREMENT RECU 450 000 1 674 725")
	assert.Equal(t, models.DirectionCredit, next.Direction)
}

func TestResolveNoTokens(t *testing.T) {
	rec := seeded(1000)
	res := rec.Resolve("ANNULATION ECRITURE")

	assert.False(t, res.Amount.Valid)
	assert.False(t, res.Balance.Valid)
	assert.Equal(t, models.DirectionUnknown, res.Direction)
	assert.Equal(t, "ANNULATION ECRITURE", res.Description)

	// No balance token: the running balance is untouched.
	assert.True(t, rec.prev.Valid)
	assert.Equal(t, "1000", rec.prev.Decimal.String())
}

func TestResolveBalanceContinuity(t *testing.T) {
	rec := seeded(1823518)
	rows := []string{
		"PRELV ALIOS FINANCE 566 293 1 257 225",
		"FRAIS TENUE DE COMPTE 32 500 1 224 725",
		"VIREMENT CIME SARL 450 000 1 674 725",
	}

	prev := rec.prev
	for _, row := range rows {
		res := rec.Resolve(row)
		require.True(t, res.Balance.Valid)
		assert.Equal(t, res.Balance, rec.prev, "running balance must advance to the row's balance")
		assert.NotEqual(t, prev, rec.prev)
		prev = rec.prev
	}
}

func TestResolveBalanceAdvancesEvenWhenDirectionUnknown(t *testing.T) {
	// Garbled movement: no candidate within tolerance of the delta, and no
	// keyword or sign. Direction stays unknown but the balance must not be
	// lost.
	rec := seeded(1000)
	res := rec.Resolve("REGLEMENT XYZ 7777.77 2000.00")

	require.True(t, res.Balance.Valid)
	assert.Equal(t, "2000", res.Balance.Decimal.String())
	assert.Equal(t, models.DirectionUnknown, res.Direction)
	assert.True(t, rec.prev.Valid)
	assert.Equal(t, "2000", rec.prev.Decimal.String())
}

func TestResolveExplicitSignFallback(t *testing.T) {
	rec := &reconciler{}
	res := rec.Resolve("AJUSTEMENT COMPTABLE (12 500) 987 500")

	require.True(t, res.Amount.Valid)
	assert.Equal(t, "12500", res.Amount.Decimal.String())
	assert.Equal(t, models.DirectionDebit, res.Direction)
}

func TestResolveSpansNeverOverlap(t *testing.T) {
	// The same digits appear in the description and as the amount; only
	// the amount's own span may be excised.
	rec := seeded(2000)
	res := rec.Resolve("REF 1000.00 TRANSFER 1000.00 1000.00")

	require.True(t, res.Amount.Valid)
	assert.Equal(t, "1000", res.Amount.Decimal.String())
	assert.Equal(t, "1000", res.Balance.Decimal.String())
	// One occurrence of the digits survives in the description.
	assert.Contains(t, res.Description, "1000.00")
	assert.Contains(t, res.Description, "REF")
}

func TestKeywordDirection(t *testing.T) {
	tests := []struct {
		text string
		want models.Direction
	}{
		{"VIREMENT CIME SARL", models.DirectionCredit},
		{"PAYMENT RECEIVED J.DOE", models.DirectionCredit},
		{"FRAIS TENUE DE COMPTE", models.DirectionDebit},
		{"CARD PAYMENT GROCERY", models.DirectionUnknown},
		{"PRELV ALIOS", models.DirectionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, keywordDirection(tt.text))
		})
	}
}

func TestCleanDescriptionStripsDatesAndLabels(t *testing.T) {
	got := cleanDescription("PRELV 31/12/2024 debit solde ALIOS", nil)
	assert.Equal(t, "PRELV ALIOS", got)
}
