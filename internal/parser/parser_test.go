package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

func TestExtractNoInput(t *testing.T) {
	tests := []struct {
		name string
		in   models.Input
	}{
		{"nil lines", models.Input{}},
		{"blank lines", models.Input{Lines: []string{"", "   ", " "}}},
		{"blank regions", models.Input{Regions: map[models.RegionLabel][]string{
			models.RegionTransactionLines: {"", "  "},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Extract(tt.in)
			require.NoError(t, err)
			assert.Equal(t, models.ReasonNoInput, doc.Reason)
			assert.NotNil(t, doc.Transactions)
			assert.Empty(t, doc.Transactions)
		})
	}
}

func TestExtractUnrecognizedFormat(t *testing.T) {
	doc, err := Extract(models.Input{Lines: []string{
		"lorem ipsum dolor",
		"nothing statement-like here",
	}})
	require.NoError(t, err)
	assert.Equal(t, models.ReasonUnrecognizedFormat, doc.Reason)
	assert.Empty(t, doc.Transactions)
}

func TestExtractDispatchesLedgerFamily(t *testing.T) {
	doc, err := Extract(models.Input{Lines: []string{
		"EXTRAIT DE COMPTE",
		"AFRILAND FIRST BANK",
		"02/01/2025 02/01/2025 FRAIS DIVERS 32 500 1 224 725",
	}})
	require.NoError(t, err)

	// Ledger defaults only come from the ledger parser.
	assert.Equal(t, "SAFIR CONSULTING CAMEROUN", doc.Holder)
	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, "02/01/2025", doc.Transactions[0].ValueDate)
}

func TestExtractDispatchesGenericFamily(t *testing.T) {
	doc, err := Extract(models.Input{Lines: []string{
		"HDFC Bank",
		"15/10/2025 SALARY CREDIT 50,000.00",
	}})
	require.NoError(t, err)

	assert.Empty(t, doc.Holder)
	require.Len(t, doc.Transactions, 1)
	assert.Empty(t, doc.Transactions[0].ValueDate)
}

func TestExtractNormalizesBeforeParsing(t *testing.T) {
	// Non-breaking thousands separators and a truncated-date line split are
	// repaired before tokenization.
	doc, err := Extract(models.Input{Lines: []string{
		"EXTRAIT DE COMPTE afriland",
		"Date Date valeur Opération Débit Crédit Solde",
		"02/01   ",
		"/2025 02/01/2025 FRAIS DIVERS 32 500 1 224 725",
	}})
	require.NoError(t, err)

	require.Len(t, doc.Transactions, 1)
	txn := doc.Transactions[0]
	assert.Equal(t, "02/01/2025", txn.Date)
	assert.Equal(t, "FRAIS DIVERS", txn.Description)
	require.True(t, txn.Amount.Valid)
	assert.Equal(t, "32500", txn.Amount.Decimal.String())
	assert.Equal(t, "1224725", txn.Balance.Decimal.String())
}

func TestNewParserPerFamily(t *testing.T) {
	assert.Equal(t, "ledger", New(models.FamilyLedger).Name())
	assert.Equal(t, "generic", New(models.FamilyGeneric).Name())
	assert.Equal(t, "generic", New(models.Family("whatever")).Name())
}

func TestDerivePeriod(t *testing.T) {
	tests := []struct {
		name string
		txns []models.Transaction
		want string
	}{
		{"empty", nil, ""},
		{
			"single row",
			[]models.Transaction{{Date: "01/02/2025"}},
			"01/02/2025 - 01/02/2025",
		},
		{
			"table order preserved even when unsorted",
			[]models.Transaction{{Date: "05/02/2025"}, {Date: "01/02/2025"}, {Date: "03/02/2025"}},
			"05/02/2025 - 03/02/2025",
		},
		{
			"missing boundary date",
			[]models.Transaction{{Date: ""}, {Date: "03/02/2025"}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derivePeriod(tt.txns))
		})
	}
}

func TestNormalizeDateYear(t *testing.T) {
	assert.Equal(t, "05/01/2025", normalizeDateYear("05/01/25"))
	assert.Equal(t, "05/01/2025", normalizeDateYear("05/01/2025"))
	assert.Equal(t, "garbage", normalizeDateYear("garbage"))
}
