package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAmountsPlausibility(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string // normalized values, in order
	}{
		{"bare two-digit number rejected", "virement ref 24", nil},
		{"calendar year rejected", "cotisation 2024", nil},
		{"zero-padded day rejected", "cheque 05", nil},
		{"year with fraction accepted", "frais 2024.00", []string{"2024.00"}},
		{"four digits outside year range accepted", "agios 1224", []string{"1224"}},
		{"long bare integer", "solde 1257225", []string{"1257225"}},
		{"space-separated thousands", "solde 1 257 225", []string{"1257225"}},
		{"comma decimal", "commission 5,40", []string{"5.40"}},
		{"period decimal", "frais 25.99", []string{"25.99"}},
		{"comma thousands period decimal", "in 1,234.56 out", []string{"1234.56"}},
		{"period thousands comma decimal", "total 1.257.225,10", []string{"1257225.10"}},
		{"apostrophe thousands", "montant 12'500", []string{"12500"}},
		{"several tokens in order", "PRELV 1224 566 293 1 257 225", []string{"1224", "566293", "1257225"}},
		{"dates never match", "02/01/2025 31/12/2024", nil},
		{"fraction glued to a trailing digit rejected", "ref 12345,678", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := ScanAmounts(tt.input)
			var got []string
			for _, tok := range tokens {
				got = append(got, tok.Norm)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanAmountsOverlapPrefersLongerMatch(t *testing.T) {
	// "12 500" could be read as the bare pair 12+500; the
	// thousands-separated form must win at the shared start offset.
	tokens := ScanAmounts("frais 12 500")
	require.Len(t, tokens, 1)
	assert.Equal(t, "12500", tokens[0].Norm)
	assert.Equal(t, "12 500", tokens[0].Raw)
}

func TestScanAmountsNegativeForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    string
		negative bool
	}{
		{"parenthesized", "agios (12 500)", "12500", true},
		{"trailing minus", "retrait 12500-", "12500", true},
		{"leading minus", "ajustement -5,40", "5.40", true},
		{"unsigned", "versement 12500", "12500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := ScanAmounts(tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.value, tokens[0].Norm)
			assert.Equal(t, tt.negative, tokens[0].Negative)
		})
	}
}

func TestScanAmountsSharedMinusGoesRight(t *testing.T) {
	// One minus between two numbers: it signs the right-hand token only,
	// and the two spans stay disjoint.
	line := "VIR 12500-34500"
	tokens := ScanAmounts(line)
	require.Len(t, tokens, 2)

	assert.Equal(t, "12500", line[tokens[0].Start:tokens[0].End])
	assert.False(t, tokens[0].Negative)
	assert.Equal(t, "-34500", line[tokens[1].Start:tokens[1].End])
	assert.True(t, tokens[1].Negative)
	assert.LessOrEqual(t, tokens[0].End, tokens[1].Start)
}

func TestScanAmountsSpans(t *testing.T) {
	line := "PRELV 566 293 solde 1 257 225"
	tokens := ScanAmounts(line)
	require.Len(t, tokens, 2)

	assert.Equal(t, "566 293", line[tokens[0].Start:tokens[0].End])
	assert.Equal(t, "1 257 225", line[tokens[1].Start:tokens[1].End])
	assert.Less(t, tokens[0].End, tokens[1].Start, "token spans must not overlap")
}

func TestScanAmountsParenSpanCoversDecoration(t *testing.T) {
	line := "agios (12 500) fin"
	tokens := ScanAmounts(line)
	require.Len(t, tokens, 1)
	assert.Equal(t, "(12 500)", line[tokens[0].Start:tokens[0].End])
}
