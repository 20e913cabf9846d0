package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Token is a plausible monetary amount found in a line, with the byte span
// it occupies so it can later be excised from the description without
// touching unrelated text that happens to contain the same digits.
type Token struct {
	Raw      string
	Norm     string // canonical text form: no separators, "." decimal point
	Start    int
	End      int
	Value    decimal.Decimal
	Negative bool
}

// Candidate grammar, longest form first so that a thousands-separated amount
// wins over a bare short-digit match starting at the same offset. Lines are
// normalized before scanning, so only ASCII space appears as a group
// separator here.
var amountCandidate = regexp.MustCompile(
	`\d{1,3}(?:[ '’]\d{3})+(?:[.,]\d{2})?` + // 1 257 225 / 1'234.56
		`|\d{1,3}(?:\.\d{3})+(?:,\d{2})?` + // 1.257.225 / 1.234,56
		`|\d{1,3}(?:,\d{3})+(?:\.\d{2})?` + // 1,234,567 / 1,234.56
		`|\d+[.,]\d{2}` + // 566293.00 / 5,40
		`|\d{4,}`, // 1257225
)

var allDigits = regexp.MustCompile(`^\d+$`)

// Bare 4-digit integers in this range are calendar years, not money.
const denyYearMin, denyYearMax = 1990, 2035

// ScanAmounts returns the plausible amount tokens of a line in left-to-right
// order. A token is plausible when it has at least four integer digits, a
// decimal fraction, or a thousands separator; bare one/two digit numbers and
// recent-year literals never qualify.
func ScanAmounts(line string) []Token {
	var tokens []Token
	for _, loc := range amountCandidate.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		raw := line[start:end]

		// Reject candidates glued to more digits on either side; those are
		// OCR fragments of something longer, not standalone amounts.
		if start > 0 && isDigit(line[start-1]) {
			continue
		}
		if end < len(line) && isDigit(line[end]) {
			continue
		}

		if allDigits.MatchString(raw) && len(raw) == 4 {
			if y := atoi4(raw); y >= denyYearMin && y <= denyYearMax {
				continue
			}
		}

		value, norm, ok := normalizeAmount(raw)
		if !ok {
			continue
		}

		tok := Token{Raw: raw, Norm: norm, Start: start, End: end, Value: value}
		tok.Start, tok.End, tok.Negative = absorbSign(line, start, end)
		tokens = append(tokens, tok)
	}
	return tokens
}

// normalizeAmount strips thousands separators, canonicalizes the decimal
// separator to a point and parses the magnitude. The decimal separator is
// whichever of comma/period is followed by exactly two trailing digits;
// every other comma, period, space or apostrophe is a group separator.
func normalizeAmount(raw string) (decimal.Decimal, string, bool) {
	s := strings.NewReplacer(" ", "", "'", "", "’", "").Replace(raw)

	sep := -1
	if i := strings.LastIndexAny(s, ".,"); i >= 0 && len(s)-i-1 == 2 {
		sep = i
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			b.WriteByte(s[i])
		case i == sep:
			b.WriteByte('.')
		}
	}

	norm := b.String()
	value, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Decimal{}, "", false
	}
	return value, norm, true
}

// absorbSign widens a token's span over directly adjacent sign decoration —
// wrapping parentheses, a leading minus or a trailing minus — and reports
// whether the token is negative.
func absorbSign(line string, start, end int) (int, int, bool) {
	if start > 0 && line[start-1] == '(' && end < len(line) && line[end] == ')' {
		return start - 1, end + 1, true
	}
	// A minus glued between two numbers belongs to the right-hand one;
	// absorbing it on both sides would overlap their spans.
	if end < len(line) && line[end] == '-' && (end+1 == len(line) || !isDigit(line[end+1])) {
		return start, end + 1, true
	}
	if start > 0 && line[start-1] == '-' {
		return start - 1, end, true
	}
	return start, end, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func atoi4(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
