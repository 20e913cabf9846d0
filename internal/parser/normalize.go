package parser

import (
	"regexp"
	"strings"
)

// OCR output is full of exotic whitespace. Everything here folds to a plain
// ASCII space before any pattern matching happens.
var whitespaceVariants = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // figure space
	" ", " ", // thin space
	" ", " ", // narrow no-break space
	"　", " ", // ideographic space
	"\t", " ",
	"​", "", // zero-width space: dropped, not spaced
)

var spaceRuns = regexp.MustCompile(`  +`)

// truncatedDateSuffix matches a line ending in a day/month pair with no year,
// e.g. "... 31/12". The pair must not follow a slash or digit, so the MM/YY
// tail of an already complete date ("05/01/25") never counts as truncated.
// continuationPrefix matches the year fragment OCR pushed onto the following
// line, e.g. "/24 PRELV ..." — a two or four digit year only.
var (
	truncatedDateSuffix = regexp.MustCompile(`(?:^|[^/\d])\d{1,2}/\d{1,2}$`)
	continuationPrefix  = regexp.MustCompile(`^(/(?:\d{4}|\d{2}))([^0-9].*)?$`)
)

// NormalizeLine folds whitespace variants to ASCII space, collapses runs and
// trims. Applying it twice yields the same result.
func NormalizeLine(line string) string {
	line = whitespaceVariants.Replace(line)
	line = spaceRuns.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// NormalizeLines cleans every line and rejoins dates that OCR split across a
// line boundary ("31/12" + "/24 ..." becomes one line). The output is the
// same length or shorter; malformed input passes through unchanged.
func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		out = append(out, NormalizeLine(raw))
	}

	spliced := out[:0]
	for i := 0; i < len(out); i++ {
		line := out[i]
		if i+1 < len(out) && truncatedDateSuffix.MatchString(line) {
			if m := continuationPrefix.FindStringSubmatch(out[i+1]); m != nil {
				line = line + m[1]
				if rest := strings.TrimSpace(m[2]); rest != "" {
					line = line + " " + rest
				}
				i++
			}
		}
		spliced = append(spliced, line)
	}
	return spliced
}
