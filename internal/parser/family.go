package parser

import (
	"strings"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// DetectFamily classifies a document by exact marker phrases in its
// lowercased text. No fuzzy matching: a false family assignment would
// inject the ledger family's institutional header defaults into an
// unrelated statement.
func DetectFamily(lines []string) models.Family {
	joined := strings.ToLower(strings.Join(lines, " "))

	if strings.Contains(joined, "extrait de compte") &&
		strings.Contains(joined, "afriland") {
		return models.FamilyLedger
	}
	if strings.Contains(joined, "safir consulting cameroun") {
		return models.FamilyLedger
	}
	return models.FamilyGeneric
}
