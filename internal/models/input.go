package models

// RegionLabel names the fixed categories produced by the external region
// classifier. When the classifier yields several fragments for one
// category, only the first is recorded here.
type RegionLabel string

const (
	RegionTransactionLines RegionLabel = "transaction-lines-region"
	RegionBankName         RegionLabel = "bank-name-region"
	RegionAccountNumber    RegionLabel = "account-number-region"
	RegionPeriod           RegionLabel = "period-region"
	RegionHolder           RegionLabel = "holder-region"
)

// Input is the engine's input boundary: ordered OCR text lines for one
// document, plus optional labeled text fragments from region detection.
type Input struct {
	Lines   []string
	Regions map[RegionLabel][]string
}

// Region returns the first fragment recorded for the given label, or nil.
func (in Input) Region(label RegionLabel) []string {
	if in.Regions == nil {
		return nil
	}
	lines := in.Regions[label]
	if len(lines) == 0 {
		return nil
	}
	return lines
}
