package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

// CSVWriter writes an extracted statement to CSV: four metadata rows, a
// column header, then one row per transaction in table order.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the document to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, doc *models.StatementDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, doc)
}

// Write writes the document in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, doc *models.StatementDocument) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		meta := [][2]string{
			{"Bank", doc.Bank},
			{"Account", doc.Account},
			{"Holder", doc.Holder},
			{"Period", doc.Period},
		}
		for _, row := range meta {
			if err := cw.Write([]string{row[0], row[1]}); err != nil {
				return fmt.Errorf("failed to write CSV metadata row: %w", err)
			}
		}
	}

	if err := cw.Write([]string{"Date", "Description", "Amount", "Direction"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range doc.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			formatAmount(txn.Amount),
			string(txn.Direction),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// formatAmount emits a plain decimal string: no thousands separators,
// "." as the decimal point, empty when absent. The parsed scale is kept,
// so "5,40" on the statement comes out as "5.40", not "5.4".
func formatAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	if exp := amount.Decimal.Exponent(); exp < 0 {
		return amount.Decimal.StringFixed(-exp)
	}
	return amount.Decimal.String()
}
