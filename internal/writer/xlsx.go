package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/ocr-statement-engine/internal/models"
)

const sheetName = "Statement"

// XLSXWriter writes an extracted statement to a spreadsheet, using the same
// layout as the CSV output: bank/account/holder/period in rows 1-4, the
// transaction header in row 6, transactions from row 7.
type XLSXWriter struct{}

// WriteToFile writes the document to an .xlsx file at the given path.
func (w *XLSXWriter) WriteToFile(path string, doc *models.StatementDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, doc)
}

// Write writes the document as an xlsx workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, doc *models.StatementDocument) error {
	wb := excelize.NewFile()
	defer wb.Close()

	idx, err := wb.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	wb.SetActiveSheet(idx)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	meta := [][2]string{
		{"Bank", doc.Bank},
		{"Account", doc.Account},
		{"Holder", doc.Holder},
		{"Period", doc.Period},
	}
	for i, row := range meta {
		cell := fmt.Sprintf("A%d", i+1)
		if err := wb.SetSheetRow(sheetName, cell, &[]any{row[0], row[1]}); err != nil {
			return fmt.Errorf("failed to write metadata row %q: %w", row[0], err)
		}
	}

	if err := wb.SetSheetRow(sheetName, "A6", &[]any{"Date", "Description", "Amount", "Direction"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, txn := range doc.Transactions {
		cell := fmt.Sprintf("A%d", i+7)
		row := []any{txn.Date, txn.Description, formatAmount(txn.Amount), string(txn.Direction)}
		if err := wb.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write transaction row %d: %w", i+1, err)
		}
	}

	if _, err := wb.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
