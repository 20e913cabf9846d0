package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/ocr-statement-engine/internal/extractor"
	"github.com/insightdelivered/ocr-statement-engine/internal/models"
	"github.com/insightdelivered/ocr-statement-engine/internal/parser"
	"github.com/insightdelivered/ocr-statement-engine/internal/writer"
)

func newConvertCommand() *cobra.Command {
	var family string
	var output string
	var format string
	var forceOCR bool

	cmd := &cobra.Command{
		Use:   "convert <input.pdf|input.png|input.txt> [more inputs...]",
		Short: "Extract statement data from PDFs, scans or OCR text dumps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unknown format %q; use csv or xlsx", format)
			}
			if family != "" && family != string(models.FamilyGeneric) && family != string(models.FamilyLedger) {
				return fmt.Errorf("unknown family %q; use generic or ledger", family)
			}

			for _, input := range args {
				out := output
				if out == "" || len(args) > 1 {
					out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
				}
				if err := convertFile(input, out, family, format, forceOCR); err != nil {
					return fmt.Errorf("processing %s: %w", input, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "statement family: generic or ledger (auto-detected if omitted)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (defaults to input name with new extension)")
	cmd.Flags().StringVar(&format, "format", "xlsx", "output format: csv or xlsx")
	cmd.Flags().BoolVar(&forceOCR, "ocr", false, "force OCR even when the PDF has a text layer")

	return cmd
}

func convertFile(input, output, family, format string, forceOCR bool) error {
	fmt.Printf("Processing: %s\n", input)

	lines, err := inputLines(input, forceOCR)
	if err != nil {
		return err
	}
	fmt.Printf("  Read %d line(s)\n", len(lines))

	in := models.Input{Lines: lines}

	var doc *models.StatementDocument
	if family != "" {
		in.Lines = parser.NormalizeLines(in.Lines)
		doc, err = parser.New(models.Family(family)).Parse(in)
	} else {
		detected := parser.DetectFamily(parser.NormalizeLines(lines))
		fmt.Printf("  Detected family: %s\n", detected)
		doc, err = parser.Extract(in)
	}
	if err != nil {
		return err
	}

	if doc.Reason != "" {
		fmt.Printf("  Warning: empty result (%s)\n", doc.Reason)
	}
	fmt.Printf("  Found %d transaction(s)\n", len(doc.Transactions))

	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: true}
		err = w.WriteToFile(output, doc)
	case "xlsx":
		w := &writer.XLSXWriter{}
		err = w.WriteToFile(output, doc)
	}
	if err != nil {
		return err
	}

	if doc.Bank != "" {
		fmt.Printf("  Bank: %s\n", doc.Bank)
	}
	if doc.Account != "" {
		fmt.Printf("  Account: %s\n", doc.Account)
	}
	if doc.Holder != "" {
		fmt.Printf("  Holder: %s\n", doc.Holder)
	}
	if doc.Period != "" {
		fmt.Printf("  Period: %s\n", doc.Period)
	}
	fmt.Printf("  Output: %s\n", output)
	return nil
}

// inputLines reads the document's text lines: .txt files are taken verbatim
// (pre-extracted OCR dumps), PDFs go through text-layer extraction with an
// OCR fallback, images straight through OCR.
func inputLines(path string, forceOCR bool) ([]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".txt" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return strings.Split(string(data), "\n"), nil
	}

	var pages []string
	var err error
	if ext == ".pdf" && !forceOCR {
		pages, err = extractor.ExtractText(path)
		if err != nil {
			fmt.Printf("  No usable text layer, running OCR\n")
			pages, err = extractor.ExtractTextOCR(path)
		}
	} else {
		pages, err = extractor.ExtractTextOCR(path)
	}
	if err != nil {
		return nil, err
	}
	return extractor.SplitLines(pages), nil
}
