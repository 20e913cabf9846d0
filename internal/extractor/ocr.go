package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// French plus English covers the statements this engine sees.
const ocrLangs = "fra+eng"

// ExtractTextOCR runs Tesseract over a scanned document. PDFs are first
// rasterized page by page with pdftoppm; plain images go straight to
// Tesseract. Requires poppler-utils and tesseract-ocr on PATH.
func ExtractTextOCR(filePath string) ([]string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}

	if strings.ToLower(filepath.Ext(filePath)) != ".pdf" {
		text, err := ocrImage(filePath)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI keeps thousands-separated amounts legible.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", "300", "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %v", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		text, err := ocrImage(imgFile)
		if err != nil {
			// Some pages may still work.
			fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v\n", imgFile, err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("tesseract OCR produced no text from %d page images", len(imageFiles))
	}
	return pages, nil
}

// ocrImage runs Tesseract on a single image. PSM 6 (uniform block of text)
// with preserved interword spaces keeps table columns apart, which the row
// parsers depend on.
func ocrImage(imgFile string) (string, error) {
	outBase := strings.TrimSuffix(imgFile, filepath.Ext(imgFile)) + "-ocr"
	cmd := exec.Command("tesseract", imgFile, outBase,
		"-l", ocrLangs, "--psm", "6", "-c", "preserve_interword_spaces=1")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract failed: %v (output: %s)", err, string(out))
	}

	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("tesseract output missing: %v", err)
	}
	return strings.TrimSpace(string(data)), nil
}
