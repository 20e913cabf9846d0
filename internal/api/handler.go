package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/ocr-statement-engine/internal/extractor"
	"github.com/insightdelivered/ocr-statement-engine/internal/models"
	"github.com/insightdelivered/ocr-statement-engine/internal/parser"
	"github.com/insightdelivered/ocr-statement-engine/internal/writer"
)

// Version reported by the health endpoint and the CLI.
const Version = "1.2.0"

// ExtractResponse is the JSON response from POST /api/extract.
type ExtractResponse struct {
	Success  bool                      `json:"success"`
	Error    string                    `json:"error,omitempty"`
	Family   string                    `json:"family,omitempty"`
	Document *models.StatementDocument `json:"document,omitempty"`
	Count    int                       `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct{}

// RegisterRoutes sets up the API routes on the fiber app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.handleHealth)
	app.Post("/api/extract", h.handleExtract)
	app.Post("/api/export", h.handleExport)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// handleExtract accepts either a multipart "file" (PDF or image) or a
// pre-extracted "text" form value, runs the extraction pipeline and returns
// the structured document. With format=csv or format=xlsx the serialized
// artifact is returned instead of JSON.
func (h *Handler) handleExtract(c *fiber.Ctx) error {
	lines, err := h.inputLines(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	in := models.Input{Lines: lines}

	var doc *models.StatementDocument
	var applied models.Family
	if family := c.FormValue("family"); family != "" {
		switch models.Family(family) {
		case models.FamilyGeneric, models.FamilyLedger:
			applied = models.Family(family)
			in.Lines = parser.NormalizeLines(in.Lines)
			doc, err = parser.New(applied).Parse(in)
		default:
			return writeError(c, fiber.StatusBadRequest,
				fmt.Sprintf("unknown family %q; use generic or ledger", family))
		}
	} else {
		applied = parser.DetectFamily(parser.NormalizeLines(lines))
		doc, err = parser.Extract(in)
	}
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	switch c.FormValue("format") {
	case "csv":
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&buf, doc); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.csv"`)
		return c.Send(buf.Bytes())
	case "xlsx":
		return sendXLSX(c, doc)
	}

	return c.JSON(ExtractResponse{
		Success:  true,
		Family:   string(applied),
		Document: doc,
		Count:    len(doc.Transactions),
	})
}

// handleExport takes a (possibly hand-corrected) document as JSON and
// returns it as an xlsx attachment.
func (h *Handler) handleExport(c *fiber.Ctx) error {
	var doc models.StatementDocument
	if err := c.BodyParser(&doc); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("invalid document JSON: %v", err))
	}
	return sendXLSX(c, &doc)
}

func sendXLSX(c *fiber.Ctx, doc *models.StatementDocument) error {
	var buf bytes.Buffer
	w := &writer.XLSXWriter{}
	if err := w.Write(&buf, doc); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.xlsx"`)
	return c.Send(buf.Bytes())
}

// inputLines resolves the request's text lines: an uploaded file goes
// through PDF text extraction (or OCR when forced or when the text layer is
// unusable); a "text" form value is used as-is.
func (h *Handler) inputLines(c *fiber.Ctx) ([]string, error) {
	if text := c.FormValue("text"); text != "" {
		return strings.Split(text, "\n"), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("no file uploaded and no text provided; use form field 'file' or 'text'")
	}

	tmp, err := os.CreateTemp("", "statement-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fh, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to save uploaded file: %v", err)
	}

	forceOCR := c.FormValue("ocr") == "true"
	isPDF := strings.EqualFold(filepath.Ext(fh.Filename), ".pdf")

	var pages []string
	if isPDF && !forceOCR {
		pages, err = extractor.ExtractText(tmpPath)
		if err != nil {
			// No text layer; fall through to OCR.
			pages, err = extractor.ExtractTextOCR(tmpPath)
		}
	} else {
		pages, err = extractor.ExtractTextOCR(tmpPath)
	}
	if err != nil {
		return nil, err
	}
	return extractor.SplitLines(pages), nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{Success: false, Error: msg})
}
