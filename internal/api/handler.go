// Package api exposes the extraction engine over HTTP: an issuer-scoped
// parse endpoint accepting a PDF upload, and a health probe.
package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cardlens/statement-parser/internal/config"
	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/models"
	"github.com/cardlens/statement-parser/internal/parser"
	"github.com/cardlens/statement-parser/internal/schema"
)

var log = logrus.StandardLogger()

// Register mounts the API routes on the app.
func Register(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/parse/:issuer", HandleParse)
}

// errorResponse is the JSON body for every failure.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Success: false, Error: msg})
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": config.Version,
	})
}

// HandleParse accepts a multipart "file" upload and returns the parsed
// statement. Dispatch errors map to 400, unreadable documents to 422.
func HandleParse(c *fiber.Ctx) error {
	issuerCode := c.Params("issuer")

	// Reject unknown issuers before touching the upload.
	if _, err := models.ParseIssuer(issuerCode); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "only PDF files are supported")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to create temp file")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(file, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
	}

	doc, err := document.OpenPDF(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("cannot open document: %v", err))
	}
	defer doc.Close()

	result, err := parser.Parse(issuerCode, doc)
	if err != nil {
		var unreadable *document.UnreadableError
		if errors.As(err, &unreadable) {
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		var unsupported *models.UnsupportedIssuerError
		if errors.As(err, &unsupported) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	log.WithFields(logrus.Fields{
		"issuer":       issuerCode,
		"file":         file.Filename,
		"transactions": len(result.Record.Transactions),
		"warnings":     len(result.Warnings),
	}).Info("statement parsed")

	return c.JSON(schema.Assemble(result))
}
