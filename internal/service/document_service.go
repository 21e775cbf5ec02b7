package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"babysimple/internal/model"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"
)

// DocumentService turns an uploaded file into raw input text. Extraction is
// synchronous; the original file is archived best-effort when an archive is
// configured.
type DocumentService struct {
	archive *ArchiveService
	logger  zerolog.Logger
}

// NewDocumentService creates a DocumentService. archive may be nil.
func NewDocumentService(archive *ArchiveService, logger zerolog.Logger) *DocumentService {
	return &DocumentService{
		archive: archive,
		logger:  logger.With().Str("service", "DocumentService").Logger(),
	}
}

// ExtractText enforces the tier's size and file-type gates, then extracts
// plain text from the file.
func (s *DocumentService) ExtractText(ctx context.Context, tier model.Tier, userID, filename string, data []byte) (string, error) {
	limits := model.LimitsFor(tier)
	if int64(len(data)) > limits.FileLimit {
		return "", ErrFileTooLarge
	}

	name := strings.ToLower(filename)
	ext := filepath.Ext(name)

	isPDF := ext == ".pdf"
	isDocx := ext == ".docx"
	isImage := ext == ".png" || ext == ".jpg" || ext == ".jpeg"

	if ext == ".doc" {
		return "", ErrLegacyDoc
	}
	if (isPDF || isDocx) && !tier.AllowsDocumentUpload() {
		return "", ErrDocumentRequiresPro
	}
	if isImage && !tier.AllowsImageOCR() {
		return "", ErrImageRequiresEnterprise
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, userID, filename, data); err != nil {
			s.logger.Warn().Err(err).Str("file", filename).Msg("Failed to archive upload")
		}
	}

	var (
		text string
		err  error
	)
	switch {
	case isPDF:
		text, err = extractPDFText(data)
	case isDocx:
		text, err = extractDocxText(data)
	case isImage:
		text, err = extractImageText(data)
	default:
		return string(data), nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("file", filename).Msg("File parsing failed")
		return "", fmt.Errorf("%w: %s", ErrParse, err.Error())
	}
	return text, nil
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting pdf page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDocxText pulls the raw text of every paragraph and table.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			sb.WriteString(v.String())
			sb.WriteString("\n")
		case *docx.Table:
			sb.WriteString(v.String())
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// extractImageText runs English OCR over the image bytes.
func extractImageText(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("configuring OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("loading image for OCR: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("running OCR: %w", err)
	}
	return text, nil
}
