package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// maxUploadBytes bounds what ExtractTextFromReader will buffer.
const maxUploadBytes = 20 << 20

type OCRService struct {
	llmService *LLMService
	logger     *zap.Logger
}

// NewOCRService extracts PDFs locally with go-fitz and sends images to the
// vision-capable chat model when one is configured.
func NewOCRService(llmService *LLMService, logger *zap.Logger) *OCRService {
	return &OCRService{
		llmService: llmService,
		logger:     logger,
	}
}

// ExtractTextFromReader reads an uploaded decision letter or record and
// returns its text and page count. Supported formats: .pdf, .jpg, .jpeg, .png
func (s *OCRService) ExtractTextFromReader(ctx context.Context, reader io.Reader, filename string) (string, int, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".jpg", ".jpeg", ".png":
	default:
		return "", 0, fmt.Errorf("%w: %s (supported: pdf, jpg, jpeg, png)", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxUploadBytes+1))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return "", 0, fmt.Errorf("%w: file exceeds %d MB", ErrUnsupportedFormat, maxUploadBytes>>20)
	}

	var (
		text  string
		pages int
	)
	if ext == ".pdf" {
		text, pages, err = s.extractTextFromPDF(data)
		if err != nil {
			return "", 0, fmt.Errorf("failed to extract text from PDF: %w", err)
		}
	} else {
		mime := "image/png"
		if ext != ".png" {
			mime = "image/jpeg"
		}
		text, err = s.llmService.ExtractTextFromImage(ctx, data, mime)
		if err != nil {
			return "", 0, fmt.Errorf("failed to extract text from image: %w", err)
		}
		pages = 1
	}

	text = strings.TrimSpace(sanitizeUTF8(text))

	s.logger.Info("Text extraction completed",
		zap.String("file", filename),
		zap.String("method", extractionMethod(ext)),
		zap.Int("pages", pages),
		zap.Int("text_length", len(text)),
	)

	if text == "" {
		return "", pages, fmt.Errorf("no text extracted from %s", filename)
	}
	return text, pages, nil
}

func (s *OCRService) extractTextFromPDF(data []byte) (string, int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), doc.NumPage(), nil
}

func extractionMethod(ext string) string {
	if ext == ".pdf" {
		return "go-fitz"
	}
	return "vision-model"
}
