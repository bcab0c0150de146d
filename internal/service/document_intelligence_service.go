package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/pkg/config"
	"valor-assist/pkg/metrics"
	"valor-assist/pkg/retry"

	"go.uber.org/zap"
)

var (
	ErrAnalysisTimeout     = errors.New("document analysis timed out")
	ErrAnalysisFailed      = errors.New("document analysis failed")
	ErrAnalysisUnavailable = errors.New("document analysis service unavailable")
	ErrDocumentNotFound    = errors.New("document not found")

	errAnalysisRunning = errors.New("analysis still running")
)

const documentIntelAPIVersion = "2023-07-31"

const (
	fallbackClaimNumber      = "Not found"
	fallbackVeteranName      = "Not found"
	fallbackServiceConnected = "Undetermined"
	fallbackDisposition      = "No decision found"
	fallbackEffectiveDate    = "Not specified"
)

var (
	claimNumberPattern   = regexp.MustCompile(`(?i)(?:claim|file)\s*(?:number|no\.?|#)\s*[:#]?\s*(\d{6,10})`)
	veteranNamePattern   = regexp.MustCompile(`(?:(?i:veteran(?:'s)?\s+name|name\s+of\s+veteran)\s*:\s*|Dear\s+)((?:(?:Mr|Ms|Mrs)\.\s+)?[A-Z][A-Za-z'\-]+(?:[ \t]+[A-Z]\.?)?(?:[ \t]+[A-Z][A-Za-z'\-]+){0,2})`)
	notConnectedPattern  = regexp.MustCompile(`(?i)\bnot\s+service[\s-]connected\b|\bservice\s+connection\b[^.\n]{0,80}\bdenied\b`)
	connectedPattern     = regexp.MustCompile(`(?i)\bservice[\s-]connected\b|\bservice\s+connection\b[^.\n]{0,80}\bgranted\b`)
	dispositionPattern   = regexp.MustCompile(`(?i)\b(granted|denied|deferred|continued|increased|decreased|remanded|confirmed)\b`)
	effectiveDatePattern = regexp.MustCompile(`(?i)effective(?:\s+date)?[^.\n]{0,40}?((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}|\d{1,2}/\d{1,2}/\d{4}|\d{4}-\d{2}-\d{2})`)
)

// ExtractFields pulls the key decision-letter fields out of OCR text. Every
// matcher runs independently and falls back to its own placeholder.
func ExtractFields(text string) dto.ExtractedFields {
	fields := dto.ExtractedFields{
		ClaimNumber:      fallbackClaimNumber,
		VeteranName:      fallbackVeteranName,
		ServiceConnected: fallbackServiceConnected,
		Dispositions:     []string{fallbackDisposition},
		EffectiveDate:    fallbackEffectiveDate,
	}

	if m := claimNumberPattern.FindStringSubmatch(text); m != nil {
		fields.ClaimNumber = m[1]
	}
	if m := veteranNamePattern.FindStringSubmatch(text); m != nil {
		fields.VeteranName = strings.Join(strings.Fields(m[1]), " ")
	}

	switch {
	case notConnectedPattern.MatchString(text):
		fields.ServiceConnected = "No"
	case connectedPattern.MatchString(text):
		fields.ServiceConnected = "Yes"
	}

	if matches := dispositionPattern.FindAllString(text, -1); len(matches) > 0 {
		seen := make(map[string]bool, len(matches))
		dispositions := make([]string, 0, len(matches))
		for _, m := range matches {
			d := strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
			if !seen[d] {
				seen[d] = true
				dispositions = append(dispositions, d)
			}
		}
		fields.Dispositions = dispositions
	}

	if m := effectiveDatePattern.FindStringSubmatch(text); m != nil {
		fields.EffectiveDate = m[1]
	}

	return fields
}

// Confidence grades an extraction by how many matchers found something.
func Confidence(fields dto.ExtractedFields) string {
	found := 0
	if fields.ClaimNumber != fallbackClaimNumber {
		found++
	}
	if fields.VeteranName != fallbackVeteranName {
		found++
	}
	if fields.ServiceConnected != fallbackServiceConnected {
		found++
	}
	if len(fields.Dispositions) > 0 && fields.Dispositions[0] != fallbackDisposition {
		found++
	}
	if fields.EffectiveDate != fallbackEffectiveDate {
		found++
	}

	switch {
	case found >= 4:
		return "high"
	case found >= 2:
		return "medium"
	}
	return "low"
}

type DocumentIntelligenceService struct {
	endpoint   string
	apiKey     string
	model      string
	poll       retry.Config
	httpClient *http.Client
	ocr        *OCRService
	store      *repository.Store
	logger     *zap.Logger
}

func NewDocumentIntelligenceService(cfg config.DocumentIntelConfig, ocr *OCRService, store *repository.Store, logger *zap.Logger) *DocumentIntelligenceService {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 30
	}

	return &DocumentIntelligenceService{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		poll: retry.Config{
			MaxAttempts:  maxAttempts,
			InitialDelay: time.Second,
			MaxDelay:     8 * time.Second,
			Multiplier:   2,
			Logger:       logger,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		ocr:        ocr,
		store:      store,
		logger:     logger,
	}
}

func (s *DocumentIntelligenceService) Configured() bool {
	return s.endpoint != "" && s.apiKey != ""
}

type analyzeOperation struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		Content string            `json:"content"`
		Pages   []json.RawMessage `json:"pages"`
	} `json:"analyzeResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeURL submits a document to Azure Document Intelligence, polls the
// operation with bounded exponential backoff and runs ExtractFields over the
// returned text.
func (s *DocumentIntelligenceService) AnalyzeURL(ctx context.Context, documentURL string) (*dto.DocumentAnalysisResponse, error) {
	if !s.Configured() {
		return &dto.DocumentAnalysisResponse{
			Fields:     ExtractFields(""),
			Confidence: "low",
			Source:     "placeholder",
		}, nil
	}

	operationURL, err := s.submit(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	op, err := retry.DoWithResult(ctx, s.poll, func() (*analyzeOperation, error) {
		return s.fetchOperation(ctx, operationURL)
	})
	if err != nil {
		if errors.Is(err, retry.ErrAttemptsExhausted) {
			s.logger.Warn("Document analysis polling exhausted",
				zap.String("operation", operationURL),
				zap.Int("max_attempts", s.poll.MaxAttempts),
			)
			return nil, fmt.Errorf("%w after %d polls", ErrAnalysisTimeout, s.poll.MaxAttempts)
		}
		return nil, err
	}

	fields := ExtractFields(op.AnalyzeResult.Content)
	return &dto.DocumentAnalysisResponse{
		Fields:     fields,
		Confidence: Confidence(fields),
		Source:     "azure-document-intelligence",
		PageCount:  len(op.AnalyzeResult.Pages),
	}, nil
}

func (s *DocumentIntelligenceService) submit(ctx context.Context, documentURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"urlSource": documentURL})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s", s.endpoint, s.model, documentIntelAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	metrics.ObserveUpstream("document-intelligence", err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: submit returned status %d", ErrAnalysisUnavailable, resp.StatusCode)
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("%w: response has no Operation-Location", ErrAnalysisUnavailable)
	}
	return operationURL, nil
}

// fetchOperation returns errAnalysisRunning while the operation is pending so
// the retry loop keeps polling; anything else stops it.
func (s *DocumentIntelligenceService) fetchOperation(ctx context.Context, operationURL string) (*analyzeOperation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retry.Permanent(fmt.Errorf("%w: poll returned status %d", ErrAnalysisUnavailable, resp.StatusCode))
	}

	var op analyzeOperation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return nil, retry.Permanent(fmt.Errorf("%w: invalid poll response: %v", ErrAnalysisUnavailable, err))
	}

	switch op.Status {
	case "succeeded":
		return &op, nil
	case "failed":
		msg := "unknown error"
		if op.Error != nil {
			msg = op.Error.Message
		}
		return nil, retry.Permanent(fmt.Errorf("%w: %s", ErrAnalysisFailed, msg))
	}
	return nil, errAnalysisRunning
}

// AnalyzeUpload extracts text locally and runs ExtractFields over it.
func (s *DocumentIntelligenceService) AnalyzeUpload(ctx context.Context, reader io.Reader, filename string) (*dto.DocumentAnalysisResponse, error) {
	text, pages, err := s.ocr.ExtractTextFromReader(ctx, reader, filename)
	if err != nil {
		return nil, err
	}

	fields := ExtractFields(text)
	return &dto.DocumentAnalysisResponse{
		Fields:     fields,
		Confidence: Confidence(fields),
		Source:     "local-extraction",
		PageCount:  pages,
	}, nil
}

// SaveResult stores an analysis against a generated claim document.
func (s *DocumentIntelligenceService) SaveResult(ctx context.Context, documentID int64, result *dto.DocumentAnalysisResponse) error {
	if _, err := s.store.Documents.GetByID(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	fields, err := json.Marshal(result.Fields)
	if err != nil {
		return err
	}

	record := &models.DocumentAnalysisResult{
		DocumentID:      documentID,
		ExtractedFields: fields,
		Confidence:      result.Confidence,
	}
	if err := s.store.Analyses.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}

	result.ResultID = record.ID
	return nil
}

func (s *DocumentIntelligenceService) ListResults(ctx context.Context, documentID int64) ([]dto.StoredAnalysisResponse, error) {
	results, err := s.store.Analyses.ListByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StoredAnalysisResponse, 0, len(results))
	for _, r := range results {
		var fields dto.ExtractedFields
		if err := json.Unmarshal(r.ExtractedFields, &fields); err != nil {
			s.logger.Warn("Stored analysis has unreadable fields", zap.Int64("id", r.ID), zap.Error(err))
		}
		out = append(out, dto.StoredAnalysisResponse{
			ID:              r.ID,
			DocumentID:      r.DocumentID,
			ExtractedFields: fields,
			Confidence:      r.Confidence,
			CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
