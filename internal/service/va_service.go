package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"valor-assist/internal/dto"
	"valor-assist/pkg/config"
	"valor-assist/pkg/metrics"

	"go.uber.org/zap"
)

var ErrVAUnavailable = errors.New("VA API unavailable")

// VAService wraps the VA Lighthouse sandbox APIs. Every call returns the
// upstream JSON body untouched, or a placeholder when the key is missing.
type VAService struct {
	baseURL    string
	cfg        config.VAConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewVAService(cfg config.VAConfig, logger *zap.Logger) *VAService {
	return &VAService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Configured reports which VA APIs have a key, keyed the same way as /api/health.
func (s *VAService) Configured() map[string]bool {
	return map[string]bool{
		"vaClaims":       s.cfg.ClaimsKey != "",
		"vaHealth":       s.cfg.HealthKey != "",
		"vaVerification": s.cfg.VerificationKey != "",
		"vaFacilities":   s.cfg.FacilitiesKey != "",
		"vaEducation":    s.cfg.EducationKey != "",
	}
}

func (s *VAService) GetClaimStatus(ctx context.Context, claimID, ssn string) (json.RawMessage, error) {
	if s.cfg.ClaimsKey == "" {
		return placeholder(map[string]any{
			"claimId": claimID,
			"status":  "PENDING",
			"message": "VA Claims API key required for live claim status",
		}), nil
	}

	path := "/services/claims/v2/veterans/" + url.PathEscape(claimID) + "/claims"
	headers := map[string]string{"X-VA-SSN": ssn}
	return s.do(ctx, http.MethodGet, path, nil, nil, s.cfg.ClaimsKey, headers)
}

func (s *VAService) GetPatient(ctx context.Context, icn string) (json.RawMessage, error) {
	if s.cfg.HealthKey == "" {
		return placeholder(map[string]any{
			"icn":     icn,
			"message": "VA Health API key required for patient records",
		}), nil
	}

	return s.do(ctx, http.MethodGet, "/services/fhir/v0/r4/Patient/"+url.PathEscape(icn), nil, nil, s.cfg.HealthKey, nil)
}

func (s *VAService) VerifyVeteran(ctx context.Context, req *dto.VerifyVeteranRequest) (json.RawMessage, error) {
	if s.cfg.VerificationKey == "" {
		return placeholder(map[string]any{
			"veteran_status": "unknown",
			"message":        "VA Veteran Confirmation API key required for status verification",
		}), nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodPost, "/services/veteran_confirmation/v1/status", nil, body, s.cfg.VerificationKey, nil)
}

func (s *VAService) ListFacilities(ctx context.Context, q *dto.FacilityQuery) (json.RawMessage, error) {
	if s.cfg.FacilitiesKey == "" {
		return placeholder(map[string]any{
			"data":    []any{},
			"message": "VA Facilities API key required for facility search",
		}), nil
	}

	params := url.Values{}
	if q.State != "" {
		params.Set("state", q.State)
	}
	if q.Zip != "" {
		params.Set("zip", q.Zip)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return s.do(ctx, http.MethodGet, "/services/va_facilities/v1/facilities", params, nil, s.cfg.FacilitiesKey, nil)
}

func (s *VAService) GetFacility(ctx context.Context, id string) (json.RawMessage, error) {
	if s.cfg.FacilitiesKey == "" {
		return placeholder(map[string]any{
			"id":      id,
			"message": "VA Facilities API key required for facility details",
		}), nil
	}

	return s.do(ctx, http.MethodGet, "/services/va_facilities/v1/facilities/"+url.PathEscape(id), nil, nil, s.cfg.FacilitiesKey, nil)
}

func (s *VAService) GetEducationBenefits(ctx context.Context, fileNumber string) (json.RawMessage, error) {
	if s.cfg.EducationKey == "" {
		return placeholder(map[string]any{
			"fileNumber": fileNumber,
			"message":    "VA Education API key required for GI Bill benefit details",
		}), nil
	}

	headers := map[string]string{"X-VA-File-Number": fileNumber}
	return s.do(ctx, http.MethodGet, "/services/benefits-education/v1/education/chapter33", nil, nil, s.cfg.EducationKey, headers)
}

func (s *VAService) do(ctx context.Context, method, path string, query url.Values, body []byte, apiKey string, headers map[string]string) (json.RawMessage, error) {
	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build VA request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	metrics.ObserveUpstream("va", err)
	if err != nil {
		s.logger.Error("VA API request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrVAUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrVAUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("VA API returned an error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: status %d", ErrVAUnavailable, resp.StatusCode)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrVAUnavailable)
	}
	return data, nil
}

func placeholder(v map[string]any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
