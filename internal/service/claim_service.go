package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/pkg/metrics"

	"go.uber.org/zap"
)

var ErrClaimNotFound = errors.New("claim not found")

const AnalysisPendingMessage = "Claim submitted, analysis pending"

// ClaimAnalyzer is the part of LLMService the claim workflow depends on.
type ClaimAnalyzer interface {
	AnalyzeClaim(ctx context.Context, claim *models.Claim) (*dto.ClaimAnalysis, error)
	GenerateDocumentTemplate(ctx context.Context, claim *models.Claim, docType models.DocumentType) (string, error)
}

type ClaimService struct {
	store    *repository.Store
	analyzer ClaimAnalyzer
	logger   *zap.Logger
}

func NewClaimService(store *repository.Store, analyzer ClaimAnalyzer, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		store:    store,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Create stores the claim and its audit entry in one transaction, then runs
// the AI analysis. An analysis failure never fails the submission.
func (s *ClaimService) Create(ctx context.Context, req *dto.CreateClaimRequest, userID *int64, ip string) (*dto.CreateClaimResponse, error) {
	claim := &models.Claim{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            strings.TrimSpace(req.Phone),
		Branch:           req.Branch,
		ServiceStartDate: req.ServiceStartDate,
		ServiceEndDate:   req.ServiceEndDate,
		DischargeType:    req.DischargeType,
		ClaimTypes:       req.ClaimTypes,
		Description:      sanitizeUTF8(req.Description),
		Status:           models.ClaimStatusSubmitted,
		UserID:           userID,
	}

	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		if err := tx.Claims.Create(ctx, claim); err != nil {
			return fmt.Errorf("failed to create claim: %w", err)
		}
		return s.audit(ctx, tx, userID, models.AuditActionClaimCreate, claim.ID, ip, map[string]any{
			"claimTypes": claim.ClaimTypes,
			"branch":     claim.Branch,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Claim submitted",
		zap.Int64("claim_id", claim.ID),
		zap.Strings("claim_types", claim.ClaimTypes),
	)

	analysis, err := s.analyze(ctx, claim, userID, ip)
	if err != nil {
		s.logger.Warn("Claim analysis failed, leaving claim pending",
			zap.Int64("claim_id", claim.ID),
			zap.Error(err),
		)
		metrics.ClaimsSubmitted.WithLabelValues("pending").Inc()
		return &dto.CreateClaimResponse{
			Claim:   ToClaimResponse(claim),
			Message: AnalysisPendingMessage,
		}, nil
	}

	metrics.ClaimsSubmitted.WithLabelValues("completed").Inc()
	return &dto.CreateClaimResponse{
		Claim:    ToClaimResponse(claim),
		Analysis: analysis,
	}, nil
}

func (s *ClaimService) analyze(ctx context.Context, claim *models.Claim, userID *int64, ip string) (*dto.ClaimAnalysis, error) {
	analysis, err := s.analyzer.AnalyzeClaim(ctx, claim)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}
	if err := s.store.Claims.UpdateAnalysis(ctx, claim.ID, raw, models.ClaimStatusAnalyzed); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	claim.Analysis = raw
	claim.Status = models.ClaimStatusAnalyzed

	if err := s.audit(ctx, s.store, userID, models.AuditActionClaimAnalyze, claim.ID, ip, map[string]any{
		"strengthScore": analysis.StrengthScore,
	}); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", models.AuditActionClaimAnalyze), zap.Error(err))
	}
	return analysis, nil
}

func (s *ClaimService) Get(ctx context.Context, id int64) (*models.Claim, error) {
	claim, err := s.store.Claims.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return claim, nil
}

// List returns every claim, newest first, or all claims for one email when
// email is set. Callers are expected to restrict it to staff.
func (s *ClaimService) List(ctx context.Context, email string, limit, offset int) ([]*models.Claim, error) {
	if email != "" {
		return s.store.Claims.ListByEmail(ctx, strings.ToLower(email))
	}
	limit, offset = pageBounds(limit, offset)
	return s.store.Claims.ListRecent(ctx, limit, offset)
}

// ListForUser returns only the claims submitted while userID was signed in.
func (s *ClaimService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Claim, error) {
	limit, offset = pageBounds(limit, offset)
	return s.store.Claims.ListByUser(ctx, userID, limit, offset)
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// UpdateStatus sets any status string; there is no transition table.
func (s *ClaimService) UpdateStatus(ctx context.Context, id int64, status string, userID *int64, ip string) (*models.Claim, error) {
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		if err := tx.Claims.UpdateStatus(ctx, id, status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrClaimNotFound
			}
			return err
		}
		return s.audit(ctx, tx, userID, models.AuditActionClaimStatus, id, ip, map[string]any{"status": status})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// CreateDocument drafts a supporting document for the claim and stores it.
func (s *ClaimService) CreateDocument(ctx context.Context, claimID int64, docType models.DocumentType, userID *int64, ip string) (*models.Document, error) {
	claim, err := s.Get(ctx, claimID)
	if err != nil {
		return nil, err
	}

	content, err := s.analyzer.GenerateDocumentTemplate(ctx, claim, docType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}

	doc := &models.Document{
		ClaimID:      claimID,
		DocumentType: docType,
		Title:        fmt.Sprintf("%s - %s %s", docType.Title(), claim.FirstName, claim.LastName),
		Content:      sanitizeUTF8(content),
	}
	if err := s.store.Documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if err := s.audit(ctx, s.store, userID, models.AuditActionDocumentCreate, claimID, ip, map[string]any{
		"documentId":   doc.ID,
		"documentType": docType,
	}); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", models.AuditActionDocumentCreate), zap.Error(err))
	}

	s.logger.Info("Claim document generated",
		zap.Int64("claim_id", claimID),
		zap.Int64("document_id", doc.ID),
		zap.String("type", string(docType)),
	)
	return doc, nil
}

func (s *ClaimService) ListDocuments(ctx context.Context, claimID int64) ([]*models.Document, error) {
	if _, err := s.Get(ctx, claimID); err != nil {
		return nil, err
	}
	return s.store.Documents.ListByClaimID(ctx, claimID)
}

func (s *ClaimService) audit(ctx context.Context, store *repository.Store, userID *int64, action string, claimID int64, ip string, details map[string]any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return store.Audit.Create(ctx, &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: "claim",
		EntityID:   strconv.FormatInt(claimID, 10),
		Details:    raw,
		IPAddress:  ip,
	})
}

func ToClaimResponse(c *models.Claim) dto.ClaimResponse {
	claimTypes := c.ClaimTypes
	if claimTypes == nil {
		claimTypes = []string{}
	}
	return dto.ClaimResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		Branch:           c.Branch,
		ServiceStartDate: c.ServiceStartDate,
		ServiceEndDate:   c.ServiceEndDate,
		DischargeType:    c.DischargeType,
		ClaimTypes:       claimTypes,
		Description:      c.Description,
		Status:           c.Status,
		Analysis:         c.Analysis,
		CreatedAt:        c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToDocumentResponse(d *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:           d.ID,
		ClaimID:      d.ClaimID,
		DocumentType: string(d.DocumentType),
		Title:        d.Title,
		Content:      d.Content,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
