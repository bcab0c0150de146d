package handlers

import (
	"errors"

	"valor-assist/internal/dto"
	"valor-assist/internal/models"
	"valor-assist/internal/service"
	"valor-assist/pkg/middleware"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ClaimHandler struct {
	claimService *service.ClaimService
	validator    *validator.Validator
	logger       *zap.Logger
}

func NewClaimHandler(claimService *service.ClaimService, v *validator.Validator, logger *zap.Logger) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
		validator:    v,
		logger:       logger,
	}
}

// CreateClaim godoc
// @Summary Submit a claim
// @Description Store a lead-form submission and run AI analysis on it. Analysis failures leave the claim pending.
// @Tags claims
// @Accept json
// @Produce json
// @Param request body dto.CreateClaimRequest true "Claim"
// @Success 201 {object} dto.CreateClaimResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/claims [post]
func (h *ClaimHandler) CreateClaim(c *fiber.Ctx) error {
	var req dto.CreateClaimRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	resp, err := h.claimService.Create(c.UserContext(), &req, middleware.CurrentUserID(c), c.IP())
	if err != nil {
		h.logger.Error("Failed to create claim", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to submit claim")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetClaim godoc
// @Summary Get a claim
// @Tags claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/claims/{id} [get]
func (h *ClaimHandler) GetClaim(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid claim ID")
	}

	claim, err := h.claimService.Get(c.UserContext(), id)
	if err != nil {
		return h.claimError(c, err, "Failed to get claim")
	}

	return c.JSON(service.ToClaimResponse(claim))
}

// ListClaims godoc
// @Summary List claims
// @Description Claims submitted by the signed-in user, most recent first. Admins see every claim and may filter by email.
// @Tags claims
// @Produce json
// @Param email query string false "Filter by email (admin only)"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ClaimResponse
// @Failure 401 {object} map[string]string
// @Router /api/claims [get]
func (h *ClaimHandler) ListClaims(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	limit, offset := c.QueryInt("limit", 20), c.QueryInt("offset", 0)
	var (
		claims []*models.Claim
		err    error
	)
	if user.Role == models.RoleAdmin {
		claims, err = h.claimService.List(c.UserContext(), c.Query("email"), limit, offset)
	} else {
		claims, err = h.claimService.ListForUser(c.UserContext(), user.ID, limit, offset)
	}
	if err != nil {
		h.logger.Error("Failed to list claims", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list claims")
	}

	out := make([]dto.ClaimResponse, 0, len(claims))
	for _, claim := range claims {
		out = append(out, service.ToClaimResponse(claim))
	}
	return c.JSON(out)
}

// UpdateClaimStatus godoc
// @Summary Update claim status
// @Description Admin only. Status is a free string.
// @Tags claims
// @Accept json
// @Produce json
// @Param id path int true "Claim ID"
// @Param request body dto.UpdateClaimStatusRequest true "New status"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/claims/{id}/status [patch]
func (h *ClaimHandler) UpdateClaimStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid claim ID")
	}

	var req dto.UpdateClaimStatusRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	claim, err := h.claimService.UpdateStatus(c.UserContext(), id, req.Status, middleware.CurrentUserID(c), c.IP())
	if err != nil {
		return h.claimError(c, err, "Failed to update claim")
	}

	return c.JSON(service.ToClaimResponse(claim))
}

// CreateDocument godoc
// @Summary Generate a claim document
// @Description Draft a supporting document (personal statement, buddy statement, nexus letter request, notice of disagreement)
// @Tags claims
// @Accept json
// @Produce json
// @Param id path int true "Claim ID"
// @Param request body dto.CreateDocumentRequest true "Document type"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/claims/{id}/documents [post]
func (h *ClaimHandler) CreateDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid claim ID")
	}

	var req dto.CreateDocumentRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	doc, err := h.claimService.CreateDocument(c.UserContext(), id, models.DocumentType(req.DocumentType), middleware.CurrentUserID(c), c.IP())
	if err != nil {
		return h.claimError(c, err, "Failed to generate document")
	}

	return c.Status(fiber.StatusCreated).JSON(service.ToDocumentResponse(doc))
}

// ListDocuments godoc
// @Summary List claim documents
// @Tags claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {array} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/claims/{id}/documents [get]
func (h *ClaimHandler) ListDocuments(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid claim ID")
	}

	docs, err := h.claimService.ListDocuments(c.UserContext(), id)
	if err != nil {
		return h.claimError(c, err, "Failed to list documents")
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, service.ToDocumentResponse(doc))
	}
	return c.JSON(out)
}

func (h *ClaimHandler) claimError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrClaimNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Claim not found")
	case isTimeout(err):
		return errorResponse(c, fiber.StatusGatewayTimeout, "Upstream request timed out")
	}
	h.logger.Error(message, zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, message)
}
