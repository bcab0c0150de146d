package handlers

import (
	"encoding/json"

	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VAHandler proxies the VA sandbox APIs. Bodies are passed through as-is.
type VAHandler struct {
	vaService *service.VAService
	validator *validator.Validator
	logger    *zap.Logger
}

func NewVAHandler(vaService *service.VAService, v *validator.Validator, logger *zap.Logger) *VAHandler {
	return &VAHandler{
		vaService: vaService,
		validator: v,
		logger:    logger,
	}
}

func (h *VAHandler) send(c *fiber.Ctx, body json.RawMessage, err error, what string) error {
	if err != nil {
		if isTimeout(err) {
			return errorResponse(c, fiber.StatusGatewayTimeout, "VA API request timed out")
		}
		h.logger.Error("VA API call failed", zap.String("api", what), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to fetch "+what)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetClaimStatus godoc
// @Summary VA claim status
// @Tags va
// @Produce json
// @Param claimId path string true "Veteran or claim identifier"
// @Param ssn query string true "Veteran SSN"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/va/claims/{claimId} [get]
func (h *VAHandler) GetClaimStatus(c *fiber.Ctx) error {
	ssn := c.Query("ssn")
	if ssn == "" {
		return errorResponse(c, fiber.StatusBadRequest, "SSN is required")
	}
	body, err := h.vaService.GetClaimStatus(c.UserContext(), c.Params("claimId"), ssn)
	return h.send(c, body, err, "claim status")
}

// GetPatient godoc
// @Summary VA health record
// @Tags va
// @Produce json
// @Param icn path string true "Integration control number"
// @Success 200 {object} map[string]interface{}
// @Router /api/va/patient/{icn} [get]
func (h *VAHandler) GetPatient(c *fiber.Ctx) error {
	body, err := h.vaService.GetPatient(c.UserContext(), c.Params("icn"))
	return h.send(c, body, err, "patient record")
}

// VerifyVeteran godoc
// @Summary Confirm veteran status
// @Tags va
// @Accept json
// @Produce json
// @Param request body dto.VerifyVeteranRequest true "Veteran identity"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/va/verify [post]
func (h *VAHandler) VerifyVeteran(c *fiber.Ctx) error {
	var req dto.VerifyVeteranRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}
	body, err := h.vaService.VerifyVeteran(c.UserContext(), &req)
	return h.send(c, body, err, "veteran status")
}

// ListFacilities godoc
// @Summary VA facilities
// @Tags va
// @Produce json
// @Param state query string false "State code"
// @Param zip query string false "ZIP code"
// @Param type query string false "Facility type"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/va/facilities [get]
func (h *VAHandler) ListFacilities(c *fiber.Ctx) error {
	var q dto.FacilityQuery
	if err := c.QueryParser(&q); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	body, err := h.vaService.ListFacilities(c.UserContext(), &q)
	return h.send(c, body, err, "facilities")
}

// GetFacility godoc
// @Summary VA facility
// @Tags va
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/va/facilities/{id} [get]
func (h *VAHandler) GetFacility(c *fiber.Ctx) error {
	body, err := h.vaService.GetFacility(c.UserContext(), c.Params("id"))
	return h.send(c, body, err, "facility")
}

// GetEducationBenefits godoc
// @Summary Post-9/11 GI Bill status
// @Tags va
// @Produce json
// @Param fileNumber path string true "VA file number"
// @Success 200 {object} map[string]interface{}
// @Router /api/va/education/{fileNumber} [get]
func (h *VAHandler) GetEducationBenefits(c *fiber.Ctx) error {
	body, err := h.vaService.GetEducationBenefits(c.UserContext(), c.Params("fileNumber"))
	return h.send(c, body, err, "education benefits")
}
