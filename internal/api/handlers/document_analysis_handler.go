package handlers

import (
	"errors"
	"strconv"

	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentAnalysisHandler struct {
	diService *service.DocumentIntelligenceService
	validator *validator.Validator
	logger    *zap.Logger
}

func NewDocumentAnalysisHandler(diService *service.DocumentIntelligenceService, v *validator.Validator, logger *zap.Logger) *DocumentAnalysisHandler {
	return &DocumentAnalysisHandler{
		diService: diService,
		validator: v,
		logger:    logger,
	}
}

// AnalyzeDocument godoc
// @Summary Analyze a VA decision letter by URL
// @Description Runs Azure Document Intelligence and extracts claim number, veteran name, service connection, dispositions and effective date. Stored when documentId is given.
// @Tags document-analysis
// @Accept json
// @Produce json
// @Param request body dto.DocumentAnalysisRequest true "Document URL"
// @Success 200 {object} dto.DocumentAnalysisResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /api/document-analysis [post]
func (h *DocumentAnalysisHandler) AnalyzeDocument(c *fiber.Ctx) error {
	var req dto.DocumentAnalysisRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.diService.AnalyzeURL(c.UserContext(), req.DocumentURL)
	if err != nil {
		return h.analysisError(c, err)
	}

	if req.DocumentID != nil {
		if err := h.diService.SaveResult(c.UserContext(), *req.DocumentID, result); err != nil {
			return h.analysisError(c, err)
		}
	}

	return c.JSON(result)
}

// UploadDocument godoc
// @Summary Analyze an uploaded decision letter
// @Description Extracts text locally from a PDF or image and runs the same field extraction
// @Tags document-analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Decision letter (pdf, jpg, png)"
// @Param documentId formData int false "Claim document to attach the result to"
// @Success 200 {object} dto.DocumentAnalysisResponse
// @Failure 400 {object} map[string]string
// @Router /api/document-analysis/upload [post]
func (h *DocumentAnalysisHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "File is required")
	}

	var documentID int64
	if raw := c.FormValue("documentId"); raw != "" {
		documentID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || documentID <= 0 {
			return errorResponse(c, fiber.StatusBadRequest, "Invalid document ID")
		}
	}

	src, err := file.Open()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	result, err := h.diService.AnalyzeUpload(c.UserContext(), src, file.Filename)
	if err != nil {
		return h.analysisError(c, err)
	}

	if documentID > 0 {
		if err := h.diService.SaveResult(c.UserContext(), documentID, result); err != nil {
			return h.analysisError(c, err)
		}
	}

	return c.JSON(result)
}

// ListResults godoc
// @Summary Stored analyses for a document
// @Tags document-analysis
// @Produce json
// @Param documentId path int true "Claim document ID"
// @Success 200 {array} dto.StoredAnalysisResponse
// @Failure 400 {object} map[string]string
// @Router /api/document-analysis/{documentId} [get]
func (h *DocumentAnalysisHandler) ListResults(c *fiber.Ctx) error {
	id, ok := paramID(c, "documentId")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid document ID")
	}

	results, err := h.diService.ListResults(c.UserContext(), id)
	if err != nil {
		h.logger.Error("Failed to list analysis results", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list analysis results")
	}
	return c.JSON(results)
}

func (h *DocumentAnalysisHandler) analysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat):
		return errorResponse(c, fiber.StatusBadRequest, "Unsupported file format. Upload a PDF, JPG or PNG.")
	case errors.Is(err, service.ErrDocumentNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrAnalysisTimeout), isTimeout(err):
		return errorResponse(c, fiber.StatusGatewayTimeout, "Document analysis timed out")
	case errors.Is(err, service.ErrAnalysisFailed):
		h.logger.Warn("Document analysis reported failure", zap.Error(err))
		return errorResponse(c, fiber.StatusBadGateway, "Document analysis failed")
	}
	h.logger.Error("Document analysis failed", zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, "Failed to analyze document")
}
