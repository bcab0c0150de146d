package handlers

import (
	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AIHandler struct {
	chatService *service.ChatService
	llmService  *service.LLMService
	validator   *validator.Validator
	logger      *zap.Logger
}

func NewAIHandler(chatService *service.ChatService, llmService *service.LLMService, v *validator.Validator, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		chatService: chatService,
		llmService:  llmService,
		validator:   v,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the assistant
// @Description Answered by the fine-tuned model, the general model, the keyword bot or a canned reply, in that order
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AIChatRequest true "Message and history"
// @Success 200 {object} dto.AIChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]string
// @Router /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.AIChatRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	return c.JSON(h.chatService.Answer(c.UserContext(), req.History, req.Message, true))
}

// LegalPrecedents godoc
// @Summary Find legal precedents
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.LegalPrecedentRequest true "Condition"
// @Success 200 {object} dto.LegalPrecedentResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/ai/legal-precedents [post]
func (h *AIHandler) LegalPrecedents(c *fiber.Ctx) error {
	var req dto.LegalPrecedentRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	resp, err := h.llmService.FindLegalPrecedents(c.UserContext(), req.Condition, req.ClaimType)
	if err != nil {
		if isTimeout(err) {
			return errorResponse(c, fiber.StatusGatewayTimeout, "AI request timed out")
		}
		h.logger.Error("Legal precedent search failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to find legal precedents")
	}

	return c.JSON(resp)
}

// AnalyzeDocumentText godoc
// @Summary Extract fields from document text with the model
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.DocumentTextAnalysisRequest true "Document text"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/ai/document-analysis [post]
func (h *AIHandler) AnalyzeDocumentText(c *fiber.Ctx) error {
	var req dto.DocumentTextAnalysisRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	fields, err := h.llmService.AnalyzeDocumentText(c.UserContext(), req.Text)
	if err != nil {
		if isTimeout(err) {
			return errorResponse(c, fiber.StatusGatewayTimeout, "AI request timed out")
		}
		h.logger.Error("Document text analysis failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to analyze document")
	}

	return c.JSON(fields)
}
