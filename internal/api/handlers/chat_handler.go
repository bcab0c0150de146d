package handlers

import (
	"errors"

	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/middleware"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	validator   *validator.Validator
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, v *validator.Validator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   v,
		logger:      logger,
	}
}

// CreateUser godoc
// @Summary Create a chat identity
// @Description Issues an Azure Communication Services identity, or a simulated one when ACS is not configured
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.CreateChatUserRequest true "Display name"
// @Success 201 {object} dto.ChatIdentity
// @Failure 400 {object} map[string]interface{}
// @Router /api/chat/users [post]
func (h *ChatHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateChatUserRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	identity, err := h.chatService.CreateUser(c.UserContext(), req.DisplayName)
	if err != nil {
		return h.chatError(c, err, "Failed to create chat user")
	}
	return c.Status(fiber.StatusCreated).JSON(identity)
}

// CreateThread godoc
// @Summary Create a chat thread
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.CreateThreadRequest true "Topic and participants"
// @Success 201 {object} dto.ChatThreadResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/chat/threads [post]
func (h *ChatHandler) CreateThread(c *fiber.Ctx) error {
	var req dto.CreateThreadRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	thread, err := h.chatService.CreateThread(c.UserContext(), req.Topic, req.Participants, middleware.CurrentUserID(c))
	if err != nil {
		return h.chatError(c, err, "Failed to create chat thread")
	}
	return c.Status(fiber.StatusCreated).JSON(thread)
}

// ListThreads godoc
// @Summary List the signed-in user's chat threads
// @Tags chat
// @Produce json
// @Success 200 {array} dto.ChatThreadResponse
// @Failure 401 {object} map[string]string
// @Router /api/chat/threads [get]
func (h *ChatHandler) ListThreads(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	if userID == nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	threads, err := h.chatService.ListThreads(c.UserContext(), *userID)
	if err != nil {
		return h.chatError(c, err, "Failed to list chat threads")
	}
	return c.JSON(threads)
}

// SendMessage godoc
// @Summary Post a message
// @Tags chat
// @Accept json
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.ChatMessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/chat/threads/{threadId}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	msg, err := h.chatService.SendMessage(c.UserContext(), c.Params("threadId"), req.SenderID, req.SenderName, req.Content)
	if err != nil {
		return h.chatError(c, err, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ListMessages godoc
// @Summary List thread messages
// @Tags chat
// @Produce json
// @Param threadId path string true "Thread ID"
// @Success 200 {array} dto.ChatMessageResponse
// @Failure 404 {object} map[string]string
// @Router /api/chat/threads/{threadId}/messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.chatService.ListMessages(c.UserContext(), c.Params("threadId"))
	if err != nil {
		return h.chatError(c, err, "Failed to list messages")
	}
	return c.JSON(msgs)
}

// CloseThread godoc
// @Summary Close a thread
// @Tags chat
// @Produce json
// @Param threadId path string true "Thread ID"
// @Success 200 {object} dto.ChatThreadResponse
// @Failure 404 {object} map[string]string
// @Router /api/chat/threads/{threadId}/close [post]
func (h *ChatHandler) CloseThread(c *fiber.Ctx) error {
	thread, err := h.chatService.CloseThread(c.UserContext(), c.Params("threadId"))
	if err != nil {
		return h.chatError(c, err, "Failed to close thread")
	}
	return c.JSON(thread)
}

// ProcessBotMessage godoc
// @Summary Ask the support bot on a thread
// @Description Classifies the message, answers it and posts the answer to the thread as the bot
// @Tags chat
// @Accept json
// @Produce json
// @Param threadId path string true "Thread ID"
// @Param request body dto.BotProcessRequest true "Message"
// @Success 200 {object} dto.BotReplyResponse
// @Failure 404 {object} map[string]string
// @Router /api/chat/bot/{threadId}/process [post]
func (h *ChatHandler) ProcessBotMessage(c *fiber.Ctx) error {
	var req dto.BotProcessRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	reply, err := h.chatService.ProcessBotMessage(c.UserContext(), c.Params("threadId"), req.Message)
	if err != nil {
		return h.chatError(c, err, "Failed to process bot message")
	}
	return c.JSON(reply)
}

func (h *ChatHandler) chatError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrThreadNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Chat thread not found")
	case errors.Is(err, service.ErrThreadClosed):
		return errorResponse(c, fiber.StatusConflict, "Chat thread is closed")
	case isTimeout(err):
		return errorResponse(c, fiber.StatusGatewayTimeout, "Chat service timed out")
	}
	h.logger.Error(message, zap.Error(err))
	return errorResponse(c, fiber.StatusInternalServerError, message)
}
