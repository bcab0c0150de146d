package handlers

import (
	"context"
	"sync"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/metrics"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const wsRequestTimeout = 2 * time.Minute

type wsMessage struct {
	Type        string                   `json:"type"`
	ClientID    string                   `json:"clientId"`
	ThreadID    string                   `json:"threadId,omitempty"`
	Content     string                   `json:"content,omitempty"`
	History     []dto.ChatHistoryMessage `json:"history,omitempty"`
	DocumentURL string                   `json:"documentUrl,omitempty"`
}

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

type wsClient struct {
	conn jsonWriter

	mu       sync.Mutex
	clientID string
	threadID string
}

func (cl *wsClient) send(v interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(v)
}

func (cl *wsClient) declare(msg *wsMessage) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if msg.ClientID != "" {
		cl.clientID = msg.ClientID
	}
	if msg.ThreadID != "" {
		cl.threadID = msg.ThreadID
	}
}

// accepts reports whether a chat message for threadID should reach this client.
func (cl *wsClient) accepts(threadID string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.threadID == "" || cl.threadID == threadID
}

// WebSocketHandler relays chat between connected browsers and answers AI and
// document-analysis requests in place. Connections are not authenticated.
type WebSocketHandler struct {
	chatService *service.ChatService
	diService   *service.DocumentIntelligenceService
	logger      *zap.Logger

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewWebSocketHandler(chatService *service.ChatService, diService *service.DocumentIntelligenceService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		chatService: chatService,
		diService:   diService,
		logger:      logger,
		clients:     make(map[*wsClient]struct{}),
	}
}

func (h *WebSocketHandler) register(cl *wsClient) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	metrics.WebSocketClients.Inc()
}

func (h *WebSocketHandler) unregister(cl *wsClient) {
	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
	metrics.WebSocketClients.Dec()
}

func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	cl := &wsClient{conn: c}
	h.register(cl)
	h.logger.Info("WebSocket connection established", zap.String("remote", c.RemoteAddr().String()))

	defer func() {
		h.unregister(cl)
		c.Close()
		h.logger.Info("WebSocket connection closed")
	}()

	for {
		var msg wsMessage
		if err := c.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Failed to read WebSocket message", zap.Error(err))
			}
			return
		}

		h.handleMessage(cl, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(cl *wsClient, msg *wsMessage) {
	cl.declare(msg)

	switch msg.Type {
	case "chat_message":
		h.broadcast(cl, map[string]interface{}{
			"type":      "chat_message",
			"clientId":  msg.ClientID,
			"threadId":  msg.ThreadID,
			"content":   msg.Content,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}, msg.ThreadID)

	case "ai_chat":
		if msg.Content == "" {
			h.sendError(cl, "content is required")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), wsRequestTimeout)
		defer cancel()
		answer := h.chatService.Answer(ctx, msg.History, msg.Content, true)
		h.reply(cl, map[string]interface{}{
			"type":        "ai_response",
			"response":    answer.Response,
			"intent":      answer.Intent,
			"suggestions": answer.Suggestions,
			"source":      answer.Source,
		})

	case "analyze_document":
		if msg.DocumentURL == "" {
			h.sendError(cl, "documentUrl is required")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), wsRequestTimeout)
		defer cancel()
		result, err := h.diService.AnalyzeURL(ctx, msg.DocumentURL)
		if err != nil {
			h.logger.Error("WebSocket document analysis failed", zap.Error(err))
			h.sendError(cl, "Failed to analyze document")
			return
		}
		h.reply(cl, map[string]interface{}{
			"type":       "analysis_result",
			"fields":     result.Fields,
			"confidence": result.Confidence,
			"source":     result.Source,
		})

	default:
		h.sendError(cl, "Unknown message type: "+msg.Type)
	}
}

// broadcast writes to every other client. A slow client only delays its own write.
func (h *WebSocketHandler) broadcast(sender *wsClient, payload interface{}, threadID string) int {
	h.mu.RLock()
	recipients := make([]*wsClient, 0, len(h.clients))
	for cl := range h.clients {
		if cl != sender && cl.accepts(threadID) {
			recipients = append(recipients, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range recipients {
		if err := cl.send(payload); err != nil {
			h.logger.Warn("Failed to relay chat message", zap.Error(err))
		}
	}
	return len(recipients)
}

func (h *WebSocketHandler) reply(cl *wsClient, payload interface{}) {
	if err := cl.send(payload); err != nil {
		h.logger.Warn("Failed to write WebSocket response", zap.Error(err))
	}
}

func (h *WebSocketHandler) sendError(cl *wsClient, errorMsg string) {
	h.reply(cl, map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	})
}
