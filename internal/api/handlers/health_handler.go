package handlers

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// IntegrationReporter reports which keyed upstream APIs are configured.
type IntegrationReporter interface {
	Configured() map[string]bool
}

type HealthHandler struct {
	db     Pinger
	va     IntegrationReporter
	logger *zap.Logger
}

func NewHealthHandler(db Pinger, va IntegrationReporter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		va:     va,
		logger: logger,
	}
}

// serviceEnv maps each reported service to the variable that enables it.
var serviceEnv = map[string]string{
	"openai":               "OPENAI_API_KEY",
	"azureOpenAI":          "AZURE_OPENAI_API_KEY",
	"azureCommunication":   "AZURE_COMMUNICATION_CONNECTION_STRING",
	"documentIntelligence": "AZURE_DOCUMENT_INTELLIGENCE_KEY",
	"database":             "DATABASE_URL",
	"redis":                "REDIS_URL",
}

// Health godoc
// @Summary Service health
// @Description Reports which integrations are configured. Values are read from the environment on every call, VA API keys from loaded config.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	services := make(map[string]bool, len(serviceEnv))
	for name, key := range serviceEnv {
		services[name] = os.Getenv(key) != ""
	}
	var anyVA bool
	for name, ok := range h.va.Configured() {
		services[name] = ok
		anyVA = anyVA || ok
	}
	services["vaApi"] = anyVA

	status := "ok"
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Database ping failed", zap.Error(err))
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}
