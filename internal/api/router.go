package api

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"valor-assist/docs"
	"valor-assist/internal/api/handlers"
	"valor-assist/internal/models"
	"valor-assist/pkg/metrics"
	"valor-assist/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth             *handlers.AuthHandler
	Claims           *handlers.ClaimHandler
	VA               *handlers.VAHandler
	AI               *handlers.AIHandler
	DocumentAnalysis *handlers.DocumentAnalysisHandler
	Chat             *handlers.ChatHandler
	Health           *handlers.HealthHandler
	WebSocket        *handlers.WebSocketHandler
}

// bodyLimit leaves room for multipart decision-letter uploads.
const bodyLimit = 25 << 20

type Options struct {
	StaticDir     string
	Production    bool
	AccessLog     bool
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Authenticator middleware.Authenticator
	AIRateLimiter *middleware.RateLimiter
}

func SetupRouter(h *Handlers, opts Options, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Valor Assist",
		BodyLimit:    bodyLimit,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		},
	})

	metrics.Init()

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.SecurityHeaders(opts.Production))
	app.Use(metrics.Middleware())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(h.WebSocket.HandleConnection))

	api := app.Group("/api", middleware.Session(opts.Authenticator, appLogger))

	api.Get("/health", h.Health.Health)

	// Auth
	api.Post("/register", h.Auth.Register)
	api.Post("/login", h.Auth.Login)
	api.Post("/logout", h.Auth.Logout)
	api.Get("/user", h.Auth.CurrentUser)

	// Claims
	claims := api.Group("/claims")
	claims.Post("", h.Claims.CreateClaim)
	claims.Get("", middleware.RequireAuth(), h.Claims.ListClaims)
	claims.Get("/:id", h.Claims.GetClaim)
	claims.Patch("/:id/status", middleware.RequireRole(models.RoleAdmin), h.Claims.UpdateClaimStatus)
	claims.Post("/:id/documents", h.Claims.CreateDocument)
	claims.Get("/:id/documents", h.Claims.ListDocuments)

	// VA sandbox proxies
	va := api.Group("/va")
	va.Get("/claims/:claimId", h.VA.GetClaimStatus)
	va.Get("/patient/:icn", h.VA.GetPatient)
	va.Post("/verify", h.VA.VerifyVeteran)
	va.Get("/facilities", h.VA.ListFacilities)
	va.Get("/facilities/:id", h.VA.GetFacility)
	va.Get("/education/:fileNumber", h.VA.GetEducationBenefits)

	limited := func(handler fiber.Handler) []fiber.Handler {
		if opts.AIRateLimiter == nil {
			return []fiber.Handler{handler}
		}
		return []fiber.Handler{opts.AIRateLimiter.Middleware(), handler}
	}

	// AI
	ai := api.Group("/ai")
	ai.Post("/chat", limited(h.AI.Chat)...)
	ai.Post("/legal-precedents", limited(h.AI.LegalPrecedents)...)
	ai.Post("/document-analysis", limited(h.AI.AnalyzeDocumentText)...)

	// Document analysis
	api.Post("/document-analysis", limited(h.DocumentAnalysis.AnalyzeDocument)...)
	api.Post("/document-analysis/upload", limited(h.DocumentAnalysis.UploadDocument)...)
	api.Get("/document-analysis/:documentId", h.DocumentAnalysis.ListResults)

	// Chat
	chat := api.Group("/chat")
	chat.Post("/users", h.Chat.CreateUser)
	chat.Get("/threads", middleware.RequireAuth(), h.Chat.ListThreads)
	chat.Post("/threads", h.Chat.CreateThread)
	chat.Post("/threads/:threadId/messages", h.Chat.SendMessage)
	chat.Get("/threads/:threadId/messages", h.Chat.ListMessages)
	chat.Post("/threads/:threadId/close", h.Chat.CloseThread)
	chat.Post("/bot/:threadId/process", h.Chat.ProcessBotMessage)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	})

	serveSPA(app, opts.StaticDir, appLogger)

	return app
}

// serveSPA serves the built frontend and falls back to index.html so client
// side routes resolve. Nothing is mounted when the directory has no index.html.
func serveSPA(app *fiber.App, staticDir string, appLogger *zap.Logger) {
	if staticDir == "" {
		return
	}
	indexPath := filepath.Join(staticDir, "index.html")
	if !fileExists(indexPath) {
		appLogger.Warn("Static directory not found, SPA will not be served", zap.String("path", staticDir))
		return
	}

	appLogger.Info("Serving static files", zap.String("path", staticDir))
	app.Static("/", staticDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(indexPath)
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
