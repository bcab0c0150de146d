package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"valor-assist/internal/api"
	"valor-assist/internal/api/handlers"
	"valor-assist/internal/repository"
	"valor-assist/internal/repository/memory"
	"valor-assist/internal/service"
	"valor-assist/pkg/auth"
	"valor-assist/pkg/config"
	"valor-assist/pkg/logger"
	"valor-assist/pkg/middleware"
	"valor-assist/pkg/postgres"
	"valor-assist/pkg/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// @title Valor Assist API
// @version 1.0
// @description Lead intake, AI claim assistance and VA integrations for veterans filing disability claims.

// @contact.name API Support

// @BasePath /

// sessionPurgeInterval is how often expired session rows are deleted.
const sessionPurgeInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Server.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Valor Assist service", zap.String("env", cfg.Server.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	store, pool, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = auth.RandomSecret()
		if err != nil {
			appLogger.Fatal("Failed to generate session secret", zap.Error(err))
		}
		appLogger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}
	signer := auth.NewSigner(secret)

	threads := openThreadStore(ctx, cfg, appLogger)
	defer threads.Close()

	var acs *service.ACSClient
	if cfg.Communication.ConnectionString != "" {
		acs, err = service.NewACSClient(cfg.Communication.ConnectionString, appLogger)
		if err != nil {
			appLogger.Warn("Invalid ACS connection string, chat will run in simulated mode", zap.Error(err))
			acs = nil
		}
	} else {
		appLogger.Warn("AZURE_COMMUNICATION_CONNECTION_STRING not set, chat will run in simulated mode")
	}

	// Initialize services
	llmService := service.NewLLMService(&cfg.OpenAI, appLogger)
	authService := service.NewAuthService(store, signer, cfg.Session.TTL, appLogger)
	claimService := service.NewClaimService(store, llmService, appLogger)
	vaService := service.NewVAService(cfg.VA, appLogger)
	ocrService := service.NewOCRService(llmService, appLogger)
	diService := service.NewDocumentIntelligenceService(cfg.DocumentIntel, ocrService, store, appLogger)
	chatService := service.NewChatService(acs, threads, store, signer, service.NewDefaultBot(), llmService, appLogger)

	// Initialize handlers
	v := validator.New()
	h := &api.Handlers{
		Auth:             handlers.NewAuthHandler(authService, v, cfg.Server.IsProduction(), appLogger),
		Claims:           handlers.NewClaimHandler(claimService, v, appLogger),
		VA:               handlers.NewVAHandler(vaService, v, appLogger),
		AI:               handlers.NewAIHandler(chatService, llmService, v, appLogger),
		DocumentAnalysis: handlers.NewDocumentAnalysisHandler(diService, v, appLogger),
		Chat:             handlers.NewChatHandler(chatService, v, appLogger),
		Health:           handlers.NewHealthHandler(store, vaService, appLogger),
		WebSocket:        handlers.NewWebSocketHandler(chatService, diService, appLogger),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.AIPerMinute, appLogger)
	defer limiter.Stop()

	// Setup router
	app := api.SetupRouter(h, api.Options{
		StaticDir:     cfg.Server.StaticDir,
		Production:    cfg.Server.IsProduction(),
		AccessLog:     true,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		Authenticator: authService,
		AIRateLimiter: limiter,
	}, appLogger)

	go purgeSessions(ctx, authService, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// openStore connects to PostgreSQL, or returns the in-memory store for
// DATABASE_URL=memory:// local runs. The pool is nil for the memory store.
func openStore(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (*repository.Store, *pgxpool.Pool, error) {
	if strings.HasPrefix(cfg.Database.URL, "memory://") {
		appLogger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil, nil
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, appLogger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return repository.NewStore(pool, appLogger), pool, nil
}

func openThreadStore(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) service.ThreadStore {
	if cfg.Redis.URL != "" {
		threads, err := service.NewRedisThreadStore(ctx, cfg.Redis.URL, cfg.Chat.ThreadTTL, appLogger)
		if err == nil {
			return threads
		}
		appLogger.Warn("Redis unavailable, falling back to in-memory chat threads", zap.Error(err))
	}
	return service.NewMemoryThreadStore(cfg.Chat.ThreadTTL, time.Minute, appLogger)
}

func purgeSessions(ctx context.Context, authService *service.AuthService, appLogger *zap.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authService.PurgeExpiredSessions(ctx)
			if err != nil {
				appLogger.Warn("Failed to purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				appLogger.Info("Expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
