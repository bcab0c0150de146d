package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Session       SessionConfig
	OpenAI        OpenAIConfig
	Communication CommunicationConfig
	DocumentIntel DocumentIntelConfig
	VA            VAConfig
	Redis         RedisConfig
	Chat          ChatConfig
	RateLimit     RateLimitConfig
	Logger        LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	Env          string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether cookies should be marked Secure.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfig struct {
	URL         string
	MaxConns    int32
	AutoMigrate bool
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	FineTunedModel string
	Timeout        time.Duration

	AzureEndpoint   string
	AzureAPIKey     string
	AzureDeployment string
}

type CommunicationConfig struct {
	ConnectionString string
}

type DocumentIntelConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxAttempts int
}

type VAConfig struct {
	BaseURL         string
	ClaimsKey       string
	HealthKey       string
	VerificationKey string
	FacilitiesKey   string
	EducationKey    string
	Timeout         time.Duration
}

type RedisConfig struct {
	URL string
}

type ChatConfig struct {
	ThreadTTL time.Duration
}

type RateLimitConfig struct {
	AIPerMinute int
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

func Load() (*Config, error) {
	// .env is optional; plain environment variables win in containers
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	vaKey := getEnv("VA_API_KEY", "")

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Env:          getEnv("APP_ENV", "development"),
			StaticDir:    getEnv("STATIC_DIR", "web/dist"),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 120)) * time.Second,
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 10)),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("OPENAI_MODEL", "gpt-4o"),
			FineTunedModel:  getEnv("OPENAI_FINE_TUNED_MODEL", ""),
			Timeout:         time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
			AzureEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
			AzureAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
			AzureDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
		},
		Communication: CommunicationConfig{
			ConnectionString: getEnv("AZURE_COMMUNICATION_CONNECTION_STRING", ""),
		},
		DocumentIntel: DocumentIntelConfig{
			Endpoint:    getEnv("AZURE_DOCUMENT_INTELLIGENCE_ENDPOINT", ""),
			APIKey:      getEnv("AZURE_DOCUMENT_INTELLIGENCE_KEY", ""),
			Model:       getEnv("AZURE_DOCUMENT_INTELLIGENCE_MODEL", "prebuilt-document"),
			MaxAttempts: getEnvInt("DOCUMENT_ANALYSIS_MAX_ATTEMPTS", 30),
		},
		VA: VAConfig{
			BaseURL:         getEnv("VA_API_BASE_URL", "https://sandbox-api.va.gov"),
			ClaimsKey:       getEnv("VA_CLAIMS_API_KEY", vaKey),
			HealthKey:       getEnv("VA_HEALTH_API_KEY", vaKey),
			VerificationKey: getEnv("VA_VERIFICATION_API_KEY", vaKey),
			FacilitiesKey:   getEnv("VA_FACILITIES_API_KEY", vaKey),
			EducationKey:    getEnv("VA_EDUCATION_API_KEY", vaKey),
			Timeout:         time.Duration(getEnvInt("VA_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Chat: ChatConfig{
			ThreadTTL: time.Duration(getEnvInt("CHAT_THREAD_TTL_MINUTES", 60)) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			AIPerMinute: getEnvInt("AI_RATE_LIMIT_PER_MINUTE", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate fails only on settings the service cannot start without.
// Every external integration degrades to a placeholder instead.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
