package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Keys      APIKeys
	Ai        AIConfig
	Auth      AuthConfig
	Interview InterviewConfig
	JobSearch JobSearchConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

type DatabaseConfig struct {
	Connection string
	Debug      bool
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// Enabled reports whether outbound mail is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Email != ""
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	RapidAPI     string
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama" or "huggingface"
	LLMModel      string
	LLMBaseURL    string
	OllamaBaseURL string
	Timeout       time.Duration
}

type AuthConfig struct {
	// PEM encoded RSA public key of the identity provider. Takes precedence over JWTSecret.
	PublicKeyPEM string
	JWTSecret    string
	Issuer       string
}

type InterviewConfig struct {
	QuestionTimeout  time.Duration
	SessionTTL       time.Duration
	QuestionBankPath string
}

type JobSearchConfig struct {
	BaseURL  string
	CacheTTL time.Duration
	Timeout  time.Duration
}

type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Debug:      getEnvAsBool("DB_DEBUG", false),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Career Compass"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			RapidAPI:     getEnv("RAPIDAPI_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-2.0-flash"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 90*time.Second),
		},
		Auth: AuthConfig{
			PublicKeyPEM: getEnv("AUTH_PUBLIC_KEY", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			Issuer:       getEnv("AUTH_ISSUER", ""),
		},
		Interview: InterviewConfig{
			QuestionTimeout:  getEnvAsDuration("INTERVIEW_QUESTION_TIMEOUT", 10*time.Second),
			SessionTTL:       getEnvAsDuration("INTERVIEW_SESSION_TTL", time.Hour),
			QuestionBankPath: getEnv("QUESTION_BANK_PATH", ""),
		},
		JobSearch: JobSearchConfig{
			BaseURL:  getEnv("JOBSEARCH_BASE_URL", ""),
			CacheTTL: getEnvAsDuration("JOBSEARCH_CACHE_TTL", time.Hour),
			Timeout:  getEnvAsDuration("JOBSEARCH_TIMEOUT", 15*time.Second),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "career-compass-be"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// BaseURLFor returns the endpoint for the selected provider.
func (a AIConfig) BaseURLFor() string {
	if a.LLMBaseURL != "" {
		return a.LLMBaseURL
	}
	if a.LLMProvider == "ollama" {
		return a.OllamaBaseURL
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("15s") or plain seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
