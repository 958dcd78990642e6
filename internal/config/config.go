package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// AI provider chain. AIProvider names the preferred backend tried first:
	// openai, huggingface, gemini or fallback (canned templates only).
	AIProvider         string
	ProviderTimeout    time.Duration
	OpenAIAPIKey       string
	OpenAIModel        string
	HuggingFaceAPIKey  string
	HuggingFaceModel   string
	HuggingFaceBaseURL string
	GeminiAPIKey       string
	GeminiModel        string

	// Clinic identity used in canned templates and notifications.
	ClinicName  string
	ClinicPhone string
	ClinicEmail string

	DefaultLanguage string
	HistoryLimit    int

	AdminJWTSecret string

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	NotifyEmail       string

	// CRM Configuration
	HubSpotAPIKey  string
	RDStationToken string
	CRMTimeout     time.Duration
	PreferredCRM   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AIProvider:         strings.ToLower(strings.TrimSpace(getEnv("AI_PROVIDER", "openai"))),
		ProviderTimeout:    getEnvAsDuration("AI_PROVIDER_TIMEOUT", 30*time.Second),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		HuggingFaceAPIKey:  getEnv("HUGGINGFACE_API_KEY", ""),
		HuggingFaceModel:   getEnv("HUGGINGFACE_MODEL", "microsoft/DialoGPT-medium"),
		HuggingFaceBaseURL: getEnv("HUGGINGFACE_BASE_URL", ""),
		GeminiAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		ClinicName:  getEnv("CLINIC_NAME", "Clínica Espaço Vida"),
		ClinicPhone: getEnv("CLINIC_PHONE", "(27) 999637447"),
		ClinicEmail: getEnv("CLINIC_EMAIL", "contato@espacovida.com.br"),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "pt"),
		HistoryLimit:    getEnvAsInt("HISTORY_LIMIT", 10),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Clínica Espaço Vida"),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", ""),

		HubSpotAPIKey:  getEnv("HUBSPOT_API_KEY", ""),
		RDStationToken: getEnv("RDSTATION_TOKEN", ""),
		CRMTimeout:     getEnvAsDuration("CRM_TIMEOUT", 10*time.Second),
		PreferredCRM:   strings.ToLower(strings.TrimSpace(getEnv("PREFERRED_CRM", "hubspot"))),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
