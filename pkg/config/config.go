package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GinMode             string
	FirebaseCredentials string
	FirebaseProjectID   string
	CallsCollection     string
	SMTPHost            string
	SMTPPort            int
	SMTPUser            string
	SMTPPassword        string
	NotifyEmail         string
	ElevenLabsAPIKey    string
	ElevenLabsBaseURL   string
	DebugNumbers        []string
	DisplayTimezone     string
	LogFile             string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			smtpPort = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		CallsCollection:     getEnv("CALLS_COLLECTION", "calls"),
		SMTPHost:            getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:            smtpPort,
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		NotifyEmail:         getEnv("NOTIFY_EMAIL", ""),
		ElevenLabsAPIKey:    getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsBaseURL:   getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		DebugNumbers:        splitList(os.Getenv("DEBUG_NUMBERS")),
		DisplayTimezone:     getEnv("DISPLAY_TIMEZONE", "America/New_York"),
		LogFile:             getEnv("LOG_FILE", "./logs/app.log"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
