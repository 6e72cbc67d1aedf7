package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string
	AppName string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	LogLevel   string
	LogConsole bool
	LogFile    string

	MetricsPort string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	AccessTokenSecret  string
	RefreshTokenSecret string
	ResetTokenSecret   string

	UploadDir string

	GinMode string
}

func Load() *Config {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "5021"),
		AppName: getEnv("APP_NAME", "notes-api"),

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "notes"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "notes_api"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogConsole: getEnvBool("LOG_CONSOLE", true),
		LogFile:    getEnv("LOG_FILE", ""),

		MetricsPort: getEnv("METRICS_PORT", "8021"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AccessTokenSecret:  getEnv("SECRET_ACCESS_TOKEN", "dev-access-secret"),
		RefreshTokenSecret: getEnv("SECRET_REFRESH_TOKEN", "dev-refresh-secret"),
		ResetTokenSecret:   getEnv("SECRET_RESET_TOKEN", "dev-reset-secret"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		GinMode: getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
