package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HRMS    HRMSConfig
	JWT     JWTConfig
	Marking MarkingConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// HRMSConfig holds the upstream HRMS API configuration
type HRMSConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// MarkingConfig holds the marking engine tunables
type MarkingConfig struct {
	InitialPageSize         int
	Phase2Delay             time.Duration
	FallbackAbsentThreshold int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Upstream HRMS configuration
	hrmsTimeout, err := time.ParseDuration(getEnv("HRMS_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_TIMEOUT: %w", err)
	}

	config.HRMS = HRMSConfig{
		BaseURL:  getEnv("HRMS_BASE_URL", ""),
		APIToken: getEnv("HRMS_API_TOKEN", ""),
		Timeout:  hrmsTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Marking engine configuration
	initialPageSize, err := strconv.Atoi(getEnv("INITIAL_PAGE_SIZE", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_PAGE_SIZE: %w", err)
	}

	phase2Delay, err := time.ParseDuration(getEnv("PHASE2_DELAY", "100ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid PHASE2_DELAY: %w", err)
	}

	fallbackThreshold, err := strconv.Atoi(getEnv("WEEKLY_ABSENT_THRESHOLD", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKLY_ABSENT_THRESHOLD: %w", err)
	}

	config.Marking = MarkingConfig{
		InitialPageSize:         initialPageSize,
		Phase2Delay:             phase2Delay,
		FallbackAbsentThreshold: fallbackThreshold,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HRMS.BaseURL == "" {
		return fmt.Errorf("HRMS_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
