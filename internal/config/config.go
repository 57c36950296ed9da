package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	DataDir     string
	CORSOrigins string
	Database    DatabaseConfig
	JWT         JWTConfig
	Admin       AdminConfig
	Remote      RemoteConfig
}

// DatabaseConfig holds the embedded store configuration
type DatabaseConfig struct {
	Path string // SQLite file; ":memory:" for tests
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret           string
	SessionTokenMins int
}

// AdminConfig holds the seeded administrator account.
// The admin role is granted only through this seed, never by a
// credential match at login time.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// RemoteConfig holds the backend service endpoints the sync flow talks to
type RemoteConfig struct {
	BaseURL string
}

// Load reads configuration from the environment, optionally primed by a
// .env file loaded by the caller.
func Load() (*Config, error) {
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	dataDir := getEnv("DATA_DIR", "./data")
	sessionMins, _ := strconv.Atoi(getEnv("SESSION_TOKEN_MINUTES", "720"))

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		DataDir:     dataDir,
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", dataDir+"/bookhive.db"),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "default_secret"),
			SessionTokenMins: sessionMins,
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Email:    getEnv("ADMIN_EMAIL", "admin@gmail.com"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("REMOTE_BASE_URL", ""),
		},
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// PrefsPath returns the preference store location
func (c *Config) PrefsPath() string {
	return c.DataDir + "/prefs.json"
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
