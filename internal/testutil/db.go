// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"kgtransfer/config"
	"kgtransfer/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	return db
}

// TestConfig returns a configuration suitable for handler and service tests.
func TestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:      "8080",
			Env:       "test",
			PublicURL: "https://transfer.example",
		},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: "file::memory:"},
		JWT: config.JWTConfig{
			AccessSecret:  "test-access",
			RefreshSecret: "test-refresh",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "kgtransfer-test",
		},
		Admin:  config.AdminConfig{Email: "admin@example.com", Password: "secret-password", Name: "Admin"},
		Logger: config.LoggerConfig{Level: config.LogLevelError, Type: config.LogTypeConsole},
		RateLimit: config.RateLimitConfig{
			Requests:     1000,
			Window:       time.Minute,
			FormRequests: 1000,
			FormWindow:   time.Minute,
		},
	}
}
