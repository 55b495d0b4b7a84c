package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("PUBLIC_URL", "https://example.com/")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "https://example.com", cfg.Server.PublicURL)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 587, cfg.SMTP.Port)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: true},
		{name: "missing dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: true},
		{name: "bad admin email", mutate: func(c *Config) { c.Admin.Email = "admin" }, wantErr: true},
		{name: "short admin password", mutate: func(c *Config) { c.Admin.Password = "123" }, wantErr: true},
		{name: "file logger without path", mutate: func(c *Config) { c.Logger.Type = LogTypeFile }, wantErr: true},
		{name: "file logger with path", mutate: func(c *Config) {
			c.Logger.Type = LogTypeFile
			c.Logger.FilePath = "/tmp/app.log"
		}},
		{name: "bad smtp recipient", mutate: func(c *Config) { c.SMTP.To = "nope" }, wantErr: true},
		{name: "production with default secret", mutate: func(c *Config) { c.Server.Env = "production" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSMTPConfigEnabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.False(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, SMTPConfig{Host: "smtp.example.com", To: "ops@example.com"}.Enabled())
}
