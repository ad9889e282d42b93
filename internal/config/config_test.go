package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "contact_session", cfg.Session.CookieName)
	assert.Equal(t, 10000, cfg.Session.MaxSessions)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Admin.Username)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  request_timeout: 500ms
session:
  ttl: 5m
  max_sessions: 10
admin:
  username: admin
  password: secret
logging:
  level: debug
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout(), "unset keys keep defaults")
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 10, cfg.Session.MaxSessions)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.True(t, cfg.Logging.Development)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	t.Setenv("CONTACT_ADDR", ":7000")
	t.Setenv("CONTACT_LOG_LEVEL", "warn")
	t.Setenv("CONTACT_ADMIN_USER", "ops")
	t.Setenv("CONTACT_ADMIN_PASSWORD", "pw")
	t.Setenv("CONTACT_SESSION_TTL", "1h")
	t.Setenv("CONTACT_MAX_SESSIONS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "ops", cfg.Admin.Username)
	assert.Equal(t, "pw", cfg.Admin.Password)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, 5, cfg.Session.MaxSessions)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [\n"))
		assert.Error(t, err)
	})

	t.Run("bad max sessions env", func(t *testing.T) {
		t.Setenv("CONTACT_MAX_SESSIONS", "many")
		_, err := Load("")
		assert.ErrorContains(t, err, "CONTACT_MAX_SESSIONS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
		{name: "bad duration", mutate: func(c *Config) { c.Server.RequestTimeout = "soon" }, wantErr: "server.request_timeout"},
		{name: "negative duration", mutate: func(c *Config) { c.Session.TTL = "-1m" }, wantErr: "session.ttl"},
		{name: "empty cookie", mutate: func(c *Config) { c.Session.CookieName = "" }, wantErr: "session.cookie_name"},
		{name: "negative max sessions", mutate: func(c *Config) { c.Session.MaxSessions = -1 }, wantErr: "session.max_sessions"},
		{name: "user without password", mutate: func(c *Config) { c.Admin.Username = "admin" }, wantErr: "admin.username"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
