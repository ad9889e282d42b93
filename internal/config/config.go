// Package config загружает настройки сервиса: значения по умолчанию,
// затем YAML-файл, затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config — корневая структура настроек.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Admin   AdminConfig   `yaml:"admin"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig — параметры HTTP-сервера. Длительности в формате time.ParseDuration.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	RequestTimeout    string `yaml:"request_timeout"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// SessionConfig — параметры хранилища сессий.
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	TTL         string `yaml:"ttl"`
	MaxSessions int    `yaml:"max_sessions"`
}

// AdminConfig — учётные данные для сброса формы.
// Пустые значения отключают маршрут.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig — уровень и формат логов.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			RequestTimeout:    "2s",
			ReadHeaderTimeout: "5s",
			ShutdownTimeout:   "10s",
		},
		Session: SessionConfig{
			CookieName:  "contact_session",
			TTL:         "30m",
			MaxSessions: 10000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load читает настройки. Пустой path — только значения по умолчанию
// и переменные окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides перекрывает значения переменными окружения CONTACT_*.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CONTACT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CONTACT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CONTACT_ADMIN_USER"); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("CONTACT_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("CONTACT_SESSION_TTL"); v != "" {
		c.Session.TTL = v
	}
	if v := os.Getenv("CONTACT_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CONTACT_MAX_SESSIONS: %w", err)
		}
		c.Session.MaxSessions = n
	}
	return nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	for name, raw := range map[string]string{
		"server.request_timeout":     c.Server.RequestTimeout,
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"session.ttl":                c.Session.TTL,
	} {
		if _, err := parseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	if c.Session.MaxSessions < 0 {
		errs = append(errs, errors.New("session.max_sessions must be >= 0"))
	}
	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		errs = append(errs, errors.New("admin.username and admin.password must be set together"))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// RequestTimeout возвращает таймаут обработки запроса.
func (c *Config) RequestTimeout() time.Duration { return mustDuration(c.Server.RequestTimeout) }

// ReadHeaderTimeout возвращает таймаут чтения заголовков.
func (c *Config) ReadHeaderTimeout() time.Duration { return mustDuration(c.Server.ReadHeaderTimeout) }

// ShutdownTimeout возвращает время на graceful shutdown.
func (c *Config) ShutdownTimeout() time.Duration { return mustDuration(c.Server.ShutdownTimeout) }

// SessionTTL возвращает время жизни простаивающей сессии.
func (c *Config) SessionTTL() time.Duration { return mustDuration(c.Session.TTL) }

// parseDuration принимает пустую строку как ноль.
func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("duration must be >= 0")
	}
	return d, nil
}

// mustDuration вызывается только после Validate.
func mustDuration(raw string) time.Duration {
	d, _ := parseDuration(raw)
	return d
}
