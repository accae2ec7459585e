package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the messaging gateway.
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Validation ValidationConfig
	Senders    SenderConfig
	Timeouts   TimeoutConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	Port     int
	LogLevel string
}

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	BodyLimit              string
	AllowedOrigins         []string
	ShutdownTimeoutSeconds int
}

// ValidationConfig holds optional limits applied while validating inbound
// requests. A zero value disables the corresponding limit; the required-field
// rules are always enforced.
type ValidationConfig struct {
	SubjectMaxLen     int
	EmailBodyMaxBytes int
	WAMessageMaxBytes int
}

// SenderConfig selects the backend used for each channel. Real provider
// integrations are supplied by the surrounding deployment; the in-repo
// backend is the deterministic mock.
type SenderConfig struct {
	EmailBackend    string
	WhatsAppBackend string
}

// TimeoutConfig contains timeout thresholds for outbound senders.
type TimeoutConfig struct {
	SenderTimeoutSeconds int
}

// Load reads environment variables, applies defaults, validates collected
// values and returns a populated Config instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}

	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.Port = ldr.getInt("PORT", 8080, false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.Server.BodyLimit = ldr.getString("BODY_LIMIT", "1M", false)
	cfg.Server.AllowedOrigins = ldr.getStringSlice("ALLOWED_ORIGINS", false)
	cfg.Server.ShutdownTimeoutSeconds = ldr.getInt("SHUTDOWN_TIMEOUT_SECONDS", 10, false)

	cfg.Validation.SubjectMaxLen = ldr.getInt("SUBJECT_MAX_LEN", 0, false)
	cfg.Validation.EmailBodyMaxBytes = ldr.getInt("EMAIL_BODY_MAX_BYTES", 0, false)
	cfg.Validation.WAMessageMaxBytes = ldr.getInt("WA_MESSAGE_MAX_BYTES", 0, false)

	cfg.Senders.EmailBackend = ldr.getString("EMAIL_SENDER_BACKEND", "mock", false)
	cfg.Senders.WhatsAppBackend = ldr.getString("WHATSAPP_SENDER_BACKEND", "mock", false)

	cfg.Timeouts.SenderTimeoutSeconds = ldr.getInt("SENDER_TIMEOUT_SECONDS", 30, false)

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the gateway runs with the development profile.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.App.Env)
	return env == "development" || env == "dev"
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			l.addError(fmt.Sprintf("%s must be a valid integer", key))
			return def
		}
		return i
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getStringSlice(key string, required bool) []string {
	raw := l.getString(key, "", required)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if required && len(out) == 0 {
		l.addError(fmt.Sprintf("%s must contain at least one entry", key))
	}
	return out
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
