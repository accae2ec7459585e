package factory

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/config"
	emailsender "github.com/enviador/messaging-gateway/internal/senders/email"
	wasender "github.com/enviador/messaging-gateway/internal/senders/whatsapp"
)

// Email constructs the configured email provider. Only the mock backend ships
// with the gateway; real SMTP or transactional integrations are registered by
// the embedding application.
func Email(cfg config.SenderConfig, logger zerolog.Logger) (emailsender.Provider, error) {
	backend := normalize(cfg.EmailBackend, "mock")
	switch backend {
	case "mock":
		provider := emailsender.NewMockProvider(logger)
		logger.Info().
			Str("backend", "mock").
			Msg("email sender initialised")
		return provider, nil
	default:
		return nil, fmt.Errorf("factory: unsupported email sender backend %q", cfg.EmailBackend)
	}
}

// WhatsApp constructs the configured WhatsApp provider.
func WhatsApp(cfg config.SenderConfig, logger zerolog.Logger) (wasender.Provider, error) {
	backend := normalize(cfg.WhatsAppBackend, "mock")
	switch backend {
	case "mock":
		provider := wasender.NewMockProvider(logger)
		logger.Info().
			Str("backend", "mock").
			Msg("whatsapp sender initialised")
		return provider, nil
	default:
		return nil, fmt.Errorf("factory: unsupported whatsapp sender backend %q", cfg.WhatsAppBackend)
	}
}

func normalize(value, def string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return def
	}
	return value
}
