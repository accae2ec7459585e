package whatsappvalidator

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/config"
	"github.com/enviador/messaging-gateway/internal/models"
	"github.com/enviador/messaging-gateway/internal/util"
)

// Validator enforces the whatsapp variant contract: to and message must be
// present and non-empty. Numbers are expected to resemble E.164 but only
// emptiness is rejected; every offending field is collected before failing.
type Validator struct {
	logger zerolog.Logger
	cfg    config.ValidationConfig
}

// New constructs a Validator.
func New(cfg config.ValidationConfig, logger zerolog.Logger) *Validator {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &Validator{logger: logger, cfg: cfg}
}

// ParseAndValidate decodes the raw payload into the whatsapp variant and
// applies the validation rules.
func (v *Validator) ParseAndValidate(ctx context.Context, payload []byte) (*models.WhatsAppMessage, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(payload) == 0 {
		return nil, models.InvalidPayload("to", "message")
	}

	var msg models.WhatsAppMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("whatsapp validator: %w: %v", models.ErrMalformedPayload, err)
	}

	if err := v.validate(&msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (v *Validator) validate(msg *models.WhatsAppMessage) error {
	if msg.Channel != "" {
		parsed, err := models.ParseChannel(msg.Channel)
		if err != nil || parsed != models.ChannelWhatsApp {
			return models.InvalidPayload("channel")
		}
	}
	msg.Channel = string(models.ChannelWhatsApp)

	var fields []string

	if to, err := util.NormalizePhone(msg.To); err != nil {
		fields = append(fields, "to")
	} else {
		msg.To = to
	}

	switch {
	case util.IsBlank(msg.Message):
		fields = append(fields, "message")
	case v.cfg.WAMessageMaxBytes > 0 && len(msg.Message) > v.cfg.WAMessageMaxBytes:
		fields = append(fields, "message")
	}

	if len(fields) > 0 {
		v.logger.Debug().
			Strs("fields", fields).
			Msg("whatsapp payload rejected")
		return models.InvalidPayload(fields...)
	}

	return nil
}
