package emailvalidator

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/config"
	"github.com/enviador/messaging-gateway/internal/models"
	"github.com/enviador/messaging-gateway/internal/util"
)

// Validator enforces the email variant contract: to, subject and body must be
// present and non-empty, and to must carry a minimally valid address shape.
// Every offending field is collected before the payload is rejected.
type Validator struct {
	logger zerolog.Logger
	cfg    config.ValidationConfig
}

// New constructs a Validator using the supplied validation configuration.
func New(cfg config.ValidationConfig, logger zerolog.Logger) *Validator {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &Validator{
		logger: logger,
		cfg:    cfg,
	}
}

// ParseAndValidate decodes the raw payload into the email variant and applies
// the validation rules.
func (v *Validator) ParseAndValidate(ctx context.Context, payload []byte) (*models.EmailMessage, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(payload) == 0 {
		return nil, models.InvalidPayload("to", "subject", "body")
	}

	var msg models.EmailMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("email validator: %w: %v", models.ErrMalformedPayload, err)
	}

	if err := v.validate(&msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (v *Validator) validate(msg *models.EmailMessage) error {
	if msg.Channel != "" {
		parsed, err := models.ParseChannel(msg.Channel)
		if err != nil || parsed != models.ChannelEmail {
			return models.InvalidPayload("channel")
		}
	}
	msg.Channel = string(models.ChannelEmail)

	var fields []string

	if util.IsBlank(msg.To) {
		fields = append(fields, "to")
	} else if to, err := util.NormalizeEmail(msg.To); err != nil {
		fields = append(fields, "to")
	} else {
		msg.To = to
	}

	msg.Subject = strings.TrimSpace(msg.Subject)
	switch {
	case msg.Subject == "":
		fields = append(fields, "subject")
	case v.cfg.SubjectMaxLen > 0 && utf8.RuneCountInString(msg.Subject) > v.cfg.SubjectMaxLen:
		fields = append(fields, "subject")
	}

	switch {
	case util.IsBlank(msg.Body):
		fields = append(fields, "body")
	case v.cfg.EmailBodyMaxBytes > 0 && len(msg.Body) > v.cfg.EmailBodyMaxBytes:
		fields = append(fields, "body")
	}

	if len(fields) > 0 {
		v.logger.Debug().
			Strs("fields", fields).
			Msg("email payload rejected")
		return models.InvalidPayload(fields...)
	}

	return nil
}
