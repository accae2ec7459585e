package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/models"
)

// EmailValidator parses and validates the email variant of a send request.
type EmailValidator interface {
	ParseAndValidate(ctx context.Context, payload []byte) (*models.EmailMessage, error)
}

// WhatsAppValidator parses and validates the whatsapp variant of a send
// request.
type WhatsAppValidator interface {
	ParseAndValidate(ctx context.Context, payload []byte) (*models.WhatsAppMessage, error)
}

// MessageSender is the transmission capability consumed by the dispatcher.
// The dispatcher calls it once validation has passed and treats its errors as
// transmission failures owned by the implementation.
type MessageSender interface {
	SendEmail(ctx context.Context, msg *models.EmailMessage) error
	SendWhatsApp(ctx context.Context, msg *models.WhatsAppMessage) error
}

// Dispatcher routes a channel-discriminated payload to the matching validator
// and, on success, to the injected sender. It holds no per-request state and
// is safe for concurrent use.
type Dispatcher struct {
	email    EmailValidator
	whatsapp WhatsAppValidator
	sender   MessageSender
	logger   zerolog.Logger
}

// New constructs a Dispatcher from its collaborators.
func New(email EmailValidator, whatsapp WhatsAppValidator, sender MessageSender, logger zerolog.Logger) (*Dispatcher, error) {
	if email == nil {
		return nil, errors.New("dispatch: email validator dependency is required")
	}
	if whatsapp == nil {
		return nil, errors.New("dispatch: whatsapp validator dependency is required")
	}
	if sender == nil {
		return nil, errors.New("dispatch: sender dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	return &Dispatcher{
		email:    email,
		whatsapp: whatsapp,
		sender:   sender,
		logger:   logger,
	}, nil
}

// Dispatch reads the channel discriminator from the raw payload and routes it
// to the channel-specific path. Requests without a recognized channel are
// rejected before any validation or send occurs.
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte) (*models.SendResult, error) {
	var env models.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("dispatch: %w: %v", models.ErrMalformedPayload, err)
	}

	channel, err := models.ParseChannel(env.Channel)
	if err != nil {
		return nil, models.UnknownChannel(env.Channel)
	}

	return d.DispatchChannel(ctx, channel, payload)
}

// DispatchChannel validates and sends a payload for an already-selected
// channel. Routes that pin the channel (for example a per-channel endpoint)
// call this directly; a payload naming a different channel is rejected by the
// validator.
func (d *Dispatcher) DispatchChannel(ctx context.Context, channel models.Channel, payload []byte) (*models.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch channel {
	case models.ChannelEmail:
		msg, err := d.email.ParseAndValidate(ctx, payload)
		if err != nil {
			return nil, err
		}
		msg.MessageID = uuid.NewString()
		if err := d.sender.SendEmail(ctx, msg); err != nil {
			return nil, fmt.Errorf("dispatch: email send: %w", err)
		}
		return d.accepted(channel, msg.MessageID), nil

	case models.ChannelWhatsApp:
		msg, err := d.whatsapp.ParseAndValidate(ctx, payload)
		if err != nil {
			return nil, err
		}
		msg.MessageID = uuid.NewString()
		if err := d.sender.SendWhatsApp(ctx, msg); err != nil {
			return nil, fmt.Errorf("dispatch: whatsapp send: %w", err)
		}
		return d.accepted(channel, msg.MessageID), nil

	default:
		return nil, models.UnknownChannel(string(channel))
	}
}

func (d *Dispatcher) accepted(channel models.Channel, messageID string) *models.SendResult {
	d.logger.Info().
		Str("channel", string(channel)).
		Str("message_id", messageID).
		Msg("message dispatched")

	return &models.SendResult{
		MessageID: messageID,
		Channel:   channel,
		Status:    models.StatusAccepted,
	}
}
