package senders

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/models"
	"github.com/enviador/messaging-gateway/internal/senders/common"
	emailsender "github.com/enviador/messaging-gateway/internal/senders/email"
	wasender "github.com/enviador/messaging-gateway/internal/senders/whatsapp"
)

// Set bundles the per-channel providers behind the dispatcher's MessageSender
// capability. It translates validated messages into provider payloads,
// bounds each call with the configured timeout and classifies failures onto
// the sentinel transmission errors.
type Set struct {
	email    emailsender.Provider
	whatsapp wasender.Provider
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewSet constructs a sender set. A non-positive timeout disables the
// per-send deadline.
func NewSet(email emailsender.Provider, whatsapp wasender.Provider, timeout time.Duration, logger zerolog.Logger) (*Set, error) {
	if email == nil {
		return nil, errors.New("senders: email provider dependency is required")
	}
	if whatsapp == nil {
		return nil, errors.New("senders: whatsapp provider dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	return &Set{
		email:    email,
		whatsapp: whatsapp,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

// SendEmail hands a validated email message to the email provider.
func (s *Set) SendEmail(ctx context.Context, msg *models.EmailMessage) error {
	if msg == nil {
		return common.WrapRejected(errors.New("senders: email message is nil"))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.email.Send(ctx, &emailsender.Payload{
		MessageID: msg.MessageID,
		To:        msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Headers:   map[string]string{"Message-ID": msg.MessageID},
	})
	receipt := receiptFromEmail(raw)
	if err != nil {
		s.logger.Info().
			Str("channel", string(models.ChannelEmail)).
			Str("message_id", msg.MessageID).
			Int("provider_code", receipt.Code).
			Err(err).
			Msg("email send failed")
		return classify(err, receipt.Code)
	}

	s.logger.Debug().
		Str("channel", string(models.ChannelEmail)).
		Str("message_id", msg.MessageID).
		Str("provider_id", receipt.ID).
		Int("provider_code", receipt.Code).
		Msg("email handed to provider")
	return nil
}

// SendWhatsApp hands a validated WhatsApp message to the WhatsApp provider.
func (s *Set) SendWhatsApp(ctx context.Context, msg *models.WhatsAppMessage) error {
	if msg == nil {
		return common.WrapRejected(errors.New("senders: whatsapp message is nil"))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.whatsapp.Send(ctx, &wasender.Payload{
		MessageID: msg.MessageID,
		To:        msg.To,
		Message:   msg.Message,
	})
	receipt := receiptFromWhatsApp(raw)
	if err != nil {
		s.logger.Info().
			Str("channel", string(models.ChannelWhatsApp)).
			Str("message_id", msg.MessageID).
			Int("provider_code", receipt.Code).
			Err(err).
			Msg("whatsapp send failed")
		return classify(err, receipt.Code)
	}

	s.logger.Debug().
		Str("channel", string(models.ChannelWhatsApp)).
		Str("message_id", msg.MessageID).
		Str("provider_id", receipt.ID).
		Int("provider_code", receipt.Code).
		Msg("whatsapp handed to provider")
	return nil
}

func (s *Set) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify maps provider failures onto the transmission error kinds. Timeouts
// and throttling count as outages; definitive provider refusals are
// rejections.
func classify(err error, code int) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return common.WrapUnavailable(err)
	case code == 429 || code == 451 || (code >= 500 && code < 550):
		return common.WrapUnavailable(err)
	case code >= 400:
		// 4xx refusals and SMTP 55x permanent failures.
		return common.WrapRejected(err)
	default:
		return common.WrapUnavailable(err)
	}
}

func receiptFromEmail(raw *emailsender.RawResponse) common.SendReceipt {
	if raw == nil {
		return common.SendReceipt{}
	}
	return common.SendReceipt{
		ID:        raw.ID,
		Code:      raw.Code,
		Detail:    common.TruncateDetail(raw.Body, common.DefaultDetailLimit),
		Timestamp: raw.Timestamp,
	}
}

func receiptFromWhatsApp(raw *wasender.RawResponse) common.SendReceipt {
	if raw == nil {
		return common.SendReceipt{}
	}
	return common.SendReceipt{
		ID:        raw.ID,
		Code:      raw.Code,
		Detail:    common.TruncateDetail(raw.Body, common.DefaultDetailLimit),
		Timestamp: raw.Timestamp,
	}
}
