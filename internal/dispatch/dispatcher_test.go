package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/enviador/messaging-gateway/internal/config"
	"github.com/enviador/messaging-gateway/internal/dispatch"
	emailvalidator "github.com/enviador/messaging-gateway/internal/dispatch/validator/email"
	whatsappvalidator "github.com/enviador/messaging-gateway/internal/dispatch/validator/whatsapp"
	"github.com/enviador/messaging-gateway/internal/models"
)

type stubSender struct {
	mu        sync.Mutex
	emails    []*models.EmailMessage
	whatsapps []*models.WhatsAppMessage
	err       error
}

func (s *stubSender) SendEmail(ctx context.Context, msg *models.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, msg)
	return s.err
}

func (s *stubSender) SendWhatsApp(ctx context.Context, msg *models.WhatsAppMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whatsapps = append(s.whatsapps, msg)
	return s.err
}

func newDispatcher(t *testing.T, sender dispatch.MessageSender) *dispatch.Dispatcher {
	t.Helper()
	d, err := dispatch.New(
		emailvalidator.New(config.ValidationConfig{}, zerolog.Nop()),
		whatsappvalidator.New(config.ValidationConfig{}, zerolog.Nop()),
		sender,
		zerolog.Nop(),
	)
	if err != nil {
		t.Fatalf("failed to build dispatcher: %v", err)
	}
	return d
}

func TestDispatchUnknownChannel(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	cases := map[string][]byte{
		"unsupported": []byte(`{"channel":"sms","to":"+5511","message":"oi"}`),
		"absent":      []byte(`{"to":"a@example.com","subject":"s","body":"b"}`),
		"empty":       []byte(`{"channel":""}`),
		"upper case":  []byte(`{"channel":"EMAIL","to":"a@example.com","subject":"s","body":"b"}`),
		"mixed case":  []byte(`{"channel":" WhatsApp ","to":"+5511","message":"oi"}`),
	}

	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			_, err := d.Dispatch(context.Background(), payload)
			var dispatchErr *models.DispatchError
			if !errors.As(err, &dispatchErr) {
				t.Fatalf("expected DispatchError, got %v", err)
			}
			if dispatchErr.Kind != models.ErrorKindUnknownChannel {
				t.Fatalf("expected UnknownChannel, got %s", dispatchErr.Kind)
			}
		})
	}

	if len(sender.emails)+len(sender.whatsapps) != 0 {
		t.Fatalf("expected no dispatch before channel resolution")
	}
}

func TestDispatchNamesOffendingValue(t *testing.T) {
	d := newDispatcher(t, &stubSender{})

	_, err := d.Dispatch(context.Background(), []byte(`{"channel":"carrier-pigeon"}`))
	var dispatchErr *models.DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if dispatchErr.Value != "carrier-pigeon" {
		t.Fatalf("expected offending value to be named, got %q", dispatchErr.Value)
	}

	// Case variants of a supported channel are still unknown, and the value
	// is echoed exactly as given.
	_, err = d.Dispatch(context.Background(), []byte(`{"channel":"Email"}`))
	if !errors.As(err, &dispatchErr) || dispatchErr.Kind != models.ErrorKindUnknownChannel {
		t.Fatalf("expected UnknownChannel, got %v", err)
	}
	if dispatchErr.Value != "Email" {
		t.Fatalf("expected the raw discriminator, got %q", dispatchErr.Value)
	}
}

func TestDispatchEmailSuccess(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	payload := []byte(`{"channel":"email","to":"a@example.com","subject":"Olá","body":"Corpo do email"}`)
	result, err := d.Dispatch(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.StatusAccepted {
		t.Fatalf("expected accepted status, got %q", result.Status)
	}
	if result.Channel != models.ChannelEmail {
		t.Fatalf("expected email channel, got %s", result.Channel)
	}
	if result.MessageID == "" {
		t.Fatalf("expected generated message id")
	}
	if len(sender.emails) != 1 {
		t.Fatalf("expected a single email handed to the sender, got %d", len(sender.emails))
	}
	if sender.emails[0].MessageID != result.MessageID {
		t.Fatalf("expected sender to receive the acknowledged message id")
	}
}

func TestDispatchWhatsAppSuccess(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	payload := []byte(`{"channel":"whatsapp","to":"+551199999999","message":"Mensagem via WhatsApp"}`)
	result, err := d.Dispatch(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Channel != models.ChannelWhatsApp {
		t.Fatalf("expected whatsapp channel, got %s", result.Channel)
	}
	if len(sender.whatsapps) != 1 {
		t.Fatalf("expected a single whatsapp message, got %d", len(sender.whatsapps))
	}
}

func TestDispatchRejectsBeforeSending(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	_, err := d.Dispatch(context.Background(), []byte(`{"channel":"email","subject":"s"}`))
	var dispatchErr *models.DispatchError
	if !errors.As(err, &dispatchErr) || dispatchErr.Kind != models.ErrorKindInvalidPayload {
		t.Fatalf("expected InvalidPayload, got %v", err)
	}
	if len(sender.emails) != 0 {
		t.Fatalf("expected rejection before the sender is invoked")
	}
}

func TestDispatchSurfacesSenderError(t *testing.T) {
	wantErr := errors.New("provider blew up")
	d := newDispatcher(t, &stubSender{err: wantErr})

	payload := []byte(`{"channel":"email","to":"a@example.com","subject":"s","body":"b"}`)
	_, err := d.Dispatch(context.Background(), payload)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected sender error to surface, got %v", err)
	}
	var dispatchErr *models.DispatchError
	if errors.As(err, &dispatchErr) {
		t.Fatalf("transmission failures must not masquerade as client errors")
	}
}

func TestDispatchMalformedJSON(t *testing.T) {
	d := newDispatcher(t, &stubSender{})

	if _, err := d.Dispatch(context.Background(), []byte(`not json`)); !errors.Is(err, models.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDispatchChannelPinned(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	// No discriminator in the body; the route supplies it.
	payload := []byte(`{"to":"+5541999999999","message":"oi"}`)
	result, err := d.DispatchChannel(context.Background(), models.ChannelWhatsApp, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Channel != models.ChannelWhatsApp {
		t.Fatalf("expected pinned channel, got %s", result.Channel)
	}
}

func TestDispatchConcurrentRequests(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	payload := []byte(`{"channel":"email","to":"a@example.com","subject":"s","body":"b"}`)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Dispatch(context.Background(), payload); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(sender.emails) != 16 {
		t.Fatalf("expected 16 dispatches, got %d", len(sender.emails))
	}
}
