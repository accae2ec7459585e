package whatsapp

import (
	"context"
	"time"
)

// Payload encapsulates the WhatsApp message to be sent via a provider.
type Payload struct {
	MessageID string
	To        string
	Message   string
	Headers   map[string]string
}

// RawResponse captures the low-level provider response for a WhatsApp send.
type RawResponse struct {
	ID        string
	Code      int
	Status    string
	Body      string
	Timestamp time.Time
}

// Provider represents an outbound WhatsApp provider (e.g. the Meta Cloud API
// or Twilio). Real integrations are supplied by the surrounding deployment.
type Provider interface {
	Send(ctx context.Context, payload *Payload) (*RawResponse, error)
}
