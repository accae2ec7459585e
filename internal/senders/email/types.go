package email

import (
	"context"
	"time"
)

// Payload is the canonical representation of an outbound email handed to a
// provider.
type Payload struct {
	MessageID string
	To        string
	Subject   string
	Body      string
	Headers   map[string]string
}

// RawResponse mirrors the low level provider response that callers inspect to
// derive normalized SendReceipt values.
type RawResponse struct {
	ID        string
	Code      int
	Body      string
	Timestamp time.Time
}

// Provider is the contract exposed by the email provider implementation. Real
// integrations (SMTP, transactional APIs) are supplied by the surrounding
// deployment.
type Provider interface {
	Send(ctx context.Context, payload *Payload) (*RawResponse, error)
}
