package models

import "fmt"

// Channel identifies the delivery medium a send request is routed to.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// ParseChannel rejects any discriminator outside the supported set. The
// match is exact: casing and surrounding whitespace are not forgiven.
func ParseChannel(value string) (Channel, error) {
	switch Channel(value) {
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelWhatsApp:
		return ChannelWhatsApp, nil
	default:
		return "", fmt.Errorf("unknown channel %q", value)
	}
}

// Envelope carries the discriminator shared by every send request. The
// remaining fields are decoded by the channel validator once the envelope has
// been routed.
type Envelope struct {
	Channel string `json:"channel"`
}

// EmailMessage is the email variant of a send request after validation.
// MessageID is assigned by the dispatcher, never taken from the wire.
type EmailMessage struct {
	MessageID string `json:"-"`
	Channel   string `json:"channel,omitempty"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// WhatsAppMessage is the whatsapp variant of a send request after validation.
type WhatsAppMessage struct {
	MessageID string `json:"-"`
	Channel   string `json:"channel,omitempty"`
	To        string `json:"to"`
	Message   string `json:"message"`
}
