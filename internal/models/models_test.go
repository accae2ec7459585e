package models

import (
	"encoding/json"
	"testing"
)

func TestParseChannel(t *testing.T) {
	cases := map[string]Channel{
		"email":    ChannelEmail,
		"whatsapp": ChannelWhatsApp,
	}
	for input, want := range cases {
		got, err := ParseChannel(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %s for %q, got %s", want, input, got)
		}
	}

	for _, input := range []string{"", "sms", "telegram", "EMAIL", "WhatsApp", " email ", "whatsapp\n"} {
		if _, err := ParseChannel(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestDispatchErrorWireShape(t *testing.T) {
	raw, err := json.Marshal(UnknownChannel("sms"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"error":"UnknownChannel","value":"sms"}` {
		t.Fatalf("unexpected wire shape %s", raw)
	}

	raw, err = json.Marshal(InvalidPayload("to", "subject"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"error":"InvalidPayload","fields":["to","subject"]}` {
		t.Fatalf("unexpected wire shape %s", raw)
	}
}

func TestDispatchErrorMessages(t *testing.T) {
	if msg := UnknownChannel("sms").Error(); msg != `unknown channel "sms"` {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := InvalidPayload("to").Error(); msg == "" {
		t.Fatalf("expected human readable reason")
	}
}
