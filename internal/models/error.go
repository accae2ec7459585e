package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPayload indicates the request body could not be decoded at all.
// It is outside the client error taxonomy and surfaces as a plain bad request.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrorKind classifies client input errors surfaced by the dispatcher.
type ErrorKind string

const (
	// ErrorKindUnknownChannel is reported when the channel discriminator is
	// absent or not one of the supported values.
	ErrorKindUnknownChannel ErrorKind = "UnknownChannel"
	// ErrorKindInvalidPayload is reported when fields required by the selected
	// channel are missing, empty or malformed.
	ErrorKindInvalidPayload ErrorKind = "InvalidPayload"
)

// DispatchError describes why a send request was rejected. Fields lists every
// offending field so the caller can correct the request in one round trip.
type DispatchError struct {
	Kind   ErrorKind `json:"error"`
	Value  string    `json:"value,omitempty"`
	Fields []string  `json:"fields,omitempty"`
}

func (e *DispatchError) Error() string {
	switch e.Kind {
	case ErrorKindUnknownChannel:
		return fmt.Sprintf("unknown channel %q", e.Value)
	case ErrorKindInvalidPayload:
		return fmt.Sprintf("invalid payload: missing or invalid field(s): %s", strings.Join(e.Fields, ", "))
	default:
		return string(e.Kind)
	}
}

// UnknownChannel builds the rejection for an unrecognized discriminator,
// naming the offending value.
func UnknownChannel(value string) *DispatchError {
	return &DispatchError{Kind: ErrorKindUnknownChannel, Value: value}
}

// InvalidPayload builds the rejection naming every offending field.
func InvalidPayload(fields ...string) *DispatchError {
	return &DispatchError{Kind: ErrorKindInvalidPayload, Fields: fields}
}
