package common

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable and ErrRejected are the sentinel transmission error
// kinds senders use when classifying provider failures.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrRejected            = errors.New("rejected by provider")
)

// WrapUnavailable annotates an error so callers can detect provider outages.
func WrapUnavailable(err error) error {
	if err == nil {
		return ErrProviderUnavailable
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

// WrapRejected annotates an error as a provider rejection.
func WrapRejected(err error) error {
	if err == nil {
		return ErrRejected
	}
	return fmt.Errorf("%w: %v", ErrRejected, err)
}
