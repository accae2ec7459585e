package util

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	addr, err := NormalizeEmail(" User@Example.com ")
	if err != nil {
		t.Fatalf("expected valid email: %v", err)
	}
	// The local part keeps its casing; only the domain is folded.
	if addr != "User@example.com" {
		t.Fatalf("expected trimmed email with lowercased domain, got %q", addr)
	}

	for _, value := range []string{"", "   ", "no-at-sign", "@example.com", "user@", "two words@example.com"} {
		if _, err := NormalizeEmail(value); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail for %q, got %v", value, err)
		}
	}
}

func TestNormalizeEmailStaysPermissive(t *testing.T) {
	// Odd but historically accepted addresses must keep working.
	for _, value := range []string{"user+tag@example.com", "user@localhost", "first.last@sub.example.co"} {
		if _, err := NormalizeEmail(value); err != nil {
			t.Fatalf("expected %q to pass the shape check: %v", value, err)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	num, err := NormalizePhone(" +551199999999 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "+551199999999" {
		t.Fatalf("expected trimmed number, got %q", num)
	}

	// Only emptiness is rejected; prefix-less numbers pass through untouched.
	if _, err := NormalizePhone("5541999999999"); err != nil {
		t.Fatalf("expected prefix-less number to pass: %v", err)
	}

	if _, err := NormalizePhone("   "); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone for blank value, got %v", err)
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(" \t ") {
		t.Fatalf("expected whitespace-only value to be blank")
	}
	if IsBlank(" x ") {
		t.Fatalf("expected non-empty value to not be blank")
	}
}
