package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scenario enumerates supported behaviours for the mock WhatsApp provider.
type Scenario string

const (
	ScenarioSuccess     Scenario = "success"
	ScenarioUnavailable Scenario = "unavailable"
	ScenarioRejected    Scenario = "rejected"
	ScenarioTimeout     Scenario = "timeout"
)

// Option customises the mock provider at construction time.
type Option func(*MockProvider)

// WithScenario overrides the default scenario.
func WithScenario(s Scenario) Option {
	return func(p *MockProvider) {
		p.defaultScenario = s
	}
}

// WithLatency sets the artificial latency inserted before responding.
func WithLatency(d time.Duration) Option {
	return func(p *MockProvider) {
		if d < 0 {
			d = 0
		}
		p.latency = d
	}
}

// WithClock swaps out the clock for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(p *MockProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// MockProvider implements a deterministic WhatsApp provider suitable for tests.
type MockProvider struct {
	logger          zerolog.Logger
	defaultScenario Scenario
	latency         time.Duration
	now             func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockProvider constructs a new mock WhatsApp provider.
func NewMockProvider(logger zerolog.Logger, opts ...Option) *MockProvider {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	p := &MockProvider{
		logger:          logger,
		defaultScenario: ScenarioSuccess,
		latency:         25 * time.Millisecond,
		now:             time.Now,
		rnd:             rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Send simulates sending a WhatsApp payload.
func (p *MockProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("whatsapp mock: payload is required")
	}
	if strings.TrimSpace(payload.To) == "" {
		return nil, errors.New("whatsapp mock: recipient is required")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	scenario := p.defaultScenario
	if val, ok := payload.Headers["scenario"]; ok && strings.TrimSpace(val) != "" {
		scenario = Scenario(strings.ToLower(strings.TrimSpace(val)))
	}

	p.logger.Debug().
		Str("provider", "mock_whatsapp").
		Str("scenario", string(scenario)).
		Str("message_id", payload.MessageID).
		Msg("mock whatsapp provider invoked")

	resp := &RawResponse{
		ID:        p.generateID(payload.MessageID),
		Code:      200,
		Status:    "accepted",
		Body:      "mock: message accepted",
		Timestamp: p.now(),
	}

	switch scenario {
	case ScenarioUnavailable:
		resp.Code = 429
		resp.Status = "unavailable"
		resp.Body = "mock: rate limited, try again later"
		return resp, fmt.Errorf("whatsapp mock unavailable: rate limited")
	case ScenarioRejected:
		resp.Code = 400
		resp.Status = "rejected"
		resp.Body = "mock: invalid recipient"
		return resp, fmt.Errorf("whatsapp mock rejected: invalid recipient")
	case ScenarioTimeout:
		timer := time.NewTimer(p.latency + 50*time.Millisecond)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
		return nil, context.DeadlineExceeded
	default:
		return resp, nil
	}
}

func (p *MockProvider) generateID(messageID string) string {
	if messageID != "" {
		return "wamid." + messageID
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("wamid.mock-%08x", p.rnd.Uint32())
}
