package sms

import (
	"context"
	"sync"
)

// Service is a thin dispatch facade over exactly one bound Provider. The
// bound provider can be swapped at runtime; each send reads the reference
// once, so a swap never affects a call already in progress. Callers needing
// strict ordering across a swap must coordinate externally.
type Service struct {
	mu       sync.RWMutex
	provider Provider
}

// NewService binds the initial provider. A service without a provider is not
// constructible; passing nil panics.
func NewService(provider Provider) *Service {
	if provider == nil {
		panic("sms: NewService called with nil provider")
	}
	return &Service{provider: provider}
}

// SetProvider replaces the bound provider for all subsequent calls.
func (s *Service) SetProvider(provider Provider) {
	if provider == nil {
		panic("sms: SetProvider called with nil provider")
	}
	s.mu.Lock()
	s.provider = provider
	s.mu.Unlock()
}

func (s *Service) current() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// SendOneMessage forwards to the bound provider. No retry, no batching, no
// validation; the provider's result propagates unmodified.
func (s *Service) SendOneMessage(ctx context.Context, phoneNumber, message, lineNumber string) error {
	return s.current().SendOneMessage(ctx, phoneNumber, message, lineNumber)
}

// SendBulkMessages forwards to the bound provider.
func (s *Service) SendBulkMessages(ctx context.Context, phoneNumbers []string, message, lineNumber string) error {
	return s.current().SendBulkMessages(ctx, phoneNumbers, message, lineNumber)
}

// SendVerifyMessage forwards to the bound provider.
func (s *Service) SendVerifyMessage(ctx context.Context, phoneNumber, value string) error {
	return s.current().SendVerifyMessage(ctx, phoneNumber, value)
}
