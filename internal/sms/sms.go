package sms

import (
	"context"
)

// Provider sends SMS messages. Any type implementing the full capability set
// (single, bulk, verification) is eligible for registration as a backend.
//
// lineNumber is the sender line; providers fall back to their configured line
// number when it is empty. Implementations report transport and auth failures
// as *ProviderError.
type Provider interface {
	SendOneMessage(ctx context.Context, phoneNumber, message, lineNumber string) error
	SendBulkMessages(ctx context.Context, phoneNumbers []string, message, lineNumber string) error
	SendVerifyMessage(ctx context.Context, phoneNumber, value string) error
}
