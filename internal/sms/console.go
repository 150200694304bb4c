package sms

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ConsoleProvider writes messages to an output stream instead of delivering
// them. It is the fallback backend used whenever debug mode is active or the
// debug setting is absent, so it must never fail and never touch the network.
type ConsoleProvider struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleProvider creates a ConsoleProvider. If w is nil, os.Stdout is used.
func NewConsoleProvider(w io.Writer) *ConsoleProvider {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleProvider{w: w}
}

func (p *ConsoleProvider) write(msg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.w, "\n%s\n%s\n", msg, strings.Repeat("-", 79))
	return err
}

func (p *ConsoleProvider) SendOneMessage(_ context.Context, phoneNumber, message, lineNumber string) error {
	return p.write(fmt.Sprintf("Recipient: %s\nMessage: %s\nLine Number: %s", phoneNumber, message, lineNumber))
}

func (p *ConsoleProvider) SendBulkMessages(ctx context.Context, phoneNumbers []string, message, lineNumber string) error {
	for _, phoneNumber := range phoneNumbers {
		if err := p.SendOneMessage(ctx, phoneNumber, message, lineNumber); err != nil {
			return err
		}
	}
	return nil
}

func (p *ConsoleProvider) SendVerifyMessage(_ context.Context, phoneNumber, value string) error {
	return p.write(fmt.Sprintf("Recipient: %s\nVerification Code: %s", phoneNumber, value))
}
