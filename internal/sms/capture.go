package sms

import (
	"context"
	"regexp"
	"sync"
)

// CaptureProvider records sends for use in tests.
type CaptureProvider struct {
	mu    sync.Mutex
	Calls []CaptureCall
	// Err, when set, is returned from every send.
	Err error
}

// CaptureCall records a single send invocation.
type CaptureCall struct {
	Op         string
	To         []string
	Body       string
	LineNumber string
}

func (c *CaptureProvider) record(call CaptureCall) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, call)
	return c.Err
}

func (c *CaptureProvider) SendOneMessage(_ context.Context, phoneNumber, message, lineNumber string) error {
	return c.record(CaptureCall{Op: "one", To: []string{phoneNumber}, Body: message, LineNumber: lineNumber})
}

func (c *CaptureProvider) SendBulkMessages(_ context.Context, phoneNumbers []string, message, lineNumber string) error {
	to := make([]string, len(phoneNumbers))
	copy(to, phoneNumbers)
	return c.record(CaptureCall{Op: "bulk", To: to, Body: message, LineNumber: lineNumber})
}

func (c *CaptureProvider) SendVerifyMessage(_ context.Context, phoneNumber, value string) error {
	return c.record(CaptureCall{Op: "verify", To: []string{phoneNumber}, Body: value})
}

// LastCode extracts a 4-8 digit code from the last captured message body.
func (c *CaptureProvider) LastCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return ""
	}
	re := regexp.MustCompile(`\b(\d{4,8})\b`)
	matches := re.FindStringSubmatch(c.Calls[len(c.Calls)-1].Body)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// Reset clears all recorded calls.
func (c *CaptureProvider) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = nil
}
