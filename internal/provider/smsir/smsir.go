// Package smsir implements the sms.ir REST backend. Importing the package
// registers it under the "sms_ir" key.
package smsir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/smsgate/smsgate/internal/backend"
	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

const (
	// Key is the provider key configuration refers to.
	Key = "sms_ir"

	defaultBaseURL = "https://api.sms.ir"
	// region for numbers written in local format.
	defaultRegion = "IR"
)

func init() {
	backend.Register(backend.Unit{
		Name:       Key,
		Candidates: []backend.Candidate{{ImplName: "SmsIr", New: New}},
	})
}

// Provider sends SMS via the sms.ir v1 REST API.
type Provider struct {
	apiKey     string
	lineNumber int64
	templateID int64
	baseURL    string
	client     http.Client
}

// New creates a Provider from settings. api_key is required; line_number and
// template_id must be numeric when present.
func New(cfg *config.Config) (sms.Provider, error) {
	pc := cfg.Provider
	if pc.APIKey == "" {
		return nil, &sms.ConfigurationError{Reason: "sms_ir requires api_key"}
	}
	p := &Provider{apiKey: pc.APIKey, baseURL: pc.APIURL}
	if p.baseURL == "" {
		p.baseURL = defaultBaseURL
	}
	var err error
	if pc.LineNumber != "" {
		if p.lineNumber, err = strconv.ParseInt(pc.LineNumber, 10, 64); err != nil {
			return nil, &sms.ConfigurationError{Reason: "sms_ir line_number must be numeric"}
		}
	}
	if pc.TemplateID != "" {
		if p.templateID, err = strconv.ParseInt(pc.TemplateID, 10, 64); err != nil {
			return nil, &sms.ConfigurationError{Reason: "sms_ir template_id must be numeric"}
		}
	}
	return p, nil
}

func (p *Provider) post(ctx context.Context, op, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &sms.ProviderError{Provider: Key, Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &sms.ProviderError{Provider: Key, Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return &sms.ProviderError{Provider: Key, Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &sms.ProviderError{Provider: Key, Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	var parsed struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	// sms.ir reports failures both via HTTP status and via status != 1 in a
	// 200 body; a proxy error may not be JSON at all.
	if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
		if resp.StatusCode >= 300 || parsed.Status != 1 {
			return &sms.ProviderError{Provider: Key, Op: op,
				Err: fmt.Errorf("status %d: %s", parsed.Status, parsed.Message)}
		}
		return nil
	}
	if resp.StatusCode >= 300 {
		return &sms.ProviderError{Provider: Key, Op: op,
			Err: fmt.Errorf("error %d: %s", resp.StatusCode, string(respBody))}
	}
	return nil
}

func (p *Provider) line(lineNumber string) (int64, error) {
	if lineNumber == "" {
		return p.lineNumber, nil
	}
	n, err := strconv.ParseInt(lineNumber, 10, 64)
	if err != nil {
		return 0, &sms.ConfigurationError{Reason: "sms_ir line number must be numeric"}
	}
	return n, nil
}

func (p *Provider) SendOneMessage(ctx context.Context, phoneNumber, message, lineNumber string) error {
	return p.SendBulkMessages(ctx, []string{phoneNumber}, message, lineNumber)
}

func (p *Provider) SendBulkMessages(ctx context.Context, phoneNumbers []string, message, lineNumber string) error {
	mobiles, err := sms.NormalizePhones(phoneNumbers, defaultRegion)
	if err != nil {
		return err
	}
	line, err := p.line(lineNumber)
	if err != nil {
		return err
	}
	return p.post(ctx, "send", "/v1/send/bulk", map[string]any{
		"lineNumber":  line,
		"messageText": message,
		"mobiles":     mobiles,
	})
}

func (p *Provider) SendVerifyMessage(ctx context.Context, phoneNumber, value string) error {
	mobile, err := sms.NormalizePhone(phoneNumber, defaultRegion)
	if err != nil {
		return err
	}
	return p.post(ctx, "verify", "/v1/send/verify", map[string]any{
		"mobile":     mobile,
		"templateId": p.templateID,
		"parameters": []map[string]string{{"name": "Code", "value": value}},
	})
}
