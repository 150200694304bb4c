// Package kavenegar implements the Kavenegar REST backend. Importing the
// package registers it under the "kavenegar" key.
package kavenegar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/smsgate/smsgate/internal/backend"
	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

const (
	// Key is the provider key configuration refers to.
	Key = "kavenegar"

	defaultBaseURL = "https://api.kavenegar.com"
	defaultRegion  = "IR"
)

func init() {
	backend.Register(backend.Unit{
		Name:       Key,
		Candidates: []backend.Candidate{{ImplName: "Kavenegar", New: New}},
	})
}

// Provider sends SMS via the Kavenegar REST API. The API key travels in the
// URL path, the way the Kavenegar API defines it.
type Provider struct {
	apiKey     string
	lineNumber string
	templateID string
	baseURL    string
	client     http.Client
}

// New creates a Provider from settings. api_key is required.
func New(cfg *config.Config) (sms.Provider, error) {
	pc := cfg.Provider
	if pc.APIKey == "" {
		return nil, &sms.ConfigurationError{Reason: "kavenegar requires api_key"}
	}
	baseURL := pc.APIURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		apiKey:     pc.APIKey,
		lineNumber: pc.LineNumber,
		templateID: pc.TemplateID,
		baseURL:    baseURL,
	}, nil
}

func (p *Provider) call(ctx context.Context, op, path string, form url.Values) error {
	endpoint := fmt.Sprintf("%s/v1/%s/%s", p.baseURL, p.apiKey, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &sms.ProviderError{Provider: Key, Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		Return struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"return"`
	}
	if json.Unmarshal(respBody, &parsed) == nil && parsed.Return.Status != 0 {
		if parsed.Return.Status != 200 {
			return &sms.ProviderError{Provider: Key, Op: op,
				Err: fmt.Errorf("status %d: %s", parsed.Return.Status, parsed.Return.Message)}
		}
		return nil
	}
	if resp.StatusCode >= 300 {
		return &sms.ProviderError{Provider: Key, Op: op,
			Err: fmt.Errorf("error %d: %s", resp.StatusCode, string(respBody))}
	}
	return nil
}

func (p *Provider) sender(lineNumber string) string {
	if lineNumber != "" {
		return lineNumber
	}
	return p.lineNumber
}

func (p *Provider) SendOneMessage(ctx context.Context, phoneNumber, message, lineNumber string) error {
	return p.SendBulkMessages(ctx, []string{phoneNumber}, message, lineNumber)
}

func (p *Provider) SendBulkMessages(ctx context.Context, phoneNumbers []string, message, lineNumber string) error {
	receptors, err := sms.NormalizePhones(phoneNumbers, defaultRegion)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("receptor", strings.Join(receptors, ","))
	form.Set("message", message)
	if sender := p.sender(lineNumber); sender != "" {
		form.Set("sender", sender)
	}
	return p.call(ctx, "send", "sms/send.json", form)
}

func (p *Provider) SendVerifyMessage(ctx context.Context, phoneNumber, value string) error {
	receptor, err := sms.NormalizePhone(phoneNumber, defaultRegion)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("receptor", receptor)
	form.Set("token", value)
	if p.templateID != "" {
		form.Set("template", p.templateID)
	}
	return p.call(ctx, "verify", "verify/lookup.json", form)
}
