// Package sns implements the AWS SNS backend. Importing the package
// registers it under the "sns" key.
package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/smsgate/smsgate/internal/backend"
	"github.com/smsgate/smsgate/internal/config"
	"github.com/smsgate/smsgate/internal/sms"
)

// Key is the provider key configuration refers to.
const Key = "sns"

func init() {
	backend.Register(backend.Unit{
		Name:       Key,
		Candidates: []backend.Candidate{{ImplName: "SNS", New: New}},
	})
}

// Publisher abstracts the AWS SNS Publish call for testability.
type Publisher interface {
	Publish(ctx context.Context, phoneNumber, message string) (messageID string, err error)
}

// Provider sends SMS via AWS SNS. SNS has no sender line concept, so
// lineNumber is ignored.
type Provider struct {
	publisher Publisher
}

// New creates a Provider with a real AWS client for the configured region.
func New(cfg *config.Config) (sms.Provider, error) {
	if cfg.Provider.Region == "" {
		return nil, &sms.ConfigurationError{Reason: "sns requires region"}
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Provider.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewWithPublisher(&clientAdapter{client: awssns.NewFromConfig(awsCfg)}), nil
}

// NewWithPublisher creates a Provider over an explicit publisher. Tests use
// this to substitute a mock.
func NewWithPublisher(publisher Publisher) *Provider {
	return &Provider{publisher: publisher}
}

// clientAdapter wraps the AWS SNS client to implement Publisher.
type clientAdapter struct {
	client *awssns.Client
}

func (a *clientAdapter) Publish(ctx context.Context, phoneNumber, message string) (string, error) {
	out, err := a.client.Publish(ctx, &awssns.PublishInput{
		PhoneNumber: &phoneNumber,
		Message:     &message,
	})
	if err != nil {
		return "", err
	}
	if out.MessageId == nil {
		return "", nil
	}
	return *out.MessageId, nil
}

func (p *Provider) publish(ctx context.Context, phoneNumber, message string) error {
	to, err := sms.NormalizePhone(phoneNumber, "")
	if err != nil {
		return err
	}
	if _, err := p.publisher.Publish(ctx, to, message); err != nil {
		return &sms.ProviderError{Provider: Key, Op: "publish", Err: err}
	}
	return nil
}

func (p *Provider) SendOneMessage(ctx context.Context, phoneNumber, message, _ string) error {
	return p.publish(ctx, phoneNumber, message)
}

func (p *Provider) SendBulkMessages(ctx context.Context, phoneNumbers []string, message, _ string) error {
	for _, phoneNumber := range phoneNumbers {
		if err := p.publish(ctx, phoneNumber, message); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) SendVerifyMessage(ctx context.Context, phoneNumber, value string) error {
	return p.publish(ctx, phoneNumber, "Your verification code is: "+value)
}
