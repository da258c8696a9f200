package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/resend/resend-go/v2"

	"eventbooking/internal/adapters/awsconfig"
	"eventbooking/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider     string
	FromAddress  string
	FromName     string
	ResendAPIKey string
	SES          SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES, "resend" uses the Resend API and
// "noop" or an unknown provider logs instead of sending. SES falls back to the SDK default credential chain
// when no static keys are configured.
func NewMailer(ctx context.Context, config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg, err := awsconfig.Load(ctx, awsconfig.Options{
			Region:          sesConfig.Region,
			AccessKeyID:     sesConfig.AccessKeyID,
			SecretAccessKey: sesConfig.SecretAccessKey,
			HTTPClient:      httpClient,
		})
		if err != nil {
			return nil, err
		}
		return &sesMailer{
			client: ses.NewFromConfig(awsCfg),
			source: formatSource(config.FromName, config.FromAddress),
			logger: logger,
		}, nil
	case "resend":
		if config.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend mailer requires an API key")
		}
		return &resendMailer{
			client: resend.NewClient(config.ResendAPIKey).Emails,
			from:   formatSource(config.FromName, config.FromAddress),
			logger: logger,
		}, nil
	case "noop", "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

func formatSource(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client sesAPI
	source string
	logger *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(html),
			Charset: aws.String("UTF-8"),
		}
	}
	if text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

type resendAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendMailer struct {
	client resendAPI
	from   string
	logger *slog.Logger
}

func (r *resendMailer) Send(ctx context.Context, to, subject, html, text string) error {
	sent, err := r.client.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	r.logger.InfoContext(ctx, "email sent via Resend", "message_id", sent.Id)
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", to, "subject", subject)
	return nil
}
