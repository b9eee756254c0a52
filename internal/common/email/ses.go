package email

import (
	"context"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the subset of the SES client used here, extracted for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends mail through AWS Simple Email Service.
type SESMailer struct {
	cfg    config.EmailConfig
	client SESService
	logger logger.Logger
}

func NewSESMailer(ctx context.Context, cfg config.EmailConfig, log logger.Logger) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{
		cfg:    cfg,
		client: ses.NewFromConfig(awsCfg),
		logger: log.WithFields(map[string]interface{}{"mailer": "ses"}),
	}, nil
}

// NewSESMailerWithClient allows injecting a mock client in tests.
func NewSESMailerWithClient(cfg config.EmailConfig, client SESService, log logger.Logger) *SESMailer {
	return &SESMailer{cfg: cfg, client: client, logger: log}
}

func (m *SESMailer) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = m.cfg.From
	}

	if err := ValidateAddress(msg.To); err != nil {
		return errors.NewValidationError(err.Error())
	}

	body := &types.Body{}
	if msg.IsHTML {
		body.Html = &types.Content{Data: aws.String(msg.Body)}
	} else {
		body.Text = &types.Content{Data: aws.String(msg.Body)}
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body:    body,
		},
		Source: aws.String(msg.From),
	})
	if err != nil {
		return errors.NewEmailSendFailedError(err)
	}

	m.logger.Info("Email sent successfully", map[string]interface{}{
		"to": msg.To,
	})
	return nil
}
