package email

import (
	"context"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSService is the subset of the SNS client used here, extracted for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSSender publishes short text notifications through AWS SNS. It is the
// optional second channel of the watchdog; email remains the primary one.
type SMSSender struct {
	client SNSService
	logger logger.Logger
}

func NewSMSSender(ctx context.Context, cfg config.EmailConfig, log logger.Logger) (*SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, err
	}
	return &SMSSender{
		client: sns.NewFromConfig(awsCfg),
		logger: log.WithFields(map[string]interface{}{"sender": "sns"}),
	}, nil
}

// NewSMSSenderWithClient allows injecting a mock client in tests.
func NewSMSSenderWithClient(client SNSService, log logger.Logger) *SMSSender {
	return &SMSSender{client: client, logger: log}
}

func (s *SMSSender) Send(ctx context.Context, phone, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	if err != nil {
		return errors.NewSMSSendFailedError(err)
	}
	return nil
}
