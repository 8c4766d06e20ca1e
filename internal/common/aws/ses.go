// internal/common/aws/ses.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESClient struct {
	client SESAPI
	from   string
}

func NewSESClient(ctx context.Context, region, from string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESClient{client: ses.NewFromConfig(cfg), from: from}, nil
}

func NewSESClientWithAPI(api SESAPI, from string) *SESClient {
	return &SESClient{client: api, from: from}
}

// SendText sends a plain-text email to a single recipient.
func (s *SESClient) SendText(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body)},
			},
		},
	})
	return err
}
