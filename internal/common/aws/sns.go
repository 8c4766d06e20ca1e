// internal/common/aws/sns.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSClient struct {
	client SNSAPI
}

func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

// NewSNSClientWithAPI is used by tests to inject a fake.
func NewSNSClientWithAPI(api SNSAPI) *SNSClient {
	return &SNSClient{client: api}
}

// PublishMessage publishes body to topicARN with an eventType message attribute
// so subscribers can filter.
func (s *SNSClient) PublishMessage(ctx context.Context, topicARN, eventType, body string) (string, error) {
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(topicARN),
		Message:  awssdk.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(eventType),
			},
		},
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}
