// internal/common/aws/aws_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	return &ses.SendEmailOutput{}, f.err
}

func TestSNSClient_PublishMessage(t *testing.T) {
	fake := &fakeSNS{}
	client := NewSNSClientWithAPI(fake)

	id, err := client.PublishMessage(context.Background(), "arn:aws:sns:eu-west-1:1:events", "assessment.template_created", `{"templateId":3}`)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "arn:aws:sns:eu-west-1:1:events", awssdk.ToString(fake.input.TopicArn))
	assert.Equal(t, "assessment.template_created", awssdk.ToString(fake.input.MessageAttributes["eventType"].StringValue))

	fake.err = errors.New("throttled")
	_, err = client.PublishMessage(context.Background(), "arn", "x", "{}")
	assert.Error(t, err)
}

func TestSESClient_SendText(t *testing.T) {
	fake := &fakeSES{}
	client := NewSESClientWithAPI(fake, "program@accelerator.test")

	require.NoError(t, client.SendText(context.Background(), "founder@startup.test", "Approved", "Welcome"))
	assert.Equal(t, "program@accelerator.test", awssdk.ToString(fake.input.Source))
	assert.Equal(t, []string{"founder@startup.test"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Approved", awssdk.ToString(fake.input.Message.Subject.Data))
}
