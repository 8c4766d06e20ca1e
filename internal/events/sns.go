// internal/events/sns.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// MessagePublisher is satisfied by aws.SNSClient.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, topicARN, eventType, body string) (string, error)
}

// SNSSink publishes every event as JSON to one topic, with the event type as
// a message attribute.
type SNSSink struct {
	publisher MessagePublisher
	topicARN  string
}

func NewSNSSink(publisher MessagePublisher, topicARN string) *SNSSink {
	return &SNSSink{publisher: publisher, topicARN: topicARN}
}

func (s *SNSSink) Send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.ID, err)
	}
	if _, err := s.publisher.PublishMessage(ctx, s.topicARN, ev.Type, string(body)); err != nil {
		return fmt.Errorf("publish event %s to sns: %w", ev.ID, err)
	}
	return nil
}
