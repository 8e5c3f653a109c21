package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sanjay123-Ad/AI-Backend/pkg/events"
	pktNats "github.com/sanjay123-Ad/AI-Backend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishCompletion(ctx context.Context, event *events.CompletionRecorded) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	// eventPublisher fans the same event out to NATS for external
	// consumers; nil when NATS is not configured.
	eventPublisher *pktNats.Publisher
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, eventPublisher *pktNats.Publisher) IPublisherService {
	return &publisherService{
		topicName:      topicName,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
	}
}

func (ps *publisherService) PublishCompletion(ctx context.Context, event *events.CompletionRecorded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal completion event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("publish completion event: %w", err)
	}

	// External fan-out is auxiliary; a NATS failure never fails the request.
	if ps.eventPublisher != nil {
		if err := ps.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", event.EventType(), err)
		}
	}

	return nil
}
