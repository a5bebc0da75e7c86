package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	internalWS "shiksha-saathi-be/internal/websocket"
	"shiksha-saathi-be/pkg/events"
	pktNats "shiksha-saathi-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event bus: every event reaches
// the websocket hub for live dashboards, and doubt/quiz events are
// mirrored to NATS when a connection is configured.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	hub            *internalWS.Hub
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *internalWS.Hub,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		hub:            hub,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

type busEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope busEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.hub != nil {
		cs.hub.Broadcast(envelope.Type, envelope.Data)
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to mirror event %s to NATS: %v", envelope.Type, err)
		}
	}

	msg.Ack()
}
