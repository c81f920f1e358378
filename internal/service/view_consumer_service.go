package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"forum-live-be/internal/dto"
	"forum-live-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IViewConsumerService interface {
	Consume(ctx context.Context) error
}

type viewConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	threadRepo repository.ThreadRepository
}

func NewViewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	threadRepo repository.ThreadRepository,
) IViewConsumerService {
	return &viewConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		threadRepo: threadRepo,
	}
}

func (cs *viewConsumerService) Consume(ctx context.Context) error {
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

func (cs *viewConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishThreadViewedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal view event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.threadRepo.IncrementViews(ctx, payload.ThreadId, 1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Thread deleted between view and count. Ack.
			msg.Ack()
			return
		}
		log.Printf("[ERROR] Failed to increment views for thread %s: %v", payload.ThreadId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
