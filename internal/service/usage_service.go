package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/unitofwork"
	"github.com/sanjay123-Ad/AI-Backend/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// usageCounterTTL keeps daily counters around long enough to inspect
// yesterday as well.
const usageCounterTTL = 48 * time.Hour

type IUsageService interface {
	Consume(ctx context.Context) error
}

// usageService drains completion events off the in-process bus: it records
// an audit row per completion and bumps an advisory per-user daily counter.
type usageService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client // nil when Redis is not configured
}

func NewUsageService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	rdb *redis.Client,
) IUsageService {
	return &usageService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		rdb:        rdb,
	}
}

func (us *usageService) Consume(ctx context.Context) error {
	messages, err := us.pubSub.Subscribe(ctx, us.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			us.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (us *usageService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.CompletionRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal completion event: %v", err)
		msg.Ack() // malformed payloads would retry forever
		return
	}

	uow := us.uowFactory.NewUnitOfWork(ctx)

	record := entity.CompletionLog{
		Id:            uuid.New(),
		ChatSessionId: event.SessionId,
		UserId:        event.UserId,
		Provider:      event.Provider,
		Model:         event.Model,
		Operation:     event.Operation,
		DurationMs:    event.DurationMs,
		CreatedAt:     event.OccurredAt,
	}
	if err := uow.CompletionLogRepository().Create(ctx, &record); err != nil {
		log.Printf("[ERROR] Failed to record completion for session %s: %v", event.SessionId, err)
		msg.Nack()
		return
	}

	us.incrementDailyUsage(ctx, event.UserId)

	msg.Ack()
}

// incrementDailyUsage bumps the per-user counter for today. Advisory only:
// it is skipped without Redis and a failure never rejects the message.
func (us *usageService) incrementDailyUsage(ctx context.Context, userId uuid.UUID) {
	if us.rdb == nil {
		return
	}

	key := fmt.Sprintf("usage:%s:%s", userId, time.Now().Format("2006-01-02"))
	pipe := us.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, usageCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[WARN] Failed to update usage counter for user %s: %v", userId, err)
	}
}
