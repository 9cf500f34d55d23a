package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Shopify/sarama"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/analytics"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type summaryGenerator interface {
	Generate(ctx context.Context, userID, period string) (analytics.Summary, error)
}

type summaryCache interface {
	CacheSummary(userID, period string, summary analytics.Summary) error
}

// Consumer drains refresh events and re-warms the summary cache so the next
// analytics read for that user is served hot.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	generator     summaryGenerator
	cache         summaryCache
}

func NewConsumer(cfg consumerConfig, generator summaryGenerator, cache summaryCache) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.RefreshTopic(),
		generator:     generator,
		cache:         cache,
	}, err
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event RefreshEvent
		err := json.Unmarshal(message.Value, &event)
		if err != nil {
			logger.Error("cannot unmarshal kafka message", zap.Error(err))
		} else {
			logger.Info(
				"received refresh event",
				zap.ByteString("key", message.Key),
				zap.String("userID", event.UserID),
				zap.String("reason", event.Reason),
			)
			c.processEvent(session.Context(), event)
		}
		session.MarkMessage(message, "")
	}

	return nil
}

func (c *Consumer) processEvent(ctx context.Context, event RefreshEvent) {
	summary, err := c.generator.Generate(ctx, event.UserID, "")
	if err != nil {
		logger.Error("failed to generate summary", zap.Error(err))
		return
	}
	if err = c.cache.CacheSummary(event.UserID, "", summary); err != nil {
		logger.Error("failed to cache summary", zap.Error(err))
	}
}
