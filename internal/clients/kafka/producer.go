package kafka

import (
	"encoding/json"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/logger"
)

// RefreshEvent asks the reporter to recompute and re-cache a user's summary.
// Produced after every expense write and budget update.
type RefreshEvent struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type producerConfig interface {
	Brokers() []string
	RefreshTopic() string
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	return &Producer{
		producer: producer,
		topic:    cfg.RefreshTopic(),
	}, err
}

func (p *Producer) ProduceRefresh(event RefreshEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "produce refresh")
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.UserID),
		Value: sarama.ByteEncoder(raw),
	})
	return err
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}
