package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"venuepay/pkg/logger"
)

// Publisher publishes checkout outcome events
type Publisher interface {
	PublishOutcome(ctx context.Context, event *OutcomeEvent) error
	Close() error
}

// KafkaPublisherConfig contains configuration for the Kafka outcome publisher
type KafkaPublisherConfig struct {
	Brokers          []string
	OutcomeTopic     string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaPublisherConfig returns a default publisher configuration
func DefaultKafkaPublisherConfig() *KafkaPublisherConfig {
	return &KafkaPublisherConfig{
		Brokers:          []string{"localhost:9092"},
		OutcomeTopic:     "checkout-outcomes",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaPublisher publishes outcome events to Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaPublisherConfig
	logger   *logger.Logger
}

// NewKafkaPublisher creates a new Kafka outcome publisher
func NewKafkaPublisher(config *KafkaPublisherConfig, log *logger.Logger) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps every event for one payment on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

// PublishOutcome publishes one outcome event
func (kp *KafkaPublisher) PublishOutcome(ctx context.Context, event *OutcomeEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal outcome event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kp.config.OutcomeTopic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID.String())},
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("producer"), Value: []byte("venuepay-checkout")},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send outcome event to Kafka: %w", err)
	}

	kp.logger.InfoWithContext(ctx, "checkout outcome event published", map[string]interface{}{
		"topic":     kp.config.OutcomeTopic,
		"partition": partition,
		"offset":    offset,
		"type":      event.Type,
	})
	return nil
}

// Close closes the Kafka producer
func (kp *KafkaPublisher) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// NopPublisher drops events, used when Kafka is disabled in configuration
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events
func NewNopPublisher() Publisher {
	return &NopPublisher{}
}

// PublishOutcome discards the event
func (NopPublisher) PublishOutcome(ctx context.Context, event *OutcomeEvent) error {
	return nil
}

// Close is a no-op
func (NopPublisher) Close() error {
	return nil
}
