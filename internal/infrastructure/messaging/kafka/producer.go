package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"customer_analytics/internal/config"
	"customer_analytics/internal/domain/analytics"
	"customer_analytics/internal/infrastructure/encoding/avro"
	"customer_analytics/pkg/logger"
)

// FeatureProducer publishes Avro-encoded churn feature records to Kafka.
// It implements the gold stage's Publisher interface.
type FeatureProducer struct {
	client  *kgo.Client
	encoder *avro.Encoder
	topic   string
	log     logger.Logger
}

func NewFeatureProducer(cfg config.KafkaConfig, log logger.Logger) (*FeatureProducer, error) {
	log.Info("connecting kafka producer",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.FeatureTopic),
	)

	encoder, err := avro.NewEncoder(avro.ChurnFeatureSchema)
	if err != nil {
		return nil, fmt.Errorf("feature schema: %w", err)
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.FeatureTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &FeatureProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.FeatureTopic,
		log:     log,
	}, nil
}

func (p *FeatureProducer) PublishFeatures(ctx context.Context, features analytics.ChurnFeatures) error {
	if features.CustomerUniqueID == "" {
		return fmt.Errorf("customer_unique_id is empty")
	}

	payload, err := p.encoder.EncodeNative(avro.ChurnFeaturesToNative(features))
	if err != nil {
		return fmt.Errorf("encode features for %s: %w", features.CustomerUniqueID, err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(uuid.NewString()),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		p.log.Error("publish failed",
			logger.String("topic", p.topic),
			logger.String("customer", features.CustomerUniqueID),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	return nil
}

func (p *FeatureProducer) Close(ctx context.Context) error {
	p.log.Info("closing kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
