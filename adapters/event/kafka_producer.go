package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/codeflix/catalog-admin-api/internal/config"
)

const TopicCatalogEvents = "catalog.events"

const (
	CatalogEventVideoCreated = "video.created"
	CatalogEventVideoUpdated = "video.updated"
	CatalogEventVideoDeleted = "video.deleted"
)

type CatalogEventPayload struct {
	EventType  string    `json:"event_type"`
	VideoID    uuid.UUID `json:"video_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher lets use cases emit catalog events without binding to Kafka.
type Publisher interface {
	PublishCatalogEvent(ctx context.Context, payload CatalogEventPayload) error
}

type KafkaProducerClient struct {
	CatalogEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	catalogWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicCatalogEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producer successfully.")

	return &KafkaProducerClient{CatalogEventsWriter: catalogWriter}, nil
}

func (c *KafkaProducerClient) PublishCatalogEvent(ctx context.Context, payload CatalogEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(payload.VideoID.String()),
		Value: value,
	}
	if err := c.CatalogEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write catalog event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.CatalogEventsWriter != nil {
		c.CatalogEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producer")
}
