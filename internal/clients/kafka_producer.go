package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/crediscope/crediscope/internal/models"
)

const defaultProcessedTopic = "content.processed"

var (
	kafkaProducer *KafkaEventProducer
	kafkaOnce     sync.Once
)

// KafkaEventProducer publishes processed-item events. It is optional
// infrastructure: the pipeline runs fine without a broker configured.
type KafkaEventProducer struct {
	producer *kafka.Producer
	topic    string
}

func InitKafkaProducer() (*KafkaEventProducer, error) {
	var initErr error
	kafkaOnce.Do(func() {
		broker := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
		if broker == "" {
			initErr = fmt.Errorf("[KafkaProducer] missing KAFKA_BOOTSTRAP_SERVERS in environment")
			return
		}
		topic := os.Getenv("KAFKA_PROCESSED_TOPIC")
		if topic == "" {
			topic = defaultProcessedTopic
		}

		p, err := kafka.NewProducer(&kafka.ConfigMap{
			"bootstrap.servers":  broker,
			"enable.idempotence": true,
			"acks":               "all",
		})
		if err != nil {
			initErr = fmt.Errorf("[KafkaProducer] failed to create producer: %w", err)
			return
		}

		kafkaProducer = &KafkaEventProducer{producer: p, topic: topic}
		slog.Info("[KafkaProducer] Kafka producer initialized",
			slog.String("topic", topic))
	})
	if initErr != nil {
		return nil, initErr
	}
	if kafkaProducer == nil {
		return nil, fmt.Errorf("[KafkaProducer] producer was not initialized")
	}
	return kafkaProducer, nil
}

func CloseKafkaProducer() {
	if kafkaProducer == nil {
		return
	}
	slog.Info("[KafkaProducer] Flushing Kafka producer before shutdown...")
	if remaining := kafkaProducer.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaProducer] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kafkaProducer.producer.Close()
}

// PublishProcessed sends one processed-item event keyed by item ID.
func (p *KafkaEventProducer) PublishProcessed(event models.ProcessedItemEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaProducer] failed to marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.ItemID),
		Value:          jsonData,
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("[KafkaProducer] failed to produce event: %w", err)
	}

	slog.Info("[KafkaProducer] Published processed-item event",
		slog.String("item_id", event.ItemID),
		slog.String("publish_state", string(event.PublishState)))
	return nil
}
