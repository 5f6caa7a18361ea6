package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// Producer публикует события заказов в Kafka
type Producer struct {
	producer sarama.SyncProducer
	logger   *log.Entry
}

// NewProducer создает новый Kafka producer
func NewProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true // Включаем идемпотентность
	config.Net.MaxOpenRequests = 1    // Для идемпотентности

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		logger:   log.WithField("component", "kafka-producer"),
	}, nil
}

// OrderCreated публикует событие о создании заказа
func (p *Producer) OrderCreated(orderID, resellerID, customerID uuid.UUID, at time.Time) error {
	return p.publish(orderID.String(), NewOrderCreatedEvent(orderID, resellerID, customerID, at))
}

// OrderStatusChanged публикует событие о смене статуса заказа
func (p *Producer) OrderStatusChanged(orderID, statusID uuid.UUID, at time.Time) error {
	return p.publish(orderID.String(), NewOrderStatusChangedEvent(orderID, statusID, at))
}

// publish сериализует событие и отправляет его в топик событий заказов
func (p *Producer) publish(key string, event OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     TopicOrderEvents,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic": TopicOrderEvents,
			"key":   key,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":     TopicOrderEvents,
		"key":       key,
		"event":     event.EventType,
		"partition": partition,
		"offset":    offset,
	}).Debug("message sent to kafka")

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

var _ domain.EventPublisher = (*Producer)(nil)

// NoopPublisher — заглушка для окружений без Kafka.
type NoopPublisher struct{}

// NewNoopPublisher возвращает публикатор, молча игнорирующий события.
func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (*NoopPublisher) OrderCreated(uuid.UUID, uuid.UUID, uuid.UUID, time.Time) error { return nil }

func (*NoopPublisher) OrderStatusChanged(uuid.UUID, uuid.UUID, time.Time) error { return nil }

var _ domain.EventPublisher = (*NoopPublisher)(nil)
