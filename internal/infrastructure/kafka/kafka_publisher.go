package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		timeout: 10 * time.Second,
	}
}

// PublishDealEvent keys messages by deal id so one deal's events stay ordered on a partition.
func (k *KafkaPublisher) PublishDealEvent(ctx context.Context, event domain.DealEvent) error {
	msg := NewDealEvent(event, time.Now())
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal deal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.DealID, 10)),
		Value: value,
		Time:  msg.OccurredAt,
	}); err != nil {
		return fmt.Errorf("write deal event %s: %w", msg.Type, err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
