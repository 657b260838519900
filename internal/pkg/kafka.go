package pkg

import (
	"context"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &KafkaProducer{writer: w}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish 以接收者为分区键投递通知事件，同一用户的通知保序；
// 事件类型放在 header 里，消费方不解包即可路由。
func (p *KafkaProducer) Publish(ctx context.Context, recipientID uint64, eventType string, payload []byte) error {
	msg := kafka.Message{
		Key:     []byte(strconv.FormatUint(recipientID, 10)),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
	}
	return p.writer.WriteMessages(ctx, msg)
}
