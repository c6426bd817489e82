package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cutmatch-go/internal/config"
	"cutmatch-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 评价事件类型
const (
	ReviewEventCreated = "created"
	ReviewEventUpdated = "updated"
	ReviewEventDeleted = "deleted"
)

// ReviewEvent 发型评价变更消息体
type ReviewEvent struct {
	HairstyleID int64  `json:"hairstyle_id"`
	ReviewID    int64  `json:"review_id"`
	UserID      int64  `json:"user_id"`
	Action      string `json:"action"`
	Rating      int    `json:"rating,omitempty"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// ProducerReady 生产者是否已初始化
func ProducerReady() bool {
	return producer != nil
}

// SendReviewEvent 发送评价变更事件到 Kafka
func SendReviewEvent(ctx context.Context, topic string, event *ReviewEvent) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("hairstyle-%d", event.HairstyleID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send review event: %w", err)
	}

	logger.Info("Review event sent",
		zap.Int64("hairstyle_id", event.HairstyleID),
		zap.Int64("review_id", event.ReviewID),
		zap.String("action", event.Action),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
