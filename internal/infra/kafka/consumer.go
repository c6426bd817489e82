package kafka

import (
	"context"
	"encoding/json"
	"time"

	"cutmatch-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ReviewEventHandler 处理评价变更事件的回调函数
type ReviewEventHandler func(event *ReviewEvent) error

// StartReviewEventConsumer 启动评价事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartReviewEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler ReviewEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka review event consumer stopped")
	}()

	logger.Info("Kafka review event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event ReviewEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal review event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		logger.Info("Received review event",
			zap.Int64("hairstyle_id", event.HairstyleID),
			zap.String("action", event.Action),
		)

		if err := handler(&event); err != nil {
			logger.Error("Failed to handle review event",
				zap.Int64("hairstyle_id", event.HairstyleID),
				zap.Error(err),
			)
		}
	}
}
