package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cutmatch-go/internal/config"
	"cutmatch-go/internal/infra/database"
	infraES "cutmatch-go/internal/infra/elasticsearch"
	infraKafka "cutmatch-go/internal/infra/kafka"
	infraRedis "cutmatch-go/internal/infra/redis"
	"cutmatch-go/internal/repository"
	"cutmatch-go/internal/service"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
)

// 评价聚合 worker：消费评价变更事件，从评价表重算发型的
// 平均分和评价数，写回数据库并刷新缓存与搜索索引
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// Redis 可选，不可用时跳过缓存失效
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, cache invalidation disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
	}

	// Elasticsearch 可选，不可用时跳过索引同步
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, index sync disabled", zap.Error(err))
	} else {
		defer infraES.Close()
	}

	db := database.Get()
	hairstyleRepo := repository.NewHairstyleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	hairstyleService := service.NewHairstyleService(hairstyleRepo, favoriteRepo)
	reviewService := service.NewReviewService(reviewRepo, hairstyleRepo, hairstyleService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["review_events"]
	groupID := "cutmatch-review-aggregator"

	logger.Info("Review aggregation worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	handler := func(event *infraKafka.ReviewEvent) error {
		return reviewService.RecomputeAggregates(ctx, event.HairstyleID)
	}

	infraKafka.StartReviewEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
