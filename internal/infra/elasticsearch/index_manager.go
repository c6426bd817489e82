package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cutmatch-go/internal/config"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
)

// GetHairstylesIndexMapping 返回 hairstyles 索引的 mapping
func GetHairstylesIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"name": {
					"type": "text",
					"analyzer": "standard",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
				},
				"description": {"type": "text", "analyzer": "standard"},
				"tags": {
					"type": "text",
					"analyzer": "standard",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 100}}
				},
				"suitable_face_shapes": {"type": "keyword"},
				"gender": {"type": "keyword"},
				"average_rating": {"type": "float"},
				"num_reviews": {"type": "long"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureHairstylesIndex 确保 hairstyles 索引存在，不存在则创建
func EnsureHairstylesIndex(ctx context.Context) error {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["hairstyles"]
	if indexName == "" {
		indexName = "hairstyles"
	}

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch hairstyles index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetHairstylesIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch hairstyles index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureHairstylesIndex(ctx)
}
