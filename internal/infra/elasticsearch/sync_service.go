package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cutmatch-go/internal/config"
	"cutmatch-go/internal/model"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
)

// ESHairstyleDoc ES 发型文档结构
type ESHairstyleDoc struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Tags               []string `json:"tags"`
	SuitableFaceShapes []string `json:"suitable_face_shapes"`
	Gender             string   `json:"gender"`
	AverageRating      float64  `json:"average_rating"`
	NumReviews         int64    `json:"num_reviews"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func hairstylesIndexName() string {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["hairstyles"]
	if indexName == "" {
		indexName = "hairstyles"
	}
	return indexName
}

func hairstyleToESDoc(h *model.Hairstyle) *ESHairstyleDoc {
	return &ESHairstyleDoc{
		ID:                 h.ID,
		Name:               h.Name,
		Description:        h.Description,
		Tags:               h.Tags,
		SuitableFaceShapes: h.SuitableFaceShapes,
		Gender:             h.Gender,
		AverageRating:      h.AverageRating,
		NumReviews:         h.NumReviews,
		CreatedAt:          h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          h.UpdatedAt.Format(time.RFC3339),
	}
}

// SyncHairstyle 同步单个发型到 ES
func SyncHairstyle(ctx context.Context, h *model.Hairstyle) error {
	doc := hairstyleToESDoc(h)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, hairstylesIndexName(), fmt.Sprintf("%d", h.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Hairstyle synced to ES", zap.Int64("hairstyle_id", h.ID))
	return nil
}

// DeleteHairstyle 从 ES 删除发型
func DeleteHairstyle(ctx context.Context, hairstyleID int64) error {
	resp, err := Delete(ctx, hairstylesIndexName(), fmt.Sprintf("%d", hairstyleID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncHairstyles 批量同步发型到 ES
func BulkSyncHairstyles(ctx context.Context, hairstyles []model.Hairstyle) (success, failed int, err error) {
	indexName := hairstylesIndexName()

	var buf strings.Builder
	for i := range hairstyles {
		doc := hairstyleToESDoc(&hairstyles[i])
		docBody, _ := json.Marshal(doc)

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, indexName, hairstyles[i].ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(hairstyles), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(hairstyles), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(hairstyles), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
