package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/infra/elasticsearch"
	"cutmatch-go/internal/infra/redis"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	hairstyleCacheKeyFmt = "hairstyle:detail:%d"
	hairstyleCacheTTL    = 10 * time.Minute
)

type HairstyleService struct {
	hairstyleRepo *repository.HairstyleRepository
	favoriteRepo  *repository.FavoriteRepository
}

func NewHairstyleService(hairstyleRepo *repository.HairstyleRepository, favoriteRepo *repository.FavoriteRepository) *HairstyleService {
	return &HairstyleService{hairstyleRepo: hairstyleRepo, favoriteRepo: favoriteRepo}
}

// Create 新增发型（管理员），同步写入搜索索引
func (s *HairstyleService) Create(ctx context.Context, req *dto.HairstyleCreateRequest) (*dto.HairstyleInfo, error) {
	hairstyle := &model.Hairstyle{
		Name:               req.Name,
		Description:        req.Description,
		ImageURLs:          req.ImageURLs,
		Tags:               req.Tags,
		SuitableFaceShapes: req.SuitableFaceShapes,
		Gender:             req.Gender,
	}
	if err := s.hairstyleRepo.Create(hairstyle); err != nil {
		return nil, err
	}

	s.syncToES(ctx, hairstyle)
	return toHairstyleInfo(hairstyle, false), nil
}

// GetByID 获取发型详情，带 Redis 缓存
// callerID 大于 0 时附带收藏状态（收藏状态不缓存）
func (s *HairstyleService) GetByID(ctx context.Context, hairstyleID, callerID int64) (*dto.HairstyleInfo, error) {
	hairstyle, err := s.getWithCache(ctx, hairstyleID)
	if err != nil {
		return nil, err
	}

	favorited := false
	if callerID > 0 {
		favorited, err = s.favoriteRepo.Exists(callerID, hairstyleID)
		if err != nil {
			return nil, err
		}
	}
	return toHairstyleInfo(hairstyle, favorited), nil
}

// List 发型目录（分页 + 筛选）
func (s *HairstyleService) List(callerID int64, page, pageSize int, filters repository.HairstyleFilters) (*dto.HairstyleListData, error) {
	skip := (page - 1) * pageSize
	hairstyles, total, err := s.hairstyleRepo.ListWithFilters(skip, pageSize, filters)
	if err != nil {
		return nil, err
	}

	infos, err := s.buildHairstyleInfos(hairstyles, callerID)
	if err != nil {
		return nil, err
	}

	return &dto.HairstyleListData{
		Hairstyles: infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Update 更新发型（管理员），空字段不修改；刷缓存并同步搜索索引
func (s *HairstyleService) Update(ctx context.Context, hairstyleID int64, req *dto.HairstyleUpdateRequest) (*dto.HairstyleInfo, error) {
	if _, err := s.hairstyleRepo.GetByID(hairstyleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHairstyleNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURLs != nil {
		encoded, err := json.Marshal(req.ImageURLs)
		if err != nil {
			return nil, err
		}
		updates["image_urls"] = string(encoded)
	}
	if req.Tags != nil {
		encoded, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = string(encoded)
	}
	if req.SuitableFaceShapes != nil {
		encoded, err := json.Marshal(req.SuitableFaceShapes)
		if err != nil {
			return nil, err
		}
		updates["suitable_face_shapes"] = string(encoded)
	}
	if req.Gender != nil && *req.Gender != "" {
		updates["gender"] = *req.Gender
	}

	if len(updates) > 0 {
		if err := s.hairstyleRepo.Update(hairstyleID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHairstyleNotFound
			}
			return nil, err
		}
	}

	s.InvalidateCache(ctx, hairstyleID)

	hairstyle, err := s.hairstyleRepo.GetByID(hairstyleID)
	if err != nil {
		return nil, err
	}
	s.syncToES(ctx, hairstyle)

	return toHairstyleInfo(hairstyle, false), nil
}

// Delete 删除发型（管理员），同时清缓存和搜索索引
func (s *HairstyleService) Delete(ctx context.Context, hairstyleID int64) error {
	if err := s.hairstyleRepo.Delete(hairstyleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHairstyleNotFound
		}
		return err
	}

	s.InvalidateCache(ctx, hairstyleID)

	if elasticsearch.Get() != nil {
		if err := elasticsearch.DeleteHairstyle(ctx, hairstyleID); err != nil {
			logger.Warn("Failed to delete hairstyle from ES",
				zap.Int64("hairstyle_id", hairstyleID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// InvalidateCache 清除发型详情缓存
func (s *HairstyleService) InvalidateCache(ctx context.Context, hairstyleID int64) {
	if redis.Get() == nil {
		return
	}
	key := fmt.Sprintf(hairstyleCacheKeyFmt, hairstyleID)
	if err := redis.Get().Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to invalidate hairstyle cache",
			zap.Int64("hairstyle_id", hairstyleID),
			zap.Error(err),
		)
	}
}

func (s *HairstyleService) getWithCache(ctx context.Context, hairstyleID int64) (*model.Hairstyle, error) {
	if redis.Get() == nil {
		return s.getFromDB(hairstyleID)
	}

	key := fmt.Sprintf(hairstyleCacheKeyFmt, hairstyleID)
	cached, err := redis.Get().Get(ctx, key).Result()
	if err == nil {
		var hairstyle model.Hairstyle
		if err := json.Unmarshal([]byte(cached), &hairstyle); err == nil {
			return &hairstyle, nil
		}
	}

	hairstyle, err := s.getFromDB(hairstyleID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(hairstyle); err == nil {
		if err := redis.Get().Set(ctx, key, payload, hairstyleCacheTTL).Err(); err != nil {
			logger.Warn("Failed to cache hairstyle detail", zap.Int64("hairstyle_id", hairstyleID), zap.Error(err))
		}
	}
	return hairstyle, nil
}

func (s *HairstyleService) getFromDB(hairstyleID int64) (*model.Hairstyle, error) {
	hairstyle, err := s.hairstyleRepo.GetByID(hairstyleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHairstyleNotFound
		}
		return nil, err
	}
	return hairstyle, nil
}

func (s *HairstyleService) syncToES(ctx context.Context, hairstyle *model.Hairstyle) {
	if elasticsearch.Get() == nil {
		return
	}
	if err := elasticsearch.SyncHairstyle(ctx, hairstyle); err != nil {
		logger.Warn("Failed to sync hairstyle to ES",
			zap.Int64("hairstyle_id", hairstyle.ID),
			zap.Error(err),
		)
	}
}

func (s *HairstyleService) buildHairstyleInfos(hairstyles []model.Hairstyle, callerID int64) ([]dto.HairstyleInfo, error) {
	favorited := map[int64]bool{}
	if callerID > 0 && len(hairstyles) > 0 {
		ids := make([]int64, 0, len(hairstyles))
		for i := range hairstyles {
			ids = append(ids, hairstyles[i].ID)
		}
		var err error
		favorited, err = s.favoriteRepo.BatchCheckFavorited(callerID, ids)
		if err != nil {
			return nil, err
		}
	}

	infos := make([]dto.HairstyleInfo, 0, len(hairstyles))
	for i := range hairstyles {
		infos = append(infos, *toHairstyleInfo(&hairstyles[i], favorited[hairstyles[i].ID]))
	}
	return infos, nil
}

func toHairstyleInfo(h *model.Hairstyle, favorited bool) *dto.HairstyleInfo {
	return &dto.HairstyleInfo{
		ID:                 h.ID,
		Name:               h.Name,
		Description:        h.Description,
		ImageURLs:          h.ImageURLs,
		Tags:               h.Tags,
		SuitableFaceShapes: h.SuitableFaceShapes,
		Gender:             h.Gender,
		AverageRating:      h.AverageRating,
		NumReviews:         h.NumReviews,
		IsFavorited:        favorited,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}
