package service

import (
	"context"
	"errors"
	"math"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/config"
	"cutmatch-go/internal/infra/elasticsearch"
	"cutmatch-go/internal/infra/kafka"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("评价不存在")
	ErrReviewNoPermission = errors.New("没有权限操作该评价")
	ErrAlreadyReviewed    = errors.New("已评价过该发型")
)

type ReviewService struct {
	reviewRepo       *repository.ReviewRepository
	hairstyleRepo    *repository.HairstyleRepository
	hairstyleService *HairstyleService
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	hairstyleRepo *repository.HairstyleRepository,
	hairstyleService *HairstyleService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:       reviewRepo,
		hairstyleRepo:    hairstyleRepo,
		hairstyleService: hairstyleService,
	}
}

// Create 发表评价；每用户每发型最多一条
func (s *ReviewService) Create(ctx context.Context, userID, hairstyleID int64, req *dto.ReviewCreateRequest) (*dto.ReviewInfo, error) {
	exists, err := s.hairstyleRepo.Exists(hairstyleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHairstyleNotFound
	}

	if _, err := s.reviewRepo.GetByUserAndHairstyle(userID, hairstyleID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.Review{
		UserID:      userID,
		HairstyleID: hairstyleID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	s.publishOrRecompute(ctx, &kafka.ReviewEvent{
		HairstyleID: hairstyleID,
		ReviewID:    review.ID,
		UserID:      userID,
		Action:      kafka.ReviewEventCreated,
		Rating:      req.Rating,
	})

	return s.loadReviewInfo(review.ID)
}

// ListByHairstyle 某发型的评价列表
func (s *ReviewService) ListByHairstyle(hairstyleID int64, page, pageSize int) (*dto.ReviewListData, error) {
	exists, err := s.hairstyleRepo.Exists(hairstyleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHairstyleNotFound
	}

	skip := (page - 1) * pageSize
	reviews, total, err := s.reviewRepo.ListByHairstyle(hairstyleID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.ReviewInfo, 0, len(reviews))
	for i := range reviews {
		infos = append(infos, *toReviewInfo(&reviews[i]))
	}

	return &dto.ReviewListData{
		Reviews:    infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Update 修改自己的评价；评分变动会触发聚合重算
func (s *ReviewService) Update(ctx context.Context, reviewID, callerID int64, callerRole string, req *dto.ReviewUpdateRequest) (*dto.ReviewInfo, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.UserID != callerID && callerRole != "admin" {
		return nil, ErrReviewNoPermission
	}

	updates := make(map[string]interface{})
	ratingChanged := false
	if req.Rating != nil && *req.Rating != review.Rating {
		updates["rating"] = *req.Rating
		ratingChanged = true
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := s.reviewRepo.Update(reviewID, updates); err != nil {
			return nil, err
		}
	}

	if ratingChanged {
		s.publishOrRecompute(ctx, &kafka.ReviewEvent{
			HairstyleID: review.HairstyleID,
			ReviewID:    reviewID,
			UserID:      callerID,
			Action:      kafka.ReviewEventUpdated,
			Rating:      *req.Rating,
		})
	}

	return s.loadReviewInfo(reviewID)
}

// Delete 删除评价；作者本人或管理员
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID int64, callerRole string) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != callerID && callerRole != "admin" {
		return ErrReviewNoPermission
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.publishOrRecompute(ctx, &kafka.ReviewEvent{
		HairstyleID: review.HairstyleID,
		ReviewID:    reviewID,
		UserID:      callerID,
		Action:      kafka.ReviewEventDeleted,
	})

	return nil
}

// RecomputeAggregates 从评价表重算发型的平均分与评价数并写回
// worker 消费事件后调用；API 侧在 Kafka 不可用时同步调用兜底
func (s *ReviewService) RecomputeAggregates(ctx context.Context, hairstyleID int64) error {
	avg, count, err := s.reviewRepo.AggregateByHairstyle(hairstyleID)
	if err != nil {
		return err
	}
	avg = math.Round(avg*100) / 100

	if err := s.hairstyleRepo.UpdateAggregates(hairstyleID, avg, count); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 发型已被删除，忽略迟到的事件
			return nil
		}
		return err
	}

	s.hairstyleService.InvalidateCache(ctx, hairstyleID)

	if elasticsearch.Get() != nil {
		if hairstyle, err := s.hairstyleRepo.GetByID(hairstyleID); err == nil {
			if err := elasticsearch.SyncHairstyle(ctx, hairstyle); err != nil {
				logger.Warn("Failed to sync hairstyle aggregates to ES",
					zap.Int64("hairstyle_id", hairstyleID),
					zap.Error(err),
				)
			}
		}
	}

	logger.Info("Hairstyle aggregates recomputed",
		zap.Int64("hairstyle_id", hairstyleID),
		zap.Float64("average_rating", avg),
		zap.Int64("num_reviews", count),
	)
	return nil
}

// publishOrRecompute 发事件到 Kafka，由 worker 异步重算；
// 生产者不可用或发送失败时直接同步重算，保证聚合最终一致
func (s *ReviewService) publishOrRecompute(ctx context.Context, event *kafka.ReviewEvent) {
	if kafka.ProducerReady() {
		topic := config.GetKafka().Topics["review_events"]
		if err := kafka.SendReviewEvent(ctx, topic, event); err == nil {
			return
		}
		logger.Warn("Failed to publish review event, recomputing synchronously",
			zap.Int64("hairstyle_id", event.HairstyleID),
		)
	}

	if err := s.RecomputeAggregates(ctx, event.HairstyleID); err != nil {
		logger.Error("Failed to recompute hairstyle aggregates",
			zap.Int64("hairstyle_id", event.HairstyleID),
			zap.Error(err),
		)
	}
}

func (s *ReviewService) loadReviewInfo(reviewID int64) (*dto.ReviewInfo, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	return toReviewInfo(review), nil
}

func toReviewInfo(r *model.Review) *dto.ReviewInfo {
	info := &dto.ReviewInfo{
		ID:          r.ID,
		HairstyleID: r.HairstyleID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.User.ID != 0 {
		info.User = toAuthorBrief(&r.User)
	}
	return info
}
