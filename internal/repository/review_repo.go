package repository

import (
	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByUserAndHairstyle 查询某用户对某发型的评价
func (r *ReviewRepository) GetByUserAndHairstyle(userID, hairstyleID int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND hairstyle_id = ?", userID, hairstyleID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByHairstyle 某发型的评价列表，最新在前
func (r *ReviewRepository) ListByHairstyle(hairstyleID int64, skip, limit int) ([]model.Review, int64, error) {
	query := r.db.Model(&model.Review{}).Where("hairstyle_id = ?", hairstyleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Update 更新评价字段
func (r *ReviewRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&model.Review{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除评价
func (r *ReviewRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AggregateByHairstyle 从评价表重算某发型的平均分和评价数
// 无评价时返回 (0, 0, nil)
func (r *ReviewRepository) AggregateByHairstyle(hairstyleID int64) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("hairstyle_id = ?", hairstyleID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
