package repository

import (
	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete 删除收藏记录，不存在时返回 gorm.ErrRecordNotFound
func (r *FavoriteRepository) Delete(userID, hairstyleID int64) error {
	result := r.db.Where("user_id = ? AND hairstyle_id = ?", userID, hairstyleID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists 检查是否已收藏
func (r *FavoriteRepository) Exists(userID, hairstyleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND hairstyle_id = ?", userID, hairstyleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser 用户的收藏列表，最新在前，预加载发型
func (r *FavoriteRepository) ListByUser(userID int64, skip, limit int) ([]model.Favorite, int64, error) {
	query := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []model.Favorite
	err := query.Preload("Hairstyle").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

// BatchCheckFavorited 批量检查用户对一组发型的收藏状态
func (r *FavoriteRepository) BatchCheckFavorited(userID int64, hairstyleIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(hairstyleIDs))
	if len(hairstyleIDs) == 0 {
		return result, nil
	}

	var favorites []model.Favorite
	err := r.db.Where("user_id = ? AND hairstyle_id IN ?", userID, hairstyleIDs).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	for _, id := range hairstyleIDs {
		result[id] = false
	}
	for _, f := range favorites {
		result[f.HairstyleID] = true
	}
	return result, nil
}
