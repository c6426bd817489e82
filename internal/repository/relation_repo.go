package repository

import (
	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) Create(relation *model.Relation) error {
	return r.db.Create(relation).Error
}

// Delete 删除关注关系，不存在时返回 gorm.ErrRecordNotFound
func (r *RelationRepository) Delete(followID, followerID int64) error {
	result := r.db.Where("follow_id = ? AND follower_id = ?", followID, followerID).
		Delete(&model.Relation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists 检查关注关系是否存在
func (r *RelationRepository) Exists(followID, followerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Relation{}).
		Where("follow_id = ? AND follower_id = ?", followID, followerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowingIDs 获取某用户关注的全部用户 ID（动态流筛选用）
func (r *RelationRepository) GetFollowingIDs(followerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Relation{}).
		Where("follower_id = ?", followerID).
		Pluck("follow_id", &ids).Error
	return ids, err
}

// GetFollowingList 关注列表（分页）
func (r *RelationRepository) GetFollowingList(followerID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Relation{}).Where("follower_id = ?", followerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").
		Offset(skip).Limit(limit).
		Pluck("follow_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// GetFollowerList 粉丝列表（分页）
func (r *RelationRepository) GetFollowerList(followID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Relation{}).Where("follow_id = ?", followID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").
		Offset(skip).Limit(limit).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
