package repository

import (
	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type HairstyleRepository struct {
	db *gorm.DB
}

func NewHairstyleRepository(db *gorm.DB) *HairstyleRepository {
	return &HairstyleRepository{db: db}
}

func (r *HairstyleRepository) Create(hairstyle *model.Hairstyle) error {
	return r.db.Create(hairstyle).Error
}

func (r *HairstyleRepository) GetByID(id int64) (*model.Hairstyle, error) {
	var hairstyle model.Hairstyle
	err := r.db.First(&hairstyle, id).Error
	if err != nil {
		return nil, err
	}
	return &hairstyle, nil
}

// HairstyleFilters 目录筛选条件，零值字段不参与过滤
type HairstyleFilters struct {
	Gender    string
	Tag       string
	FaceShape string
	MinRating float64
	Keyword   string
}

// ListWithFilters 带筛选条件的分页查询
// tags/suitable_face_shapes 以 JSON 文本存储，用带引号的 LIKE 做整词匹配
func (r *HairstyleRepository) ListWithFilters(skip, limit int, f HairstyleFilters) ([]model.Hairstyle, int64, error) {
	query := r.db.Model(&model.Hairstyle{})

	if f.Gender != "" {
		query = query.Where("gender = ?", f.Gender)
	}
	if f.Tag != "" {
		query = query.Where("lower(tags) LIKE lower(?)", `%"`+f.Tag+`"%`)
	}
	if f.FaceShape != "" {
		query = query.Where("lower(suitable_face_shapes) LIKE lower(?)", `%"`+f.FaceShape+`"%`)
	}
	if f.MinRating > 0 {
		query = query.Where("average_rating >= ?", f.MinRating)
	}
	if f.Keyword != "" {
		pattern := "%" + f.Keyword + "%"
		query = query.Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hairstyles []model.Hairstyle
	err := query.Order("average_rating DESC, id ASC").
		Offset(skip).Limit(limit).
		Find(&hairstyles).Error
	if err != nil {
		return nil, 0, err
	}
	return hairstyles, total, nil
}

// ListAll 获取全部发型（ES 批量重建索引用）
func (r *HairstyleRepository) ListAll() ([]model.Hairstyle, error) {
	var hairstyles []model.Hairstyle
	err := r.db.Find(&hairstyles).Error
	return hairstyles, err
}

// Update 更新发型字段
func (r *HairstyleRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&model.Hairstyle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateAggregates 写回评分聚合结果
func (r *HairstyleRepository) UpdateAggregates(id int64, averageRating float64, numReviews int64) error {
	result := r.db.Model(&model.Hairstyle{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"average_rating": averageRating,
			"num_reviews":    numReviews,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除发型
func (r *HairstyleRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Hairstyle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists 检查发型是否存在
func (r *HairstyleRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Hairstyle{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByIDs 批量查询发型
func (r *HairstyleRepository) GetByIDs(ids []int64) ([]model.Hairstyle, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var hairstyles []model.Hairstyle
	err := r.db.Where("id IN ?", ids).Find(&hairstyles).Error
	return hairstyles, err
}
