package dto

import "time"

// HairstyleCreateRequest 新增发型请求（管理员）
type HairstyleCreateRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=200"`
	Description        string   `json:"description" binding:"omitempty,max=2000"`
	ImageURLs          []string `json:"image_urls" binding:"omitempty,dive,max=500"`
	Tags               []string `json:"tags" binding:"omitempty,dive,max=100"`
	SuitableFaceShapes []string `json:"suitable_face_shapes" binding:"omitempty,dive,max=100"`
	Gender             string   `json:"gender" binding:"required,oneof=male female unisex"`
}

// HairstyleUpdateRequest 更新发型请求（管理员），空字段不修改
type HairstyleUpdateRequest struct {
	Name               *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description        *string  `json:"description" binding:"omitempty,max=2000"`
	ImageURLs          []string `json:"image_urls" binding:"omitempty,dive,max=500"`
	Tags               []string `json:"tags" binding:"omitempty,dive,max=100"`
	SuitableFaceShapes []string `json:"suitable_face_shapes" binding:"omitempty,dive,max=100"`
	Gender             *string  `json:"gender" binding:"omitempty,oneof=male female unisex"`
}

// HairstyleInfo 发型信息
type HairstyleInfo struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	ImageURLs          []string  `json:"image_urls"`
	Tags               []string  `json:"tags"`
	SuitableFaceShapes []string  `json:"suitable_face_shapes"`
	Gender             string    `json:"gender"`
	AverageRating      float64   `json:"average_rating"`
	NumReviews         int64     `json:"num_reviews"`
	IsFavorited        bool      `json:"is_favorited"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HairstyleListData 发型列表数据
type HairstyleListData struct {
	Hairstyles []HairstyleInfo `json:"hairstyles"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int64           `json:"total_pages"`
}
