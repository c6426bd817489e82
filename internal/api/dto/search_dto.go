package dto

// SearchRequest 发型搜索请求
type SearchRequest struct {
	Keyword   string  `form:"keyword" binding:"required,min=1,max=200"`
	Gender    string  `form:"gender" binding:"omitempty,oneof=male female unisex"`
	FaceShape string  `form:"face_shape" binding:"omitempty,max=100"`
	MinRating float64 `form:"min_rating" binding:"omitempty,min=0,max=5"`
	Page      int     `form:"page" binding:"omitempty,min=1"`
	PageSize  int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SearchData 搜索结果
type SearchData struct {
	Hairstyles []HairstyleInfo `json:"hairstyles"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Source     string          `json:"source"`
}
