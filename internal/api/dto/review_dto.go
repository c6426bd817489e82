package dto

import "time"

// ReviewCreateRequest 发表评价请求
type ReviewCreateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

// ReviewUpdateRequest 更新评价请求
type ReviewUpdateRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// ReviewInfo 评价信息
type ReviewInfo struct {
	ID          int64       `json:"id"`
	HairstyleID int64       `json:"hairstyle_id"`
	User        AuthorBrief `json:"user"`
	Rating      int         `json:"rating"`
	Comment     string      `json:"comment"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ReviewListData 评价列表数据
type ReviewListData struct {
	Reviews    []ReviewInfo `json:"reviews"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
