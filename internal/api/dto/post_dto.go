package dto

import "time"

// PostCreateRequest 发帖请求（multipart 表单，图片另传 image 文件字段）
type PostCreateRequest struct {
	Text              string `form:"text" binding:"required,min=1,max=2000"`
	LinkedHairstyleID *int64 `form:"linked_hairstyle_id"`
}

// PostUpdateRequest 更新帖子请求，空字段不修改
type PostUpdateRequest struct {
	Text              *string `json:"text" binding:"omitempty,min=1,max=2000"`
	LinkedHairstyleID *int64  `json:"linked_hairstyle_id"`
}

// PostInfo 帖子信息
type PostInfo struct {
	ID                int64          `json:"id"`
	Author            AuthorBrief    `json:"author"`
	Text              string         `json:"text"`
	ImageURL          string         `json:"image_url"`
	LinkedHairstyleID *int64         `json:"linked_hairstyle_id"`
	LinkedHairstyle   *HairstyleInfo `json:"linked_hairstyle,omitempty"`
	LikeCount         int64          `json:"like_count"`
	CommentCount      int64          `json:"comment_count"`
	IsLiked           bool           `json:"is_liked"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// PostListData 帖子列表数据
type PostListData struct {
	Posts      []PostInfo `json:"posts"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}

// LikeToggleData 点赞切换结果
type LikeToggleData struct {
	PostID    int64 `json:"post_id"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
