package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CommentUpdateRequest 更新评论请求；空内容表示保持原文
type CommentUpdateRequest struct {
	Text string `json:"text" binding:"omitempty,max=1000"`
}

// CommentInfo 评论信息；顶层评论携带按时间正序排列的回复
type CommentInfo struct {
	ID        int64         `json:"id"`
	PostID    int64         `json:"post_id"`
	Text      string        `json:"text"`
	ParentID  *int64        `json:"parent_id"`
	Author    AuthorBrief   `json:"author"`
	Replies   []CommentInfo `json:"replies,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments []CommentInfo `json:"comments"`
	Total    int64         `json:"total"`
}
