package model

import "time"

// PostLike 帖子点赞记录模型
type PostLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_post_like;index:idx_post_likes_user_id;comment:点赞用户ID" json:"user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uq_user_post_like;index:idx_post_likes_post_id;comment:被点赞帖子ID" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
