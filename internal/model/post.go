package model

import "time"

// Post 穿搭/发型分享帖子模型
type Post struct {
	ID                int64     `gorm:"primaryKey;autoIncrement;comment:帖子标识" json:"id"`
	AuthorID          int64     `gorm:"not null;index:idx_posts_author_id;comment:帖子作者ID" json:"author_id"`
	Text              string    `gorm:"type:text;comment:帖子文字内容" json:"text"`
	ImageURL          string    `gorm:"size:500;comment:配图地址" json:"image_url"`
	LinkedHairstyleID *int64    `gorm:"index:idx_posts_linked_hairstyle_id;comment:关联发型ID" json:"linked_hairstyle_id"`
	LikeCount         int64     `gorm:"not null;default:0;comment:点赞数" json:"like_count"`
	CommentCount      int64     `gorm:"not null;default:0;comment:评论数" json:"comment_count"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index:idx_posts_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Author          User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	LinkedHairstyle *Hairstyle `gorm:"foreignKey:LinkedHairstyleID" json:"linked_hairstyle,omitempty"`
	Comments        []Comment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes           []PostLike `gorm:"foreignKey:PostID" json:"likes,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
