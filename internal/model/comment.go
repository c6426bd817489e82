package model

import "time"

// Comment 评论模型
//
// 回复通过 ParentID 反向指针建模，回复列表由 parent_id 查询推导，
// 不维护冗余的回复 ID 数组。只支持一层嵌套：回复的 ParentID 一定
// 指向顶层评论。
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	PostID    int64     `gorm:"not null;index:idx_comments_post_id;index:idx_composite_post_created,priority:1;comment:所属帖子ID" json:"post_id"`
	AuthorID  int64     `gorm:"not null;index:idx_comments_author_id;comment:评论作者ID" json:"author_id"`
	Text      string    `gorm:"type:text;not null;comment:评论内容" json:"text"`
	ParentID  *int64    `gorm:"index:idx_comments_parent_id;comment:父评论ID" json:"parent_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_composite_post_created,priority:2;comment:评论时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Author  User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Post    Post      `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
