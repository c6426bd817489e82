package model

import "time"

// Review 发型评价模型（1-5 星，每个用户对同一发型只能评价一次）
type Review struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:评价ID" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:uq_user_hairstyle_review;index:idx_reviews_user_id;comment:评价用户ID" json:"user_id"`
	HairstyleID int64     `gorm:"not null;uniqueIndex:uq_user_hairstyle_review;index:idx_reviews_hairstyle_id;comment:被评价发型ID" json:"hairstyle_id"`
	Rating      int       `gorm:"not null;comment:评分(1-5)" json:"rating"`
	Comment     string    `gorm:"type:text;comment:评价内容" json:"comment"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_reviews_created_at;comment:评价时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hairstyle Hairstyle `gorm:"foreignKey:HairstyleID" json:"hairstyle,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
