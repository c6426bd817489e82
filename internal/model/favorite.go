package model

import "time"

// Favorite 收藏发型记录模型
type Favorite struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:收藏记录ID" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:uq_user_hairstyle_favorite;index:idx_favorites_user_id;comment:收藏用户ID" json:"user_id"`
	HairstyleID int64     `gorm:"not null;uniqueIndex:uq_user_hairstyle_favorite;index:idx_favorites_hairstyle_id;comment:被收藏发型ID" json:"hairstyle_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_favorites_created_at;comment:收藏时间" json:"created_at"`

	// 关联关系
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hairstyle Hairstyle `gorm:"foreignKey:HairstyleID" json:"hairstyle,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
