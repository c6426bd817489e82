package dto

import "time"

// FavoriteInfo 收藏记录
type FavoriteInfo struct {
	ID          int64         `json:"id"`
	HairstyleID int64         `json:"hairstyle_id"`
	Hairstyle   HairstyleInfo `json:"hairstyle"`
	CreatedAt   time.Time     `json:"created_at"`
}

// FavoriteListData 收藏列表数据
type FavoriteListData struct {
	Favorites  []FavoriteInfo `json:"favorites"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int64          `json:"total_pages"`
}
