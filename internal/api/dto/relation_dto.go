package dto

// RelationActionRequest 关注/取关请求
type RelationActionRequest struct {
	UserID int64 `json:"user_id" binding:"required,min=1"`
}

// RelationUserListData 关注/粉丝列表数据
type RelationUserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
