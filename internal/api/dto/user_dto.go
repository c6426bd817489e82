package dto

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID              int64   `json:"id"`
	Username        string  `json:"user_name"`
	Email           string  `json:"email"`
	ProfileImageURL *string `json:"profile_image_url"`
	UserRole        string  `json:"user_role"`
	FollowCount     int64   `json:"follow_count"`
	FollowerCount   int64   `json:"follower_count"`
}

// AuthorBrief 内嵌在帖子/评论中的作者摘要
type AuthorBrief struct {
	ID              int64   `json:"id"`
	Username        string  `json:"user_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UserUpdateRequest 更新用户资料请求，空字段不修改
type UserUpdateRequest struct {
	Username        *string `json:"username" binding:"omitempty,min=1,max=255"`
	Password        *string `json:"password" binding:"omitempty,min=6,max=255"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,max=500"`
}

// UserListData 用户列表数据（管理员用）
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
