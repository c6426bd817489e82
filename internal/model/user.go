package model

// User 用户模型
type User struct {
	ID              int64   `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName        string  `gorm:"size:255;not null;index:idx_users_user_name;comment:用户名" json:"user_name"`
	Email           string  `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password        string  `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	ProfileImageURL *string `gorm:"size:500;comment:头像地址" json:"profile_image_url"`
	UserRole        string  `gorm:"size:256;not null;default:'user';comment:用户角色" json:"user_role"`
	FollowCount     int64   `gorm:"not null;default:0;comment:关注其他用户个数" json:"follow_count"`
	FollowerCount   int64   `gorm:"not null;default:0;comment:粉丝个数" json:"follower_count"`
	IsDelete        int64   `gorm:"not null;default:0;comment:删除标识" json:"-"`

	// 关联关系
	Posts     []Post     `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
}

func (User) TableName() string {
	return "users"
}
