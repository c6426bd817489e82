package model

import "time"

// 发型适用性别
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"
)

// Hairstyle 发型目录条目模型
type Hairstyle struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement;comment:发型标识" json:"id"`
	Name               string    `gorm:"size:200;not null;index:idx_hairstyles_name;comment:发型名称" json:"name"`
	Description        string    `gorm:"type:text;not null;comment:发型描述" json:"description"`
	ImageURLs          []string  `gorm:"serializer:json;type:text;comment:图片地址列表" json:"image_urls"`
	Tags               []string  `gorm:"serializer:json;type:text;comment:标签列表" json:"tags"`
	SuitableFaceShapes []string  `gorm:"serializer:json;type:text;comment:适合脸型列表" json:"suitable_face_shapes"`
	Gender             string    `gorm:"size:20;not null;index:idx_hairstyles_gender;comment:适用性别" json:"gender"`
	AverageRating      float64   `gorm:"not null;default:0;comment:平均评分" json:"average_rating"`
	NumReviews         int64     `gorm:"not null;default:0;comment:评价总数" json:"num_reviews"`
	CreatedAt          time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Reviews []Review `gorm:"foreignKey:HairstyleID" json:"reviews,omitempty"`
}

func (Hairstyle) TableName() string {
	return "hairstyles"
}
