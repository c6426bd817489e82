package repository

import (
	"errors"

	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDWithRelations 查询帖子并预加载作者与关联发型
func (r *PostRepository) GetByIDWithRelations(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("LinkedHairstyle").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists 检查帖子是否存在
func (r *PostRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFeed 时间倒序的帖子流；authorIDs 非空时仅取这些作者的帖子
func (r *PostRepository) ListFeed(skip, limit int, authorIDs []int64) ([]model.Post, int64, error) {
	query := r.db.Model(&model.Post{})
	if len(authorIDs) > 0 {
		query = query.Where("author_id IN ?", authorIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.Preload("Author").Preload("LinkedHairstyle").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor 某用户的帖子，时间倒序
func (r *PostRepository) ListByAuthor(authorID int64, skip, limit int) ([]model.Post, int64, error) {
	query := r.db.Model(&model.Post{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.Preload("Author").Preload("LinkedHairstyle").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update 更新帖子字段
func (r *PostRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 删除帖子及其点赞和全部评论（单事务）
func (r *PostRepository) DeleteCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddLike 点赞：插入点赞记录并自增计数（单事务）
// 已点赞时返回 (false, nil)，不重复计数
func (r *PostRepository) AddLike(userID, postID int64) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PostLike{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return liked, err
}

// RemoveLike 取消点赞：删除点赞记录并自减计数（单事务）
// 未点赞时返回 (false, nil)
func (r *PostRepository) RemoveLike(userID, postID int64) (bool, error) {
	removed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Post{}).Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	return removed, err
}

// HasLiked 用户是否已点赞
func (r *PostRepository) HasLiked(userID, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementCommentCount 评论数 +1
func (r *PostRepository) IncrementCommentCount(id int64) error {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementCommentCount 评论数 -n（不低于 0）
func (r *PostRepository) DecrementCommentCount(id int64, n int64) error {
	if n <= 0 {
		return errors.New("decrement must be positive")
	}
	return r.db.Model(&model.Post{}).Where("id = ? AND comment_count >= ?", id, n).
		UpdateColumn("comment_count", gorm.Expr("comment_count - ?", n)).Error
}
