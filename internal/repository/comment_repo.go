package repository

import (
	"cutmatch-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) GetByIDWithAuthor(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevelByPost 获取帖子的顶层评论列表，回复及各级作者一并预加载
// 按 created_at ASC, id ASC 排序（稳定的插入顺序），回复同序
func (r *CommentRepository) ListTopLevelByPost(postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Replies.Author").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateText 更新评论内容
func (r *CommentRepository) UpdateText(commentID int64, text string) error {
	result := r.db.Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithReplies 删除评论及其全部回复，并扣减帖子评论计数（单事务）
// 返回实际删除的评论条数
func (r *CommentRepository) DeleteWithReplies(commentID, postID int64) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("parent_id = ?", commentID).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		result = tx.Delete(&model.Comment{}, commentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		removed += result.RowsAffected

		return tx.Model(&model.Post{}).
			Where("id = ? AND comment_count >= ?", postID, removed).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", removed)).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// CountByPost 统计帖子的评论总数（含回复）
func (r *CommentRepository) CountByPost(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
