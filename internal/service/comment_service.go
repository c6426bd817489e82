package service

import (
	"errors"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限操作该评论")
	ErrParentNotFound      = errors.New("父评论不存在")
	ErrParentPostMismatch  = errors.New("父评论不属于该帖子")
	ErrReplyToReply        = errors.New("不能回复一条回复，只支持一级嵌套")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create 发表顶层评论
func (s *CommentService) Create(userID, postID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementCommentCount(postID); err != nil {
		return nil, err
	}

	return s.loadCommentInfo(comment.ID)
}

// Reply 回复一条顶层评论；回复的回复直接拒绝
func (s *CommentService) Reply(userID, parentID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	parent, err := s.commentRepo.GetByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	if parent.ParentID != nil {
		return nil, ErrReplyToReply
	}

	if _, err := s.postRepo.GetByID(parent.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	reply := &model.Comment{
		PostID:   parent.PostID,
		AuthorID: userID,
		Text:     req.Text,
		ParentID: &parent.ID,
	}

	if err := s.commentRepo.Create(reply); err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementCommentCount(parent.PostID); err != nil {
		return nil, err
	}

	return s.loadCommentInfo(reply.ID)
}

// Update 更新评论内容；仅作者本人可操作，空内容保持原文不变
func (s *CommentService) Update(commentID, callerID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.AuthorID != callerID {
		return nil, ErrCommentNoPermission
	}

	if req.Text == "" {
		return s.loadCommentInfo(commentID)
	}

	if err := s.commentRepo.UpdateText(commentID, req.Text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return s.loadCommentInfo(commentID)
}

// Delete 删除评论；评论作者、帖子作者或管理员可操作
// 顶层评论连带其全部回复一并删除，计数同步扣减，返回实际删除的评论条数
func (s *CommentService) Delete(commentID, callerID int64, callerRole string) (int64, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}

	// 鉴权依赖帖子作者，帖子查不到时直接 404
	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}

	if comment.AuthorID != callerID && post.AuthorID != callerID && callerRole != "admin" {
		return 0, ErrCommentNoPermission
	}

	removed, err := s.commentRepo.DeleteWithReplies(commentID, comment.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}

	return removed, nil
}

// ListByPost 获取帖子的顶层评论列表，回复按时间正序嵌套其中
func (s *CommentService) ListByPost(postID int64) (*dto.CommentListData, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListTopLevelByPost(postID)
	if err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(postID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		info := toCommentInfo(&comments[i])
		if len(comments[i].Replies) > 0 {
			info.Replies = make([]dto.CommentInfo, 0, len(comments[i].Replies))
			for j := range comments[i].Replies {
				info.Replies = append(info.Replies, *toCommentInfo(&comments[i].Replies[j]))
			}
		}
		infos = append(infos, *info)
	}

	return &dto.CommentListData{
		Comments: infos,
		Total:    total,
	}, nil
}

func (s *CommentService) loadCommentInfo(commentID int64) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByIDWithAuthor(commentID)
	if err != nil {
		return nil, err
	}
	return toCommentInfo(comment), nil
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	info := &dto.CommentInfo{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author.ID != 0 {
		info.Author = toAuthorBrief(&c.Author)
	}
	return info
}
