package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/config"
	"cutmatch-go/internal/infra/minio"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrPostNoPermission  = errors.New("没有权限操作该帖子")
	ErrPostImageRequired = errors.New("帖子必须携带一张配图")
	ErrHairstyleNotFound = errors.New("发型不存在")
)

type PostService struct {
	postRepo      *repository.PostRepository
	userRepo      *repository.UserRepository
	hairstyleRepo *repository.HairstyleRepository
	relationRepo  *repository.RelationRepository
}

func NewPostService(
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	hairstyleRepo *repository.HairstyleRepository,
	relationRepo *repository.RelationRepository,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		userRepo:      userRepo,
		hairstyleRepo: hairstyleRepo,
		relationRepo:  relationRepo,
	}
}

// Create 发帖；配图必传，上传到对象存储后存公开 URL
func (s *PostService) Create(ctx context.Context, userID int64, req *dto.PostCreateRequest, image *multipart.FileHeader) (*dto.PostInfo, error) {
	if image == nil {
		return nil, ErrPostImageRequired
	}

	if req.LinkedHairstyleID != nil {
		exists, err := s.hairstyleRepo.Exists(*req.LinkedHairstyleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrHairstyleNotFound
		}
	}

	imageURL, err := s.uploadPostImage(ctx, userID, image)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID:          userID,
		Text:              req.Text,
		ImageURL:          imageURL,
		LinkedHairstyleID: req.LinkedHairstyleID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	logger.Info("Post created", zap.Int64("post_id", post.ID), zap.Int64("author_id", userID))
	return s.loadPostInfo(post.ID, userID)
}

// GetByID 获取帖子详情；callerID 为 0 表示未登录，is_liked 恒为 false
func (s *PostService) GetByID(postID, callerID int64) (*dto.PostInfo, error) {
	return s.loadPostInfo(postID, callerID)
}

// Feed 帖子流；onlyFollowing 为 true 时只看关注的人
func (s *PostService) Feed(callerID int64, page, pageSize int, onlyFollowing bool) (*dto.PostListData, error) {
	var authorIDs []int64
	if onlyFollowing {
		ids, err := s.relationRepo.GetFollowingIDs(callerID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &dto.PostListData{
				Posts:    []dto.PostInfo{},
				Page:     page,
				PageSize: pageSize,
			}, nil
		}
		authorIDs = ids
	}

	skip := (page - 1) * pageSize
	posts, total, err := s.postRepo.ListFeed(skip, pageSize, authorIDs)
	if err != nil {
		return nil, err
	}

	return s.buildPostList(posts, total, page, pageSize, callerID)
}

// ListByUser 某用户发布的帖子
func (s *PostService) ListByUser(userID, callerID int64, page, pageSize int) (*dto.PostListData, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	posts, total, err := s.postRepo.ListByAuthor(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildPostList(posts, total, page, pageSize, callerID)
}

// Update 更新帖子文字或关联发型；仅作者或管理员
func (s *PostService) Update(postID, callerID int64, callerRole string, req *dto.PostUpdateRequest) (*dto.PostInfo, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != callerID && callerRole != "admin" {
		return nil, ErrPostNoPermission
	}

	updates := make(map[string]interface{})
	if req.Text != nil && *req.Text != "" {
		updates["text"] = *req.Text
	}
	if req.LinkedHairstyleID != nil {
		exists, err := s.hairstyleRepo.Exists(*req.LinkedHairstyleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrHairstyleNotFound
		}
		updates["linked_hairstyle_id"] = *req.LinkedHairstyleID
	}

	if len(updates) > 0 {
		if err := s.postRepo.Update(postID, updates); err != nil {
			return nil, err
		}
	}

	return s.loadPostInfo(postID, callerID)
}

// Delete 删除帖子及其点赞和评论；仅作者或管理员
// 配图对象尽力删除，失败只记日志
func (s *PostService) Delete(ctx context.Context, postID, callerID int64, callerRole string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.AuthorID != callerID && callerRole != "admin" {
		return ErrPostNoPermission
	}

	if err := s.postRepo.DeleteCascade(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if minio.Ready() && post.ImageURL != "" {
		objectName := post.ImageURL[strings.LastIndex(post.ImageURL, "/")+1:]
		if err := minio.RemoveFile(ctx, minio.BucketPostImages, objectName); err != nil {
			logger.Warn("Failed to remove post image from storage",
				zap.Int64("post_id", postID),
				zap.Error(err),
			)
		}
	}

	logger.Info("Post deleted", zap.Int64("post_id", postID), zap.Int64("caller_id", callerID))
	return nil
}

// ToggleLike 点赞/取消点赞切换
func (s *PostService) ToggleLike(postID, userID int64) (*dto.LikeToggleData, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	liked, err := s.postRepo.HasLiked(userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if _, err := s.postRepo.RemoveLike(userID, postID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.postRepo.AddLike(userID, postID); err != nil {
			return nil, err
		}
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleData{
		PostID:    postID,
		Liked:     !liked,
		LikeCount: post.LikeCount,
	}, nil
}

func (s *PostService) uploadPostImage(ctx context.Context, userID int64, image *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(image.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidImageType
	}

	objectName := fmt.Sprintf("post_%d_%d%s", userID, time.Now().UnixNano(), ext)
	src, err := image.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := image.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := minio.UploadFile(ctx, minio.BucketPostImages, objectName, src, image.Size, contentType); err != nil {
		return "", err
	}

	cfg := config.GetMinIO()
	return minio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, minio.BucketPostImages, objectName), nil
}

func (s *PostService) loadPostInfo(postID, callerID int64) (*dto.PostInfo, error) {
	post, err := s.postRepo.GetByIDWithRelations(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	isLiked := false
	if callerID > 0 {
		isLiked, err = s.postRepo.HasLiked(callerID, postID)
		if err != nil {
			return nil, err
		}
	}

	return toPostInfo(post, isLiked), nil
}

func (s *PostService) buildPostList(posts []model.Post, total int64, page, pageSize int, callerID int64) (*dto.PostListData, error) {
	infos := make([]dto.PostInfo, 0, len(posts))
	for i := range posts {
		isLiked := false
		if callerID > 0 {
			liked, err := s.postRepo.HasLiked(callerID, posts[i].ID)
			if err != nil {
				return nil, err
			}
			isLiked = liked
		}
		infos = append(infos, *toPostInfo(&posts[i], isLiked))
	}

	return &dto.PostListData{
		Posts:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func toPostInfo(p *model.Post, isLiked bool) *dto.PostInfo {
	info := &dto.PostInfo{
		ID:                p.ID,
		Text:              p.Text,
		ImageURL:          p.ImageURL,
		LinkedHairstyleID: p.LinkedHairstyleID,
		LikeCount:         p.LikeCount,
		CommentCount:      p.CommentCount,
		IsLiked:           isLiked,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Author.ID != 0 {
		info.Author = toAuthorBrief(&p.Author)
	}
	if p.LinkedHairstyle != nil {
		info.LinkedHairstyle = toHairstyleInfo(p.LinkedHairstyle, false)
	}
	return info
}
