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
	"cutmatch-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUserNoPermission = errors.New("没有权限操作该用户")
	ErrInvalidImageType = errors.New("仅支持 jpg/jpeg/png 格式的图片")
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID 获取用户公开信息
func (s *UserService) GetByID(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// Update 更新用户资料；仅本人或管理员可操作，空字段保持原值
func (s *UserService) Update(userID, callerID int64, callerRole string, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	if userID != callerID && callerRole != "admin" {
		return nil, ErrUserNoPermission
	}

	updates := make(map[string]interface{})
	if req.Username != nil && *req.Username != "" {
		updates["user_name"] = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}
	if req.ProfileImageURL != nil {
		updates["profile_image_url"] = *req.ProfileImageURL
	}

	if len(updates) == 0 {
		return s.GetByID(userID)
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UploadAvatar 上传头像到对象存储并更新资料
func (s *UserService) UploadAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserInfo, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, ErrInvalidImageType
	}

	objectName := fmt.Sprintf("avatar_%d_%d%s", userID, time.Now().UnixNano(), ext)
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := minio.UploadFile(ctx, minio.BucketAvatars, objectName, src, file.Size, contentType); err != nil {
		return nil, err
	}

	cfg := config.GetMinIO()
	url := minio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, minio.BucketAvatars, objectName)

	user, err := s.userRepo.Update(userID, map[string]interface{}{"profile_image_url": url})
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// Delete 软删除用户；仅本人或管理员可操作
func (s *UserService) Delete(userID, callerID int64, callerRole string) error {
	if userID != callerID && callerRole != "admin" {
		return ErrUserNoPermission
	}

	_, err := s.userRepo.Update(userID, map[string]interface{}{"is_delete": 1})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Restore 恢复被软删除的用户（管理员）
func (s *UserService) Restore(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByIDIncludeDeleted(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsDelete == 0 {
		return toUserInfo(user), nil
	}

	user, err = s.userRepo.Update(userID, map[string]interface{}{"is_delete": 0})
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// Promote 将用户提升为管理员（管理员）
func (s *UserService) Promote(userID int64) (*dto.UserInfo, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.Update(userID, map[string]interface{}{"user_role": "admin"})
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// List 用户列表（管理员）
func (s *UserService) List(page, pageSize int, username, userRole *string) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.ListWithFilters(skip, pageSize, username, userRole)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, *toUserInfo(&users[i]))
	}

	return &dto.UserListData{
		Users:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetRole 查询用户当前角色（鉴权中间件用）
func (s *UserService) GetRole(userID int64) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.UserRole, nil
}

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:              u.ID,
		Username:        u.UserName,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		UserRole:        u.UserRole,
		FollowCount:     u.FollowCount,
		FollowerCount:   u.FollowerCount,
	}
}

func toAuthorBrief(u *model.User) dto.AuthorBrief {
	return dto.AuthorBrief{
		ID:              u.ID,
		Username:        u.UserName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
