package service

import (
	"errors"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/config"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/logger"
	"cutmatch-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新用户；邮箱唯一，用户名允许重复
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.TokenData, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName: req.Username,
		Email:    req.Email,
		Password: hashed,
		UserRole: "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return s.issueToken(user)
}

// Login 邮箱密码登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*dto.TokenData, error) {
	token, err := utils.GenerateToken(user.ID, user.UserRole)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: config.GetJWT().ExpireHours * 3600,
		User:      *toUserInfo(user),
	}, nil
}
