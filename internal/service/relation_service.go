package service

import (
	"errors"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCannotFollowSelf = errors.New("不能关注自己")
	ErrAlreadyFollowed  = errors.New("已关注该用户")
	ErrNotFollowed      = errors.New("未关注该用户")
)

type RelationService struct {
	relationRepo *repository.RelationRepository
	userRepo     *repository.UserRepository
}

func NewRelationService(relationRepo *repository.RelationRepository, userRepo *repository.UserRepository) *RelationService {
	return &RelationService{relationRepo: relationRepo, userRepo: userRepo}
}

// Follow 关注用户，同步维护双方计数
func (s *RelationService) Follow(followerID, followID int64) error {
	if followerID == followID {
		return ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(followID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	exists, err := s.relationRepo.Exists(followID, followerID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowed
	}

	if err := s.relationRepo.Create(&model.Relation{
		FollowID:   followID,
		FollowerID: followerID,
	}); err != nil {
		return err
	}

	_ = s.userRepo.IncrementFollowCount(followerID)
	_ = s.userRepo.IncrementFollowerCount(followID)
	return nil
}

// Unfollow 取消关注
func (s *RelationService) Unfollow(followerID, followID int64) error {
	if err := s.relationRepo.Delete(followID, followerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFollowed
		}
		return err
	}

	_ = s.userRepo.DecrementFollowCount(followerID)
	_ = s.userRepo.DecrementFollowerCount(followID)
	return nil
}

// GetFollowingList 关注列表
func (s *RelationService) GetFollowingList(userID int64, page, pageSize int) (*dto.RelationUserListData, error) {
	skip := (page - 1) * pageSize
	ids, total, err := s.relationRepo.GetFollowingList(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildUserList(ids, total, page, pageSize)
}

// GetFollowerList 粉丝列表
func (s *RelationService) GetFollowerList(userID int64, page, pageSize int) (*dto.RelationUserListData, error) {
	skip := (page - 1) * pageSize
	ids, total, err := s.relationRepo.GetFollowerList(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildUserList(ids, total, page, pageSize)
}

func (s *RelationService) buildUserList(ids []int64, total int64, page, pageSize int) (*dto.RelationUserListData, error) {
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	// 保持关系表返回的顺序
	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	infos := make([]dto.UserInfo, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			infos = append(infos, *toUserInfo(u))
		}
	}

	return &dto.RelationUserListData{
		Users:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
