package service

import (
	"errors"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("已收藏该发型")
	ErrNotFavorited     = errors.New("未收藏该发型")
)

type FavoriteService struct {
	favoriteRepo  *repository.FavoriteRepository
	hairstyleRepo *repository.HairstyleRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, hairstyleRepo *repository.HairstyleRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, hairstyleRepo: hairstyleRepo}
}

// Add 收藏发型
func (s *FavoriteService) Add(userID, hairstyleID int64) error {
	exists, err := s.hairstyleRepo.Exists(hairstyleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrHairstyleNotFound
	}

	favorited, err := s.favoriteRepo.Exists(userID, hairstyleID)
	if err != nil {
		return err
	}
	if favorited {
		return ErrAlreadyFavorited
	}

	return s.favoriteRepo.Create(&model.Favorite{
		UserID:      userID,
		HairstyleID: hairstyleID,
	})
}

// Remove 取消收藏
func (s *FavoriteService) Remove(userID, hairstyleID int64) error {
	if err := s.favoriteRepo.Delete(userID, hairstyleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavorited
		}
		return err
	}
	return nil
}

// ListByUser 用户的收藏列表（最新在前）
func (s *FavoriteService) ListByUser(userID int64, page, pageSize int) (*dto.FavoriteListData, error) {
	skip := (page - 1) * pageSize
	favorites, total, err := s.favoriteRepo.ListByUser(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.FavoriteInfo, 0, len(favorites))
	for i := range favorites {
		infos = append(infos, dto.FavoriteInfo{
			ID:          favorites[i].ID,
			HairstyleID: favorites[i].HairstyleID,
			Hairstyle:   *toHairstyleInfo(&favorites[i].Hairstyle, true),
			CreatedAt:   favorites[i].CreatedAt,
		})
	}

	return &dto.FavoriteListData{
		Favorites:  infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
