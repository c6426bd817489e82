package service

import (
	"context"
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHairstyleCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	info, err := svc.Create(context.Background(), &dto.HairstyleCreateRequest{
		Name:               "textured crop",
		Description:        "short textured crop with fringe",
		Gender:             model.GenderMale,
		Tags:               []string{"short", "textured"},
		SuitableFaceShapes: []string{"oval", "square"},
	})
	require.NoError(t, err)
	assert.Equal(t, "textured crop", info.Name)
	assert.Zero(t, info.NumReviews)

	got, err := svc.GetByID(context.Background(), info.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)
	assert.Equal(t, []string{"short", "textured"}, got.Tags)
}

func TestHairstyleGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	_, err := svc.GetByID(context.Background(), 404, 0)
	assert.ErrorIs(t, err, ErrHairstyleNotFound)
}

func TestHairstyleListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	male := seedHairstyle(t, db, "undercut", model.GenderMale)
	seedHairstyle(t, db, "bob-cut", model.GenderFemale)
	seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)

	data, err := svc.List(0, 1, 20, repository.HairstyleFilters{Gender: model.GenderMale})
	require.NoError(t, err)
	require.Len(t, data.Hairstyles, 1)
	assert.Equal(t, male.ID, data.Hairstyles[0].ID)

	// 标签过滤（JSON 文本整词匹配）
	data, err = svc.List(0, 1, 20, repository.HairstyleFilters{Tag: "short"})
	require.NoError(t, err)
	assert.Len(t, data.Hairstyles, 3)

	data, err = svc.List(0, 1, 20, repository.HairstyleFilters{FaceShape: "oval"})
	require.NoError(t, err)
	assert.Len(t, data.Hairstyles, 3)

	// 关键词匹配名称
	data, err = svc.List(0, 1, 20, repository.HairstyleFilters{Keyword: "buzz"})
	require.NoError(t, err)
	require.Len(t, data.Hairstyles, 1)
	assert.Equal(t, "buzz-cut", data.Hairstyles[0].Name)
}

func TestHairstyleListFavoritedFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	liked := seedHairstyle(t, db, "undercut", model.GenderMale)
	seedHairstyle(t, db, "bob-cut", model.GenderFemale)

	require.NoError(t, db.Create(&model.Favorite{UserID: alice.ID, HairstyleID: liked.ID}).Error)

	data, err := svc.List(alice.ID, 1, 20, repository.HairstyleFilters{})
	require.NoError(t, err)
	require.Len(t, data.Hairstyles, 2)

	for _, h := range data.Hairstyles {
		if h.ID == liked.ID {
			assert.True(t, h.IsFavorited)
		} else {
			assert.False(t, h.IsFavorited)
		}
	}
}

func TestHairstyleUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	hairstyle := seedHairstyle(t, db, "undercut", model.GenderMale)

	newName := "modern undercut"
	info, err := svc.Update(context.Background(), hairstyle.ID, &dto.HairstyleUpdateRequest{
		Name: &newName,
		Tags: []string{"fade", "undercut"},
	})
	require.NoError(t, err)

	// 未提交的字段保持原值
	assert.Equal(t, "modern undercut", info.Name)
	assert.Equal(t, []string{"fade", "undercut"}, info.Tags)
	assert.Equal(t, hairstyle.Description, info.Description)
	assert.Equal(t, model.GenderMale, info.Gender)
}

func TestHairstyleDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newHairstyleService(db)

	hairstyle := seedHairstyle(t, db, "undercut", model.GenderMale)

	require.NoError(t, svc.Delete(context.Background(), hairstyle.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), hairstyle.ID), ErrHairstyleNotFound)
}

func TestSearchFallsBackToDB(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(
		repository.NewHairstyleRepository(db),
		repository.NewFavoriteRepository(db),
	)

	seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)
	seedHairstyle(t, db, "bob-cut", model.GenderFemale)

	// ES 客户端未初始化，直接走 DB
	data, err := svc.SearchHairstyles(0, &dto.SearchRequest{Keyword: "buzz"})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	require.Len(t, data.Hairstyles, 1)
	assert.Equal(t, "buzz-cut", data.Hairstyles[0].Name)

	// 性别过滤叠加关键词
	data, err = svc.SearchHairstyles(0, &dto.SearchRequest{Keyword: "cut", Gender: model.GenderFemale})
	require.NoError(t, err)
	require.Len(t, data.Hairstyles, 1)
	assert.Equal(t, "bob-cut", data.Hairstyles[0].Name)
}
