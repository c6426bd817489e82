package service

import (
	"testing"

	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewHairstyleRepository(db),
	)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	first := seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)
	second := seedHairstyle(t, db, "bob-cut", model.GenderFemale)

	require.NoError(t, svc.Add(alice.ID, first.ID))
	require.NoError(t, svc.Add(alice.ID, second.ID))

	data, err := svc.ListByUser(alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, data.Favorites, 2)
	assert.Equal(t, int64(2), data.Total)

	// 最新收藏在前，并附带发型详情
	assert.Equal(t, second.ID, data.Favorites[0].HairstyleID)
	assert.Equal(t, "bob-cut", data.Favorites[0].Hairstyle.Name)
	assert.True(t, data.Favorites[0].Hairstyle.IsFavorited)
}

func TestFavoriteDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewHairstyleRepository(db),
	)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	hairstyle := seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)

	require.NoError(t, svc.Add(alice.ID, hairstyle.ID))
	assert.ErrorIs(t, svc.Add(alice.ID, hairstyle.ID), ErrAlreadyFavorited)
}

func TestFavoriteAddHairstyleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewHairstyleRepository(db),
	)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	assert.ErrorIs(t, svc.Add(alice.ID, 404), ErrHairstyleNotFound)
}

func TestFavoriteRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewHairstyleRepository(db),
	)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	hairstyle := seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)

	require.NoError(t, svc.Add(alice.ID, hairstyle.ID))
	require.NoError(t, svc.Remove(alice.ID, hairstyle.ID))

	// 再次取消收藏报未收藏
	assert.ErrorIs(t, svc.Remove(alice.ID, hairstyle.ID), ErrNotFavorited)

	data, err := svc.ListByUser(alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, data.Favorites)
}
