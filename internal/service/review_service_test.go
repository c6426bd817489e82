package service

import (
	"context"
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Kafka 生产者在测试中未初始化，评价变更会走同步重算路径

func TestReviewCreateUpdatesAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	hairstyle := seedHairstyle(t, db, "buzz-cut", model.GenderUnisex)

	_, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 3})
	require.NoError(t, err)

	var updated model.Hairstyle
	require.NoError(t, db.First(&updated, hairstyle.ID).Error)
	assert.Equal(t, int64(2), updated.NumReviews)
	assert.InDelta(t, 4.0, updated.AverageRating, 0.001)
}

func TestReviewDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	hairstyle := seedHairstyle(t, db, "bob-cut", model.GenderFemale)

	_, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 2})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewCreateHairstyleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	_, err := svc.Create(context.Background(), alice.ID, 404, &dto.ReviewCreateRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrHairstyleNotFound)
}

func TestReviewUpdateRecomputesAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	hairstyle := seedHairstyle(t, db, "undercut", model.GenderMale)

	review, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 2})
	require.NoError(t, err)

	newRating := 5
	updated, err := svc.Update(context.Background(), review.ID, alice.ID, "user", &dto.ReviewUpdateRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	var h model.Hairstyle
	require.NoError(t, db.First(&h, hairstyle.ID).Error)
	assert.InDelta(t, 5.0, h.AverageRating, 0.001)
}

func TestReviewDeleteRecomputesAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	hairstyle := seedHairstyle(t, db, "pompadour", model.GenderMale)

	review, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 1})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), review.ID, alice.ID, "user"))

	var h model.Hairstyle
	require.NoError(t, db.First(&h, hairstyle.ID).Error)
	assert.Equal(t, int64(1), h.NumReviews)
	assert.InDelta(t, 5.0, h.AverageRating, 0.001)

	// 最后一条评价删除后聚合归零
	var remaining model.Review
	require.NoError(t, db.Where("hairstyle_id = ?", hairstyle.ID).First(&remaining).Error)
	require.NoError(t, svc.Delete(context.Background(), remaining.ID, bob.ID, "user"))

	require.NoError(t, db.First(&h, hairstyle.ID).Error)
	assert.Equal(t, int64(0), h.NumReviews)
	assert.InDelta(t, 0.0, h.AverageRating, 0.001)
}

func TestReviewDeletePermission(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	admin := seedUser(t, db, "root", "root@example.com", "admin")
	hairstyle := seedHairstyle(t, db, "mullet", model.GenderUnisex)

	review, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 3})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), review.ID, bob.ID, "user")
	assert.ErrorIs(t, err, ErrReviewNoPermission)

	require.NoError(t, svc.Delete(context.Background(), review.ID, admin.ID, "admin"))
}

func TestReviewListByHairstyle(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	hairstyle := seedHairstyle(t, db, "quiff", model.GenderMale)

	_, err := svc.Create(context.Background(), alice.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, hairstyle.ID, &dto.ReviewCreateRequest{Rating: 5, Comment: "love it"})
	require.NoError(t, err)

	data, err := svc.ListByHairstyle(hairstyle.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, data.Reviews, 2)
	assert.Equal(t, int64(2), data.Total)

	// 最新在前
	assert.Equal(t, "love it", data.Reviews[0].Comment)
	assert.Equal(t, bob.ID, data.Reviews[0].User.ID)
}
