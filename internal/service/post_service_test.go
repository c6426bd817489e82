package service

import (
	"context"
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostGetByID(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "fresh fade")

	info, err := svc.GetByID(post.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, post.ID, info.ID)
	assert.Equal(t, "fresh fade", info.Text)
	assert.Equal(t, author.ID, info.Author.ID)
	assert.False(t, info.IsLiked)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	_, err := svc.GetByID(42, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostFeedOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	first := seedPost(t, db, author.ID, "first")
	second := seedPost(t, db, author.ID, "second")
	third := seedPost(t, db, author.ID, "third")

	data, err := svc.Feed(0, 1, 20, false)
	require.NoError(t, err)

	// 时间倒序：最新的在前
	require.Len(t, data.Posts, 3)
	assert.Equal(t, third.ID, data.Posts[0].ID)
	assert.Equal(t, second.ID, data.Posts[1].ID)
	assert.Equal(t, first.ID, data.Posts[2].ID)
	assert.Equal(t, int64(3), data.Total)
}

func TestPostFeedFollowingOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	carol := seedUser(t, db, "carol", "carol@example.com", "user")

	seedPost(t, db, alice.ID, "alice post")
	bobPost := seedPost(t, db, bob.ID, "bob post")

	// carol 只关注 bob
	require.NoError(t, db.Create(&model.Relation{FollowID: bob.ID, FollowerID: carol.ID}).Error)

	data, err := svc.Feed(carol.ID, 1, 20, true)
	require.NoError(t, err)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, bobPost.ID, data.Posts[0].ID)

	// 没有关注任何人时返回空列表
	empty, err := svc.Feed(alice.ID, 1, 20, true)
	require.NoError(t, err)
	assert.Empty(t, empty.Posts)
}

func TestPostToggleLike(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	liker := seedUser(t, db, "bob", "bob@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	data, err := svc.ToggleLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, data.Liked)
	assert.Equal(t, int64(1), data.LikeCount)

	// 再次切换取消点赞
	data, err = svc.ToggleLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, data.Liked)
	assert.Equal(t, int64(0), data.LikeCount)
}

func TestPostUpdatePermission(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	other := seedUser(t, db, "bob", "bob@example.com", "user")
	post := seedPost(t, db, author.ID, "before")

	newText := "after"
	_, err := svc.Update(post.ID, other.ID, "user", &dto.PostUpdateRequest{Text: &newText})
	assert.ErrorIs(t, err, ErrPostNoPermission)

	info, err := svc.Update(post.ID, author.ID, "user", &dto.PostUpdateRequest{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "after", info.Text)
}

func TestPostDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	commentSvc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	liker := seedUser(t, db, "bob", "bob@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	_, err := commentSvc.Create(liker.ID, post.ID, &dto.CommentCreateRequest{Text: "nice"})
	require.NoError(t, err)
	_, err = svc.ToggleLike(post.ID, liker.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), post.ID, author.ID, "user"))

	var comments, likes int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), likes)

	_, err = svc.GetByID(post.ID, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostDeleteAdminOverride(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	other := seedUser(t, db, "bob", "bob@example.com", "user")
	admin := seedUser(t, db, "root", "root@example.com", "admin")
	post := seedPost(t, db, author.ID, "post")

	err := svc.Delete(context.Background(), post.ID, other.ID, "user")
	assert.ErrorIs(t, err, ErrPostNoPermission)

	require.NoError(t, svc.Delete(context.Background(), post.ID, admin.ID, "admin"))
}

func TestPostListByUser(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	seedPost(t, db, alice.ID, "a1")
	seedPost(t, db, alice.ID, "a2")
	seedPost(t, db, bob.ID, "b1")

	data, err := svc.ListByUser(alice.ID, 0, 1, 20)
	require.NoError(t, err)
	assert.Len(t, data.Posts, 2)
	assert.Equal(t, int64(2), data.Total)

	_, err = svc.ListByUser(999, 0, 1, 20)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
