package service

import (
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "my new cut")

	info, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "looks great"})
	require.NoError(t, err)

	assert.Equal(t, post.ID, info.PostID)
	assert.Equal(t, "looks great", info.Text)
	assert.Nil(t, info.ParentID)
	assert.Equal(t, author.ID, info.Author.ID)
	assert.Equal(t, "alice", info.Author.Username)

	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(1), updated.CommentCount)
}

func TestCommentCreatePostNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")

	_, err := svc.Create(author.ID, 9999, &dto.CommentCreateRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentReply(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	replier := seedUser(t, db, "bob", "bob@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	top, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "top"})
	require.NoError(t, err)

	reply, err := svc.Reply(replier.ID, top.ID, &dto.CommentCreateRequest{Text: "reply"})
	require.NoError(t, err)

	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)
	assert.Equal(t, post.ID, reply.PostID)

	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(2), updated.CommentCount)
}

func TestCommentReplyToReplyRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	top, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "top"})
	require.NoError(t, err)
	reply, err := svc.Reply(author.ID, top.ID, &dto.CommentCreateRequest{Text: "reply"})
	require.NoError(t, err)

	_, err = svc.Reply(author.ID, reply.ID, &dto.CommentCreateRequest{Text: "nested"})
	assert.ErrorIs(t, err, ErrReplyToReply)
}

func TestCommentReplyParentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")

	_, err := svc.Reply(author.ID, 12345, &dto.CommentCreateRequest{Text: "reply"})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCommentListByPost(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	first, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "first"})
	require.NoError(t, err)
	second, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "second"})
	require.NoError(t, err)
	_, err = svc.Reply(author.ID, first.ID, &dto.CommentCreateRequest{Text: "r1"})
	require.NoError(t, err)
	_, err = svc.Reply(author.ID, first.ID, &dto.CommentCreateRequest{Text: "r2"})
	require.NoError(t, err)

	data, err := svc.ListByPost(post.ID)
	require.NoError(t, err)

	// 顶层按插入顺序，回复不单独出现在顶层列表
	require.Len(t, data.Comments, 2)
	assert.Equal(t, first.ID, data.Comments[0].ID)
	assert.Equal(t, second.ID, data.Comments[1].ID)

	// 回复嵌套在所属顶层评论下，按插入顺序
	require.Len(t, data.Comments[0].Replies, 2)
	assert.Equal(t, "r1", data.Comments[0].Replies[0].Text)
	assert.Equal(t, "r2", data.Comments[0].Replies[1].Text)
	assert.Empty(t, data.Comments[1].Replies)

	// 总数含回复
	assert.Equal(t, int64(4), data.Total)
}

func TestCommentUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	other := seedUser(t, db, "bob", "bob@example.com", "user")
	admin := seedUser(t, db, "root", "root@example.com", "admin")
	post := seedPost(t, db, author.ID, "post")

	comment, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "before"})
	require.NoError(t, err)

	// 作者本人可改
	updated, err := svc.Update(comment.ID, author.ID, &dto.CommentUpdateRequest{Text: "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)

	// 其他用户不可改
	_, err = svc.Update(comment.ID, other.ID, &dto.CommentUpdateRequest{Text: "hijack"})
	assert.ErrorIs(t, err, ErrCommentNoPermission)

	// 管理员也不能改别人的评论，修改仅限作者本人
	_, err = svc.Update(comment.ID, admin.ID, &dto.CommentUpdateRequest{Text: "moderated"})
	assert.ErrorIs(t, err, ErrCommentNoPermission)
}

func TestCommentUpdateEmptyTextKeepsOriginal(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	comment, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "original"})
	require.NoError(t, err)

	// 空内容不覆盖，原文返回
	updated, err := svc.Update(comment.ID, author.ID, &dto.CommentUpdateRequest{Text: ""})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Text)

	var stored model.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, "original", stored.Text)
}

func TestCommentUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	_, err := svc.Update(404, 1, &dto.CommentUpdateRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentDeleteReply(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	top, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "top"})
	require.NoError(t, err)
	reply, err := svc.Reply(author.ID, top.ID, &dto.CommentCreateRequest{Text: "reply"})
	require.NoError(t, err)

	removed, err := svc.Delete(reply.ID, author.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(1), updated.CommentCount)

	// 顶层评论还在
	data, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, data.Comments, 1)
	assert.Empty(t, data.Comments[0].Replies)
}

func TestCommentDeleteTopLevelCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	post := seedPost(t, db, author.ID, "post")

	top, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "top"})
	require.NoError(t, err)
	_, err = svc.Reply(author.ID, top.ID, &dto.CommentCreateRequest{Text: "r1"})
	require.NoError(t, err)
	_, err = svc.Reply(author.ID, top.ID, &dto.CommentCreateRequest{Text: "r2"})
	require.NoError(t, err)

	removed, err := svc.Delete(top.ID, author.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	// 回复一并删除，计数归零
	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(0), updated.CommentCount)
}

func TestCommentDeletePermission(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	author := seedUser(t, db, "alice", "alice@example.com", "user")
	other := seedUser(t, db, "bob", "bob@example.com", "user")
	admin := seedUser(t, db, "root", "root@example.com", "admin")
	post := seedPost(t, db, author.ID, "post")

	comment, err := svc.Create(author.ID, post.ID, &dto.CommentCreateRequest{Text: "mine"})
	require.NoError(t, err)

	_, err = svc.Delete(comment.ID, other.ID, "user")
	assert.ErrorIs(t, err, ErrCommentNoPermission)

	// 管理员可删任何人的评论
	removed, err := svc.Delete(comment.ID, admin.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestCommentDeleteByPostAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	owner := seedUser(t, db, "alice", "alice@example.com", "user")
	visitor := seedUser(t, db, "bob", "bob@example.com", "user")
	post := seedPost(t, db, owner.ID, "post")

	comment, err := svc.Create(visitor.ID, post.ID, &dto.CommentCreateRequest{Text: "spam"})
	require.NoError(t, err)

	// 帖子作者可删自己帖子下任何人的评论
	removed, err := svc.Delete(comment.ID, owner.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(0), updated.CommentCount)
}

func TestCommentDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)

	_, err := svc.Delete(777, 1, "user")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
