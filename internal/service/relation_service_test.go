package service

import (
	"testing"

	"cutmatch-go/internal/model"
	"cutmatch-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRelationService(db *gorm.DB) *RelationService {
	return NewRelationService(
		repository.NewRelationRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestRelationFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))

	// 计数同步维护
	var follower, followed model.User
	require.NoError(t, db.First(&follower, alice.ID).Error)
	require.NoError(t, db.First(&followed, bob.ID).Error)
	assert.Equal(t, int64(1), follower.FollowCount)
	assert.Equal(t, int64(1), followed.FollowerCount)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))

	require.NoError(t, db.First(&follower, alice.ID).Error)
	require.NoError(t, db.First(&followed, bob.ID).Error)
	assert.Equal(t, int64(0), follower.FollowCount)
	assert.Equal(t, int64(0), followed.FollowerCount)
}

func TestRelationFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	assert.ErrorIs(t, svc.Follow(alice.ID, alice.ID), ErrCannotFollowSelf)
}

func TestRelationDuplicateFollowRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Follow(alice.ID, bob.ID), ErrAlreadyFollowed)
}

func TestRelationUnfollowNotFollowed(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")

	assert.ErrorIs(t, svc.Unfollow(alice.ID, bob.ID), ErrNotFollowed)
}

func TestRelationFollowUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	assert.ErrorIs(t, svc.Follow(alice.ID, 404), ErrUserNotFound)
}

func TestRelationLists(t *testing.T) {
	db := newTestDB(t)
	svc := newRelationService(db)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	carol := seedUser(t, db, "carol", "carol@example.com", "user")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	require.NoError(t, svc.Follow(carol.ID, bob.ID))

	followers, err := svc.GetFollowerList(bob.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers.Total)
	assert.Len(t, followers.Users, 2)

	following, err := svc.GetFollowingList(alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	assert.Equal(t, bob.ID, following.Users[0].ID)
}
