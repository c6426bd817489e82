package service

import (
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	info, err := svc.GetByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)

	_, err = svc.GetByID(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	newName := "alice-2"
	info, err := svc.Update(alice.ID, alice.ID, "user", &dto.UserUpdateRequest{Username: &newName})
	require.NoError(t, err)

	// 未提交的字段保持原值
	assert.Equal(t, "alice-2", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)
}

func TestUserUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo)

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	newPassword := "brand-new-pass"
	_, err := svc.Update(alice.ID, alice.ID, "user", &dto.UserUpdateRequest{Password: &newPassword})
	require.NoError(t, err)

	updated, err := userRepo.GetByID(alice.ID)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword("brand-new-pass", updated.Password))
	assert.False(t, utils.VerifyPassword("password123", updated.Password))
}

func TestUserUpdatePermission(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	bob := seedUser(t, db, "bob", "bob@example.com", "user")
	admin := seedUser(t, db, "root", "root@example.com", "admin")

	newName := "hijacked"
	_, err := svc.Update(alice.ID, bob.ID, "user", &dto.UserUpdateRequest{Username: &newName})
	assert.ErrorIs(t, err, ErrUserNoPermission)

	// 管理员可以修改任何用户
	_, err = svc.Update(alice.ID, admin.ID, "admin", &dto.UserUpdateRequest{Username: &newName})
	require.NoError(t, err)
}

func TestUserDeleteSoft(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	require.NoError(t, svc.Delete(alice.ID, alice.ID, "user"))

	// 软删除后对外不可见
	_, err := svc.GetByID(alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRestore(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")
	require.NoError(t, svc.Delete(alice.ID, alice.ID, "user"))

	info, err := svc.Restore(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)

	// 恢复后重新可见
	_, err = svc.GetByID(alice.ID)
	require.NoError(t, err)

	_, err = svc.Restore(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserPromote(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "alice@example.com", "user")

	info, err := svc.Promote(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", info.UserRole)

	role, err := svc.GetRole(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	seedUser(t, db, "alice", "alice@example.com", "user")
	seedUser(t, db, "alicia", "alicia@example.com", "user")
	seedUser(t, db, "bob", "bob@example.com", "admin")

	data, err := svc.List(1, 20, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), data.Total)

	// 用户名模糊匹配（大小写不敏感）
	name := "ALIC"
	data, err = svc.List(1, 20, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)

	role := "admin"
	data, err = svc.List(1, 20, nil, &role)
	require.NoError(t, err)
	require.Len(t, data.Users, 1)
	assert.Equal(t, "bob", data.Users[0].Username)
}
