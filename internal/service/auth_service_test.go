package service

import (
	"testing"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
	"go-warehouse-tracker/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*gorm.DB, AuthService, repository.ActionRepository) {
	t.Helper()
	db := database.NewTestDB(t, &model.User{}, &model.UserProfile{}, &model.UserAction{})
	actionRepo := repository.NewActionRepo(db)
	svc := NewAuthService(repository.NewUserRepo(db), NewAuditor(actionRepo))
	return db, svc, actionRepo
}

func TestRegisterCreatesUserWithProfile(t *testing.T) {
	db, svc, _ := setupAuth(t)

	user, err := svc.Register(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	var profile model.UserProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, model.DefaultAvatarPath, profile.AvatarPath)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, svc, _ := setupAuth(t)

	_, err := svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.Register(&RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	_, svc, _ := setupAuth(t)

	_, err := svc.Register(&RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret123"})
	assert.Error(t, err)

	_, err = svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestLoginIssuesTokenAndAuditsIt(t *testing.T) {
	_, svc, actions := setupAuth(t)

	user, err := svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login("alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	entries, err := actions.FindByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionLogin, entries[0].ActionType)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, svc, _ := setupAuth(t)

	_, err := svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
