package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-warehouse-tracker/internal/imaging"
	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
)

// ProfileUpdate carries the editable account fields. Avatar is optional.
type ProfileUpdate struct {
	Username string
	Email    string
	Avatar   io.Reader
}

type AccountService interface {
	GetProfile(userID uuid.UUID) (*model.User, error)
	UpdateProfile(userID uuid.UUID, update *ProfileUpdate) (*model.User, error)
	ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error
	DeleteAccount(userID uuid.UUID) error
}

type accountService struct {
	userRepo  repository.UserRepository
	mediaRoot string
}

// NewAccountService stores avatar files under mediaRoot/avatars/.
func NewAccountService(userRepo repository.UserRepository, mediaRoot string) AccountService {
	return &accountService{userRepo: userRepo, mediaRoot: mediaRoot}
}

func (s *accountService) GetProfile(userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *accountService) UpdateProfile(userID uuid.UUID, update *ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if update.Username != "" && update.Username != user.Username {
		if existing, _ := s.userRepo.FindByUsername(update.Username); existing != nil {
			return nil, ErrUsernameExists
		}
		user.Username = update.Username
	}
	if update.Email != "" && update.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(update.Email); existing != nil {
			return nil, ErrEmailExists
		}
		user.Email = update.Email
	}
	user.UpdatedBy = user.Username

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if update.Avatar != nil {
		avatarPath, err := s.storeAvatar(update.Avatar)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdateAvatar(userID, avatarPath); err != nil {
			return nil, err
		}
		if user.Profile != nil {
			user.Profile.AvatarPath = avatarPath
		}
	}

	return user, nil
}

// storeAvatar validates and downscales the upload, then writes it under the
// media root and returns the relative path kept on the profile.
func (s *accountService) storeAvatar(r io.Reader) (string, error) {
	data, err := imaging.ProcessAvatar(r)
	if err != nil {
		return "", err
	}

	relPath := filepath.Join("avatars", uuid.New().String()+".jpg")
	fullPath := filepath.Join(s.mediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("creating avatar directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing avatar file: %w", err)
	}
	return filepath.ToSlash(relPath), nil
}

func (s *accountService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.userRepo.UpdatePassword(userID, user.Password)
}

func (s *accountService) DeleteAccount(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(userID)
}
