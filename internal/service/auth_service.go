package service

import (
	"errors"
	"fmt"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
	"go-warehouse-tracker/pkg/jwt"
	"go-warehouse-tracker/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Register(req *RegisterRequest) (*model.User, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type authService struct {
	userRepo repository.UserRepository
	audit    *Auditor
}

func NewAuthService(userRepo repository.UserRepository, audit *Auditor) AuthService {
	return &authService{userRepo: userRepo, audit: audit}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	s.audit.Record(user, model.ActionLogin, "Logged in")

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Register creates the account together with its profile: the one-profile-
// per-user invariant holds from the moment the user row exists.
func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, ErrUsernameExists
	}
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
	}
	user.CreatedBy = req.Username
	user.UpdatedBy = req.Username

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.CreateWithProfile(user); err != nil {
		return nil, err
	}

	return user, nil
}
