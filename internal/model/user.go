package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAvatarPath is served when a user never uploaded an avatar.
const DefaultAvatarPath = "avatars/default.png"

// User represents an authenticated account in the system
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Every user has exactly one profile, created together with the account.
	Profile *UserProfile `json:"profile,omitempty"`
}

// UserProfile holds the avatar file reference, one-to-one with User.
type UserProfile struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	AvatarPath string    `gorm:"type:varchar(255);not null;default:'avatars/default.png'" json:"avatar_path"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
	Avatar   string    `json:"avatar"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	avatar := DefaultAvatarPath
	if u.Profile != nil && u.Profile.AvatarPath != "" {
		avatar = u.Profile.AvatarPath
	}
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
		Avatar:   avatar,
	}
}
