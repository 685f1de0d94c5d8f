package model

import "github.com/google/uuid"

// ActionType tags an audit log entry.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionEdit   ActionType = "edit"
	ActionDelete ActionType = "delete"
	ActionLogin  ActionType = "login"
)

// UserAction is an append-only audit record of a mutating user action.
// Rows are never updated or deleted by the system.
type UserAction struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `json:"user,omitempty"`
	ActionType  ActionType `gorm:"type:varchar(16);not null" json:"action_type"`
	Description string     `gorm:"type:varchar(255);not null" json:"description"`
}
