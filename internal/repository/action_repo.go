package repository

import (
	"go-warehouse-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionRepository is the append-only audit trail. There are deliberately no
// update or delete methods.
type ActionRepository interface {
	Append(action *model.UserAction) error
	FindByUser(userID uuid.UUID) ([]model.UserAction, error)
}

type actionRepo struct {
	db *gorm.DB
}

func NewActionRepo(db *gorm.DB) ActionRepository {
	return &actionRepo{db}
}

func (r *actionRepo) Append(action *model.UserAction) error {
	return r.db.Create(action).Error
}

func (r *actionRepo) FindByUser(userID uuid.UUID) ([]model.UserAction, error) {
	var actions []model.UserAction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&actions).Error
	return actions, err
}
