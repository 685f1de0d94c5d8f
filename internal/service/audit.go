package service

import (
	"log"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
)

// Auditor appends audit log entries for mutating operations. Appends are
// best-effort: a failed write is logged and never fails the parent operation.
type Auditor struct {
	actions repository.ActionRepository
}

func NewAuditor(actions repository.ActionRepository) *Auditor {
	return &Auditor{actions: actions}
}

func (a *Auditor) Record(actor *model.User, actionType model.ActionType, description string) {
	entry := &model.UserAction{
		UserID:      actor.ID,
		ActionType:  actionType,
		Description: description,
	}
	entry.CreatedBy = actor.Username
	entry.UpdatedBy = actor.Username

	if err := a.actions.Append(entry); err != nil {
		log.Printf("audit: failed to record %s action for %s: %v", actionType, actor.Username, err)
	}
}
