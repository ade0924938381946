package actionapimodels

import (
	"time"

	"github.com/pkg/errors"
	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type ActionData struct {
	Description string                `json:"description"` // описание задачи
	ActionType  string                `json:"action_type"` // тип задачи, произвольная метка
	AssigneeID  string                `json:"assignee_id"` // ид исполнителя
	Status      models.ActionStatus   `json:"status"`      // статус
	Priority    models.EntityPriority `json:"priority"`    // приоритет
	DueDate     *time.Time            `json:"due_date"`    // срок исполнения
	Notes       string                `json:"notes"`       // заметки
}

func (a ActionData) Validate() error {
	if a.Description == "" {
		return errors.New("отсутствует описание задачи")
	}
	if a.Status != "" && !a.Status.IsValid() {
		return errors.Errorf("недопустимый статус задачи: %v", a.Status)
	}
	if a.Priority != "" && !a.Priority.IsValid() {
		return errors.Errorf("недопустимый приоритет задачи: %v", a.Priority)
	}
	return nil
}

// ActionUpdateData - частичное обновление, применяются только заполненные поля
type ActionUpdateData struct {
	Description     *string                `json:"description"`
	ActionType      *string                `json:"action_type"`
	AssigneeID      *string                `json:"assignee_id"`
	Status          *models.ActionStatus   `json:"status"`
	Priority        *models.EntityPriority `json:"priority"`
	DueDate         *time.Time             `json:"due_date"`
	Notes           *string                `json:"notes"`
	CompletionNotes *string                `json:"completion_notes"`
}

func (a ActionUpdateData) Validate() error {
	if a.Description != nil && *a.Description == "" {
		return errors.New("описание задачи не может быть пустым")
	}
	if a.Status != nil && !a.Status.IsValid() {
		return errors.Errorf("недопустимый статус задачи: %v", *a.Status)
	}
	if a.Priority != nil && !a.Priority.IsValid() {
		return errors.Errorf("недопустимый приоритет задачи: %v", *a.Priority)
	}
	return nil
}

type ActionView struct {
	ID              string                `json:"id"`
	EntityID        string                `json:"entity_id"`
	Description     string                `json:"description"`
	ActionType      string                `json:"action_type"`
	AssigneeID      string                `json:"assignee_id"`
	AssigneeName    string                `json:"assignee_name"`
	CreatedByID     string                `json:"created_by_id"`
	CreatedByName   string                `json:"created_by_name"`
	Status          models.ActionStatus   `json:"status"`
	Priority        models.EntityPriority `json:"priority"`
	DueDate         *time.Time            `json:"due_date,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	Notes           string                `json:"notes"`
	CompletionNotes string                `json:"completion_notes"`
	CreatedAt       time.Time             `json:"created_at"`
}

func ActionConvert(rec dbmodels.ActionItem) ActionView {
	result := ActionView{
		ID:              rec.ID,
		EntityID:        rec.EntityID,
		Description:     rec.Description,
		ActionType:      rec.ActionType,
		CreatedByID:     rec.CreatedByID,
		Status:          rec.Status,
		Priority:        rec.Priority,
		DueDate:         rec.DueDate,
		CompletedAt:     rec.CompletedAt,
		Notes:           rec.Notes,
		CompletionNotes: rec.CompletionNotes,
		CreatedAt:       rec.CreatedAt,
	}
	if rec.AssigneeID != nil {
		result.AssigneeID = *rec.AssigneeID
	}
	if rec.Assignee != nil {
		result.AssigneeName = rec.Assignee.GetFullName()
	}
	if rec.CreatedBy != nil {
		result.CreatedByName = rec.CreatedBy.GetFullName()
	}
	return result
}
