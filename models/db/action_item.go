package dbmodels

import (
	"time"

	"pm-tools-backend/models"
)

// ActionItem - задача по устранению/минимизации, принадлежит ровно одной
// рабочей записи и удаляется вместе с ней
type ActionItem struct {
	BaseModel
	EntityID        string          `gorm:"type:varchar(36);index"`
	Entity          *WorkflowEntity `gorm:"foreignKey:EntityID"`
	Description     string
	ActionType      string                `gorm:"type:varchar(100)"`
	AssigneeID      *string               `gorm:"type:varchar(36)"`
	Assignee        *Person               `gorm:"foreignKey:AssigneeID"`
	CreatedByID     string                `gorm:"type:varchar(36)"`
	CreatedBy       *Person               `gorm:"foreignKey:CreatedByID"`
	Status          models.ActionStatus   `gorm:"type:varchar(20)"`
	Priority        models.EntityPriority `gorm:"type:varchar(20)"`
	DueDate         *time.Time
	CompletedAt     *time.Time
	Notes           string
	CompletionNotes string
}
