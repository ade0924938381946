package dbmodels

import (
	"pm-tools-backend/models"
)

// EntityLog - append-only журнал по рабочей записи.
// Строки журнала никогда не обновляются и не удаляются поштучно.
type EntityLog struct {
	BaseModel
	EntityID   string               `gorm:"type:varchar(36);index"`
	Entity     *WorkflowEntity      `gorm:"foreignKey:EntityID"`
	LoggedByID *string              `gorm:"type:varchar(36)"`
	LoggedBy   *Person              `gorm:"foreignKey:LoggedByID"`
	LogType    models.LogType       `gorm:"type:varchar(40)"`
	PrevStatus *models.EntityStatus `gorm:"type:varchar(40)"`
	NewStatus  *models.EntityStatus `gorm:"type:varchar(40)"`
	Comments   string
	Changes    EntityChanges `gorm:"type:jsonb"`
}
