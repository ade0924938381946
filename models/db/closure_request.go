package dbmodels

import (
	"time"

	"pm-tools-backend/models"
)

// ClosureRequest - запрос на закрытие риска. На риск допускается не более
// одного запроса в состоянии Pending, история запросов сохраняется.
type ClosureRequest struct {
	BaseModel
	EntityID      string          `gorm:"type:varchar(36);index"`
	Entity        *WorkflowEntity `gorm:"foreignKey:EntityID"`
	RequestedByID string          `gorm:"type:varchar(36)"`
	RequestedBy   *Person         `gorm:"foreignKey:RequestedByID"`
	Justification string
	// статус риска до запроса, восстанавливается при отклонении
	PriorStatus      models.EntityStatus      `gorm:"type:varchar(40)"`
	Resolution       models.ClosureResolution `gorm:"type:varchar(20);index"`
	DecidedByID      *string                  `gorm:"type:varchar(36)"`
	DecidedBy        *Person                  `gorm:"foreignKey:DecidedByID"`
	DecisionComments string
	DecidedAt        *time.Time
}
