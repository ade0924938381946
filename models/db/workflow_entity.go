package dbmodels

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pm-tools-backend/models"
)

// WorkflowEntity - рабочая запись (issue/risk/change/escalation/fault),
// тип задается дискриминатором EntityType, номер уникален в рамках типа.
// Статус меняется только через workflow-сервис, напрямую поле не обновляется.
type WorkflowEntity struct {
	BaseModel
	EntityType  models.EntityType `gorm:"type:varchar(20);uniqueIndex:idx_entity_type_number;index"`
	Number      string            `gorm:"type:varchar(64);uniqueIndex:idx_entity_type_number"`
	Title       string            `gorm:"type:varchar(255)"`
	Description string
	Status      models.EntityStatus   `gorm:"type:varchar(40);index"`
	Priority    models.EntityPriority `gorm:"type:varchar(20)"`
	ProjectID   string                `gorm:"type:varchar(36);index"`
	Project     *Project
	RaisedByID  string  `gorm:"type:varchar(36)"`
	RaisedBy    *Person `gorm:"foreignKey:RaisedByID"`
	AssigneeID  *string `gorm:"type:varchar(36);index"`
	Assignee    *Person `gorm:"foreignKey:AssigneeID"`
	RaisedAt    time.Time

	// поля риска, для остальных типов пустые
	Probability       models.RiskGrade `gorm:"type:varchar(20)"`
	Impact            models.RiskGrade `gorm:"type:varchar(20)"`
	Score             int
	ClosureResolution models.ClosureResolution `gorm:"type:varchar(20)"`
}

func (e *WorkflowEntity) AfterDelete(tx *gorm.DB) (err error) {
	if e.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("entity_id = ?", e.ID).Delete(&ActionItem{})
	tx.Clauses(clause.Returning{}).Where("entity_id = ?", e.ID).Delete(&EntityLog{})
	tx.Clauses(clause.Returning{}).Where("entity_id = ?", e.ID).Delete(&ClosureRequest{})
	tx.Clauses(clause.Returning{}).Where("entity_id = ?", e.ID).Delete(&Attachment{})
	return
}
