package reportstore

import (
	"gorm.io/gorm"
	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type StatusCount struct {
	EntityType models.EntityType
	Status     models.EntityStatus
	Count      int64
}

type GradeCount struct {
	Probability models.RiskGrade
	Impact      models.RiskGrade
	Score       int
	Count       int64
}

type Provider interface {
	StatusCounts(projectID string) ([]StatusCount, error)
	RiskGradeCounts(projectID string) ([]GradeCount, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) StatusCounts(projectID string) ([]StatusCount, error) {
	list := []StatusCount{}
	tx := i.db.
		Model(&dbmodels.WorkflowEntity{}).
		Select("entity_type, status, count(*) as count").
		Group("entity_type, status")
	if projectID != "" {
		tx = tx.Where("project_id = ?", projectID)
	}
	err := tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) RiskGradeCounts(projectID string) ([]GradeCount, error) {
	list := []GradeCount{}
	tx := i.db.
		Model(&dbmodels.WorkflowEntity{}).
		Select("probability, impact, score, count(*) as count").
		Where("entity_type = ?", models.EntityTypeRisk).
		Where("probability <> '' AND impact <> ''").
		Group("probability, impact, score")
	if projectID != "" {
		tx = tx.Where("project_id = ?", projectID)
	}
	err := tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
