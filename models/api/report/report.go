package reportapimodels

import (
	"time"

	"pm-tools-backend/models"
)

type StatusSummaryView struct {
	EntityType models.EntityType             `json:"entity_type"`
	Total      int64                         `json:"total"`
	ByStatus   map[models.EntityStatus]int64 `json:"by_status"`
}

type RiskMatrixView struct {
	Total int64                          `json:"total"`
	Bands map[models.RiskScoreBand]int64 `json:"bands"`
	Cells []RiskMatrixCell               `json:"cells"`
}

type RiskMatrixCell struct {
	Probability models.RiskGrade `json:"probability"`
	Impact      models.RiskGrade `json:"impact"`
	Count       int64            `json:"count"`
}

type OverdueActionView struct {
	ActionID     string              `json:"action_id"`
	EntityID     string              `json:"entity_id"`
	EntityNumber string              `json:"entity_number"`
	Description  string              `json:"description"`
	AssigneeName string              `json:"assignee_name"`
	Status       models.ActionStatus `json:"status"`
	DueDate      time.Time           `json:"due_date"`
}
