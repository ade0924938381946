package entityapimodels

import (
	"time"

	"github.com/pkg/errors"
	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type ClosureRequestData struct {
	Justification string `json:"justification"` // обоснование закрытия риска
}

func (c ClosureRequestData) Validate() error {
	if c.Justification == "" {
		return errors.New("отсутствует обоснование закрытия")
	}
	return nil
}

type ClosureDecisionData struct {
	Comments string `json:"comments"` // комментарий решения
}

func (c ClosureDecisionData) Validate() error {
	return nil
}

type ClosureRequestView struct {
	ID               string                   `json:"id"`
	EntityID         string                   `json:"entity_id"`
	RequestedByID    string                   `json:"requested_by_id"`
	RequestedByName  string                   `json:"requested_by_name"`
	Justification    string                   `json:"justification"`
	PriorStatus      models.EntityStatus      `json:"prior_status"`
	Resolution       models.ClosureResolution `json:"resolution"`
	DecidedByID      string                   `json:"decided_by_id,omitempty"`
	DecidedByName    string                   `json:"decided_by_name,omitempty"`
	DecisionComments string                   `json:"decision_comments,omitempty"`
	DecidedAt        *time.Time               `json:"decided_at,omitempty"`
	RequestedAt      time.Time                `json:"requested_at"`
}

func ClosureRequestConvert(rec dbmodels.ClosureRequest) ClosureRequestView {
	result := ClosureRequestView{
		ID:               rec.ID,
		EntityID:         rec.EntityID,
		RequestedByID:    rec.RequestedByID,
		Justification:    rec.Justification,
		PriorStatus:      rec.PriorStatus,
		Resolution:       rec.Resolution,
		DecisionComments: rec.DecisionComments,
		DecidedAt:        rec.DecidedAt,
		RequestedAt:      rec.CreatedAt,
	}
	if rec.RequestedBy != nil {
		result.RequestedByName = rec.RequestedBy.GetFullName()
	}
	if rec.DecidedByID != nil {
		result.DecidedByID = *rec.DecidedByID
	}
	if rec.DecidedBy != nil {
		result.DecidedByName = rec.DecidedBy.GetFullName()
	}
	return result
}
