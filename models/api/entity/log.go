package entityapimodels

import (
	"time"

	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type LogView struct {
	ID           string         `json:"id"`
	EntityID     string         `json:"entity_id"`
	LogType      models.LogType `json:"log_type"`
	LoggedByID   string         `json:"logged_by_id"`
	LoggedByName string         `json:"logged_by_name"`
	PrevStatus   string         `json:"prev_status,omitempty"`
	NewStatus    string         `json:"new_status,omitempty"`
	Comments     string         `json:"comments"`
	Changes      []FieldChange  `json:"changes,omitempty"`
	LoggedAt     time.Time      `json:"logged_at"`
}

type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

func LogConvert(rec dbmodels.EntityLog) LogView {
	result := LogView{
		ID:       rec.ID,
		EntityID: rec.EntityID,
		LogType:  rec.LogType,
		Comments: rec.Comments,
		LoggedAt: rec.CreatedAt,
	}
	if rec.LoggedByID != nil {
		result.LoggedByID = *rec.LoggedByID
	}
	if rec.LoggedBy != nil {
		result.LoggedByName = rec.LoggedBy.GetFullName()
	}
	if rec.PrevStatus != nil {
		result.PrevStatus = string(*rec.PrevStatus)
	}
	if rec.NewStatus != nil {
		result.NewStatus = string(*rec.NewStatus)
	}
	for _, change := range rec.Changes.Data {
		result.Changes = append(result.Changes, FieldChange{
			Field:    change.Field,
			OldValue: change.OldValue,
			NewValue: change.NewValue,
		})
	}
	return result
}
