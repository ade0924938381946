package entityapimodels

import (
	"time"

	"github.com/pkg/errors"
	apimodels "pm-tools-backend/models/api"

	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type EntityCreateData struct {
	Number      string                `json:"number"`      // номер записи, если пуст - генерируется сервером
	Title       string                `json:"title"`       // заголовок
	Description string                `json:"description"` // описание
	Status      models.EntityStatus   `json:"status"`      // начальный статус, если пуст - статус по умолчанию
	Priority    models.EntityPriority `json:"priority"`    // приоритет/серьезность
	ProjectID   string                `json:"project_id"`  // ид проекта
	AssigneeID  string                `json:"assignee_id"` // ид ответственного
	Probability models.RiskGrade      `json:"probability"` // вероятность (только риск)
	Impact      models.RiskGrade      `json:"impact"`      // влияние (только риск)
}

func (e EntityCreateData) Validate(def models.EntityDefinition) error {
	if e.Title == "" {
		return errors.New("отсутствует заголовок")
	}
	if e.Description == "" {
		return errors.New("отсутствует описание")
	}
	if e.ProjectID == "" {
		return errors.New("отсутствует ссылка на проект")
	}
	if e.Status != "" && !def.IsValidStatus(e.Status) {
		return errors.Errorf("недопустимый статус: %v", e.Status)
	}
	if e.Priority != "" && !e.Priority.IsValid() {
		return errors.Errorf("недопустимый приоритет: %v", e.Priority)
	}
	if def.Type == models.EntityTypeRisk {
		if e.Probability != "" && !e.Probability.IsValid() {
			return errors.Errorf("недопустимая вероятность: %v", e.Probability)
		}
		if e.Impact != "" && !e.Impact.IsValid() {
			return errors.Errorf("недопустимое влияние: %v", e.Impact)
		}
	}
	return nil
}

// EntityUpdateData - частичное обновление, применяются только заполненные поля
type EntityUpdateData struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *models.EntityStatus   `json:"status"`
	Priority    *models.EntityPriority `json:"priority"`
	AssigneeID  *string                `json:"assignee_id"`
	Probability *models.RiskGrade      `json:"probability"`
	Impact      *models.RiskGrade      `json:"impact"`
	Comment     string                 `json:"comment"` // комментарий к смене статуса
}

func (e EntityUpdateData) Validate(def models.EntityDefinition) error {
	if e.Title != nil && *e.Title == "" {
		return errors.New("заголовок не может быть пустым")
	}
	if e.Description != nil && *e.Description == "" {
		return errors.New("описание не может быть пустым")
	}
	if e.Status != nil && !def.IsValidStatus(*e.Status) {
		return errors.Errorf("недопустимый статус: %v", *e.Status)
	}
	if e.Priority != nil && !e.Priority.IsValid() {
		return errors.Errorf("недопустимый приоритет: %v", *e.Priority)
	}
	if def.Type == models.EntityTypeRisk {
		if e.Probability != nil && !e.Probability.IsValid() {
			return errors.Errorf("недопустимая вероятность: %v", *e.Probability)
		}
		if e.Impact != nil && !e.Impact.IsValid() {
			return errors.Errorf("недопустимое влияние: %v", *e.Impact)
		}
	}
	return nil
}

type CommentData struct {
	Comment string `json:"comment"` // текст комментария
}

func (c CommentData) Validate() error {
	if c.Comment == "" {
		return errors.New("отсутствует текст комментария")
	}
	return nil
}

type EntityFilter struct {
	apimodels.Pagination
	ProjectID  string                `json:"project_id"`  // фильтр по проекту
	Status     models.EntityStatus   `json:"status"`      // фильтр по статусу
	Priority   models.EntityPriority `json:"priority"`    // фильтр по приоритету
	AssigneeID string                `json:"assignee_id"` // фильтр по ответственному
	Search     string                `json:"search"`      // поиск по номеру/заголовку/описанию
}

type EntityView struct {
	ID                string                   `json:"id"`
	EntityType        models.EntityType        `json:"entity_type"`
	Number            string                   `json:"number"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	Status            models.EntityStatus      `json:"status"`
	Priority          models.EntityPriority    `json:"priority"`
	ProjectID         string                   `json:"project_id"`
	ProjectName       string                   `json:"project_name"`
	RaisedByID        string                   `json:"raised_by_id"`
	RaisedByName      string                   `json:"raised_by_name"`
	AssigneeID        string                   `json:"assignee_id"`
	AssigneeName      string                   `json:"assignee_name"`
	RaisedAt          time.Time                `json:"raised_at"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
	Probability       models.RiskGrade         `json:"probability,omitempty"`
	Impact            models.RiskGrade         `json:"impact,omitempty"`
	Score             int                      `json:"score,omitempty"`
	ScoreBand         models.RiskScoreBand     `json:"score_band,omitempty"`
	ClosureResolution models.ClosureResolution `json:"closure_resolution,omitempty"`
}

func EntityConvert(rec dbmodels.WorkflowEntity) EntityView {
	result := EntityView{
		ID:                rec.ID,
		EntityType:        rec.EntityType,
		Number:            rec.Number,
		Title:             rec.Title,
		Description:       rec.Description,
		Status:            rec.Status,
		Priority:          rec.Priority,
		ProjectID:         rec.ProjectID,
		RaisedByID:        rec.RaisedByID,
		RaisedAt:          rec.RaisedAt,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
		Probability:       rec.Probability,
		Impact:            rec.Impact,
		Score:             rec.Score,
		ClosureResolution: rec.ClosureResolution,
	}
	if rec.Score != 0 {
		result.ScoreBand = models.GetRiskScoreBand(rec.Score)
	}
	if rec.Project != nil {
		result.ProjectName = rec.Project.Name
	}
	if rec.RaisedBy != nil {
		result.RaisedByName = rec.RaisedBy.GetFullName()
	}
	if rec.AssigneeID != nil {
		result.AssigneeID = *rec.AssigneeID
	}
	if rec.Assignee != nil {
		result.AssigneeName = rec.Assignee.GetFullName()
	}
	return result
}
