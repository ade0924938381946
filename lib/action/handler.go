package actionhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"pm-tools-backend/db"
	actionstore "pm-tools-backend/lib/action/store"
	personstore "pm-tools-backend/lib/person/store"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	actionapimodels "pm-tools-backend/models/api/action"
	dbmodels "pm-tools-backend/models/db"
)

// Задачи живут при родительской записи. Смена статуса задачи в журнал
// родителя не пишется - журналируются только переходы самой записи.

type Provider interface {
	Create(entityType models.EntityType, entityID, actorID string, data actionapimodels.ActionData) (id string, err error)
	Update(entityType models.EntityType, entityID, actionID, actorID string, data actionapimodels.ActionUpdateData) error
	Delete(entityType models.EntityType, entityID, actionID string) error
	List(entityType models.EntityType, entityID string) ([]actionapimodels.ActionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       actionstore.NewInstance(db.DB),
		entityStore: entitystore.NewInstance(db.DB),
		personStore: personstore.NewInstance(db.DB),
	}
}

type impl struct {
	store       actionstore.Provider
	entityStore entitystore.Provider
	personStore personstore.Provider
}

func (i impl) getLogger(entityID string) *log.Entry {
	return log.WithField("entity_id", entityID)
}

func (i impl) checkParent(entityType models.EntityType, entityID string) error {
	rec, err := i.entityStore.GetByID(entityType, entityID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	return nil
}

func (i impl) checkPerson(id, message string) error {
	person, err := i.personStore.GetByID(id)
	if err != nil {
		return err
	}
	if person == nil {
		return errors.New(message)
	}
	return nil
}

func (i impl) Create(entityType models.EntityType, entityID, actorID string, data actionapimodels.ActionData) (string, error) {
	logger := i.getLogger(entityID)
	if err := i.checkParent(entityType, entityID); err != nil {
		return "", err
	}
	if err := i.checkPerson(actorID, "автор задачи не найден в справочнике сотрудников"); err != nil {
		return "", err
	}
	if data.AssigneeID != "" {
		if err := i.checkPerson(data.AssigneeID, "исполнитель не найден в справочнике сотрудников"); err != nil {
			return "", err
		}
	}
	status := data.Status
	if status == "" {
		status = models.ActionStatusPending
	}
	rec := dbmodels.ActionItem{
		EntityID:    entityID,
		Description: data.Description,
		ActionType:  data.ActionType,
		CreatedByID: actorID,
		Status:      status,
		Priority:    data.Priority,
		DueDate:     data.DueDate,
		Notes:       data.Notes,
	}
	if data.AssigneeID != "" {
		rec.AssigneeID = &data.AssigneeID
	}
	if status == models.ActionStatusCompleted {
		now := time.Now()
		rec.CompletedAt = &now
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания задачи")
		return "", err
	}
	logger.WithField("action_id", id).Info("создана задача")
	return id, nil
}

func (i impl) Update(entityType models.EntityType, entityID, actionID, actorID string, data actionapimodels.ActionUpdateData) error {
	logger := i.getLogger(entityID).WithField("action_id", actionID)
	if err := i.checkParent(entityType, entityID); err != nil {
		return err
	}
	if err := i.checkPerson(actorID, "автор изменения не найден в справочнике сотрудников"); err != nil {
		return err
	}
	rec, err := i.store.GetByID(entityID, actionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}

	updMap := map[string]interface{}{}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.ActionType != nil {
		updMap["action_type"] = *data.ActionType
	}
	if data.AssigneeID != nil {
		if *data.AssigneeID != "" {
			if err := i.checkPerson(*data.AssigneeID, "исполнитель не найден в справочнике сотрудников"); err != nil {
				return err
			}
		}
		updMap["assignee_id"] = *data.AssigneeID
	}
	if data.Status != nil && *data.Status != rec.Status {
		updMap["status"] = *data.Status
		if *data.Status == models.ActionStatusCompleted {
			updMap["completed_at"] = time.Now()
		}
	}
	if data.Priority != nil {
		updMap["priority"] = *data.Priority
	}
	if data.DueDate != nil {
		updMap["due_date"] = *data.DueDate
	}
	if data.Notes != nil {
		updMap["notes"] = *data.Notes
	}
	if data.CompletionNotes != nil {
		updMap["completion_notes"] = *data.CompletionNotes
	}
	err = i.store.Update(entityID, actionID, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления задачи")
		return err
	}
	logger.Info("обновлена задача")
	return nil
}

func (i impl) Delete(entityType models.EntityType, entityID, actionID string) error {
	logger := i.getLogger(entityID).WithField("action_id", actionID)
	if err := i.checkParent(entityType, entityID); err != nil {
		return err
	}
	rec, err := i.store.GetByID(entityID, actionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	err = i.store.Delete(entityID, actionID)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления задачи")
		return err
	}
	logger.Info("удалена задача")
	return nil
}

func (i impl) List(entityType models.EntityType, entityID string) ([]actionapimodels.ActionView, error) {
	if err := i.checkParent(entityType, entityID); err != nil {
		return nil, err
	}
	list, err := i.store.List(entityID)
	if err != nil {
		i.getLogger(entityID).WithError(err).Error("ошибка получения списка задач")
		return nil, err
	}
	result := make([]actionapimodels.ActionView, 0, len(list))
	for _, rec := range list {
		result = append(result, actionapimodels.ActionConvert(rec))
	}
	return result, nil
}
