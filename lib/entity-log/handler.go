package entityloghandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pm-tools-backend/db"
	entitylogstore "pm-tools-backend/lib/entity-log/store"
	personstore "pm-tools-backend/lib/person/store"
	"pm-tools-backend/models"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	List(entityID string) ([]entityapimodels.LogView, error)
	Append(entry dbmodels.EntityLog) error
	AppendStatusChange(entityID, actorID string, logType models.LogType, prevStatus, newStatus models.EntityStatus, comments string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       entitylogstore.NewInstance(db.DB),
		personStore: personstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:       entitylogstore.NewInstance(tx),
		personStore: personstore.NewInstance(tx),
	}
}

type impl struct {
	store       entitylogstore.Provider
	personStore personstore.Provider
}

func (i impl) List(entityID string) ([]entityapimodels.LogView, error) {
	list, err := i.store.List(entityID)
	if err != nil {
		log.WithError(err).
			WithField("entity_id", entityID).
			Error("ошибка получения журнала записи")
		return nil, err
	}
	result := make([]entityapimodels.LogView, 0, len(list))
	for _, rec := range list {
		result = append(result, entityapimodels.LogConvert(rec))
	}
	return result, nil
}

func (i impl) Append(entry dbmodels.EntityLog) error {
	_, err := i.store.Create(entry)
	if err != nil {
		log.WithError(err).
			WithField("entity_id", entry.EntityID).
			WithField("log_type", entry.LogType).
			Error("ошибка записи в журнал")
		return err
	}
	return nil
}

func (i impl) AppendStatusChange(entityID, actorID string, logType models.LogType, prevStatus, newStatus models.EntityStatus, comments string) error {
	entry := dbmodels.EntityLog{
		EntityID:   entityID,
		LogType:    logType,
		PrevStatus: &prevStatus,
		NewStatus:  &newStatus,
		Comments:   comments,
	}
	if actorID != "" {
		entry.LoggedByID = &actorID
	}
	return i.Append(entry)
}
