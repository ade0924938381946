package riskclosurehandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pm-tools-backend/db"
	entityloghandler "pm-tools-backend/lib/entity-log"
	"pm-tools-backend/lib/notification"
	personstore "pm-tools-backend/lib/person/store"
	closurestore "pm-tools-backend/lib/risk-closure/store"
	workflowhandler "pm-tools-backend/lib/workflow"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

// Согласование закрытия риска: request -> approve/reject.
// Статус риска становится Closed только через Approve, прямое закрытие
// через workflow-сервис блокируется.

type Provider interface {
	RequestClosure(riskID, actorID string, data entityapimodels.ClosureRequestData) error
	ApproveClosure(riskID, actorID string, data entityapimodels.ClosureDecisionData) error
	RejectClosure(riskID, actorID string, data entityapimodels.ClosureDecisionData) error
	GetRequests(riskID string) ([]entityapimodels.ClosureRequestView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       closurestore.NewInstance(db.DB),
		entityStore: entitystore.NewInstance(db.DB),
		personStore: personstore.NewInstance(db.DB),
		notifier:    notification.Instance,
	}
}

type impl struct {
	store       closurestore.Provider
	entityStore entitystore.Provider
	personStore personstore.Provider
	notifier    notification.Provider
	// подменяемые фабрики, в рабочей конфигурации остаются nil
	runTx          func(fn func(tx *gorm.DB) error) error
	newStore       func(tx *gorm.DB) closurestore.Provider
	newEntityStore func(tx *gorm.DB) entitystore.Provider
	newLogs        func(tx *gorm.DB) entityloghandler.Provider
	newWorkflow    func(tx *gorm.DB, def models.EntityDefinition) workflowhandler.Provider
}

func (i impl) getLogger(riskID string) *log.Entry {
	return log.WithField("risk_id", riskID)
}

func (i impl) transaction(fn func(tx *gorm.DB) error) error {
	if i.runTx != nil {
		return i.runTx(fn)
	}
	return db.DB.Transaction(fn)
}

func (i impl) storeIn(tx *gorm.DB) closurestore.Provider {
	if i.newStore != nil {
		return i.newStore(tx)
	}
	return closurestore.NewInstance(tx)
}

func (i impl) entityStoreIn(tx *gorm.DB) entitystore.Provider {
	if i.newEntityStore != nil {
		return i.newEntityStore(tx)
	}
	return entitystore.NewInstance(tx)
}

func (i impl) logsIn(tx *gorm.DB) entityloghandler.Provider {
	if i.newLogs != nil {
		return i.newLogs(tx)
	}
	return entityloghandler.NewHandlerWithTx(tx)
}

func (i impl) workflowIn(tx *gorm.DB, def models.EntityDefinition) workflowhandler.Provider {
	if i.newWorkflow != nil {
		return i.newWorkflow(tx, def)
	}
	return workflowhandler.NewHandlerWithTx(tx, def)
}

func (i impl) getRisk(riskID string) (*dbmodels.WorkflowEntity, error) {
	rec, err := i.entityStore.GetByID(models.EntityTypeRisk, riskID)
	if err != nil {
		i.getLogger(riskID).WithError(err).Error("ошибка получения риска")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (i impl) checkActor(actorID string) error {
	actor, err := i.personStore.GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return errors.New("автор изменения не найден в справочнике сотрудников")
	}
	return nil
}

func (i impl) RequestClosure(riskID, actorID string, data entityapimodels.ClosureRequestData) error {
	logger := i.getLogger(riskID).WithField("user_id", actorID)
	rec, err := i.getRisk(riskID)
	if err != nil {
		return err
	}
	if err = i.checkActor(actorID); err != nil {
		return err
	}
	if rec.Status == models.EntityStatusClosed {
		return models.ErrInvalidState
	}
	pending, err := i.store.GetPending(riskID)
	if err != nil {
		return err
	}
	if pending != nil {
		logger.Warn("отклонен повторный запрос на закрытие риска")
		return models.ErrInvalidState
	}

	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		entityStore := i.entityStoreIn(tx)
		logHandler := i.logsIn(tx)
		request := dbmodels.ClosureRequest{
			EntityID:      riskID,
			RequestedByID: actorID,
			Justification: data.Justification,
			PriorStatus:   rec.Status,
			Resolution:    models.ClosurePending,
		}
		if _, err := store.Create(request); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":             models.RiskStatusPendingApproval,
			"closure_resolution": models.ClosurePending,
		}
		if err := entityStore.Update(models.EntityTypeRisk, riskID, updMap); err != nil {
			return err
		}
		return logHandler.AppendStatusChange(riskID, actorID, models.LogTypeClosureRequested, rec.Status, models.RiskStatusPendingApproval, data.Justification)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка запроса на закрытие риска")
		return err
	}
	logger.Info("запрошено закрытие риска")
	i.notifyRaiser(rec, func(raiser dbmodels.Person) {
		i.notifier.NotifyClosureRequested(raiser, *rec, data.Justification)
	})
	return nil
}

func (i impl) ApproveClosure(riskID, actorID string, data entityapimodels.ClosureDecisionData) error {
	logger := i.getLogger(riskID).WithField("user_id", actorID)
	rec, err := i.getRisk(riskID)
	if err != nil {
		return err
	}
	if err = i.checkActor(actorID); err != nil {
		return err
	}
	pending, err := i.store.GetPending(riskID)
	if err != nil {
		return err
	}
	if pending == nil {
		return models.ErrInvalidState
	}

	riskDef, _ := models.GetDefinition(models.EntityTypeRisk)
	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		now := time.Now()
		updMap := map[string]interface{}{
			"resolution":        models.ClosureApproved,
			"decided_by_id":     actorID,
			"decision_comments": data.Comments,
			"decided_at":        now,
		}
		if err := store.Update(riskID, pending.ID, updMap); err != nil {
			return err
		}
		workflow := i.workflowIn(tx, riskDef)
		return workflow.CloseApproved(riskID, actorID, data.Comments)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка согласования закрытия риска")
		return err
	}
	logger.Info("закрытие риска согласовано")
	i.notifyRaiser(rec, func(raiser dbmodels.Person) {
		i.notifier.NotifyClosureDecision(raiser, *rec, true, data.Comments)
	})
	return nil
}

func (i impl) RejectClosure(riskID, actorID string, data entityapimodels.ClosureDecisionData) error {
	logger := i.getLogger(riskID).WithField("user_id", actorID)
	rec, err := i.getRisk(riskID)
	if err != nil {
		return err
	}
	if err = i.checkActor(actorID); err != nil {
		return err
	}
	pending, err := i.store.GetPending(riskID)
	if err != nil {
		return err
	}
	if pending == nil {
		return models.ErrInvalidState
	}

	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		entityStore := i.entityStoreIn(tx)
		logHandler := i.logsIn(tx)
		now := time.Now()
		updMap := map[string]interface{}{
			"resolution":        models.ClosureRejected,
			"decided_by_id":     actorID,
			"decision_comments": data.Comments,
			"decided_at":        now,
		}
		if err := store.Update(riskID, pending.ID, updMap); err != nil {
			return err
		}
		// статус возвращается к значению до запроса
		entityUpd := map[string]interface{}{
			"status":             pending.PriorStatus,
			"closure_resolution": models.ClosureRejected,
		}
		if err := entityStore.Update(models.EntityTypeRisk, riskID, entityUpd); err != nil {
			return err
		}
		return logHandler.AppendStatusChange(riskID, actorID, models.LogTypeClosureRejected, rec.Status, pending.PriorStatus, data.Comments)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отклонения закрытия риска")
		return err
	}
	logger.Info("закрытие риска отклонено")
	i.notifyRaiser(rec, func(raiser dbmodels.Person) {
		i.notifier.NotifyClosureDecision(raiser, *rec, false, data.Comments)
	})
	return nil
}

func (i impl) GetRequests(riskID string) ([]entityapimodels.ClosureRequestView, error) {
	_, err := i.getRisk(riskID)
	if err != nil {
		return nil, err
	}
	list, err := i.store.List(riskID)
	if err != nil {
		i.getLogger(riskID).WithError(err).Error("ошибка получения запросов на закрытие")
		return nil, err
	}
	result := make([]entityapimodels.ClosureRequestView, 0, len(list))
	for _, item := range list {
		result = append(result, entityapimodels.ClosureRequestConvert(item))
	}
	return result, nil
}

func (i impl) notifyRaiser(rec *dbmodels.WorkflowEntity, notify func(raiser dbmodels.Person)) {
	if i.notifier == nil || rec == nil {
		return
	}
	if rec.RaisedBy != nil {
		notify(*rec.RaisedBy)
		return
	}
	raiser, err := i.personStore.GetByID(rec.RaisedByID)
	if err != nil || raiser == nil {
		return
	}
	notify(*raiser)
}
