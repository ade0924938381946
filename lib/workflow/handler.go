package workflowhandler

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pm-tools-backend/db"
	entityloghandler "pm-tools-backend/lib/entity-log"
	"pm-tools-backend/lib/notification"
	personstore "pm-tools-backend/lib/person/store"
	projectstore "pm-tools-backend/lib/project/store"
	"pm-tools-backend/lib/utils/sequence"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

const numberGenAttempts = 3

type Provider interface {
	Create(actorID string, data entityapimodels.EntityCreateData) (item entityapimodels.EntityView, err error)
	GetByID(id string) (item entityapimodels.EntityView, err error)
	Update(id, actorID string, data entityapimodels.EntityUpdateData) (item entityapimodels.EntityView, err error)
	Delete(id string) error
	List(filter entityapimodels.EntityFilter) (list []entityapimodels.EntityView, rowCount int64, err error)
	AddComment(id, actorID string, data entityapimodels.CommentData) error
	Logs(id string) ([]entityapimodels.LogView, error)
	// CloseApproved - служебный перевод риска в Closed в обход проверки
	// согласования, вызывается только обработчиком закрытия рисков
	CloseApproved(id, actorID, comments string) error
}

var instances = map[models.EntityType]Provider{}

func NewHandlers() {
	for _, def := range models.Definitions() {
		instances[def.Type] = impl{
			def:          def,
			store:        entitystore.NewInstance(db.DB),
			personStore:  personstore.NewInstance(db.DB),
			projectStore: projectstore.NewInstance(db.DB),
			notifier:     notification.Instance,
		}
	}
}

func Instance(entityType models.EntityType) Provider {
	return instances[entityType]
}

// NewHandlerWithTx дает обработчик поверх открытой транзакции,
// уведомления в этом режиме не отправляются
func NewHandlerWithTx(tx *gorm.DB, def models.EntityDefinition) Provider {
	return impl{
		def:          def,
		store:        entitystore.NewInstance(tx),
		personStore:  personstore.NewInstance(tx),
		projectStore: projectstore.NewInstance(tx),
		tx:           tx,
	}
}

type impl struct {
	def          models.EntityDefinition
	store        entitystore.Provider
	personStore  personstore.Provider
	projectStore projectstore.Provider
	notifier     notification.Provider
	tx           *gorm.DB
	// подменяемые фабрики, в рабочей конфигурации остаются nil
	runTx    func(fn func(tx *gorm.DB) error) error
	newStore func(tx *gorm.DB) entitystore.Provider
	newLogs  func(tx *gorm.DB) entityloghandler.Provider
}

func (i impl) getLogger(id string) *log.Entry {
	return log.
		WithField("entity_type", i.def.Type).
		WithField("rec_id", id)
}

// transaction выполняет fn в новой транзакции либо переиспользует уже открытую
func (i impl) transaction(fn func(tx *gorm.DB) error) error {
	if i.runTx != nil {
		return i.runTx(fn)
	}
	if i.tx != nil {
		return fn(i.tx)
	}
	return db.DB.Transaction(fn)
}

func (i impl) storeIn(tx *gorm.DB) entitystore.Provider {
	if i.newStore != nil {
		return i.newStore(tx)
	}
	return entitystore.NewInstance(tx)
}

func (i impl) logsIn(tx *gorm.DB) entityloghandler.Provider {
	if i.newLogs != nil {
		return i.newLogs(tx)
	}
	return entityloghandler.NewHandlerWithTx(tx)
}

func (i impl) logs() entityloghandler.Provider {
	if i.newLogs != nil {
		return i.newLogs(i.tx)
	}
	if i.tx != nil {
		return entityloghandler.NewHandlerWithTx(i.tx)
	}
	return entityloghandler.Instance
}

func (i impl) checkDependency(actorID string, projectID, assigneeID string) error {
	actor, err := i.personStore.GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return errors.New("автор изменения не найден в справочнике сотрудников")
	}
	if projectID != "" {
		project, err := i.projectStore.GetByID(projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return errors.New("проект не найден")
		}
	}
	if assigneeID != "" {
		assignee, err := i.personStore.GetByID(assigneeID)
		if err != nil {
			return err
		}
		if assignee == nil {
			return errors.New("ответственный не найден в справочнике сотрудников")
		}
	}
	return nil
}

func (i impl) Create(actorID string, data entityapimodels.EntityCreateData) (entityapimodels.EntityView, error) {
	logger := i.getLogger("")
	err := i.checkDependency(actorID, data.ProjectID, data.AssigneeID)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}
	status := i.def.DefaultStatus
	if data.Status != "" {
		status = data.Status
	}
	rec := dbmodels.WorkflowEntity{
		EntityType:  i.def.Type,
		Number:      data.Number,
		Title:       data.Title,
		Description: data.Description,
		Status:      status,
		Priority:    data.Priority,
		ProjectID:   data.ProjectID,
		RaisedByID:  actorID,
		RaisedAt:    time.Now(),
	}
	if data.AssigneeID != "" {
		rec.AssigneeID = &data.AssigneeID
	}
	if i.def.Type == models.EntityTypeRisk {
		rec.Probability = data.Probability
		rec.Impact = data.Impact
		rec.Score = models.RiskScore(data.Probability, data.Impact)
	}

	var id string
	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		logHandler := i.logsIn(tx)
		id, err = i.createWithNumber(store, rec)
		if err != nil {
			return err
		}
		newStatus := status
		return logHandler.Append(dbmodels.EntityLog{
			EntityID:   id,
			LoggedByID: &actorID,
			LogType:    models.LogTypeCreated,
			NewStatus:  &newStatus,
			Comments:   "Created",
		})
	})
	if err != nil {
		if !errors.Is(err, models.ErrDuplicateNumber) {
			logger.
				WithField("request", fmt.Sprintf("%+v", data)).
				WithError(err).
				Error("ошибка создания записи")
		}
		return entityapimodels.EntityView{}, err
	}
	logger.WithField("rec_id", id).Info("создана запись")

	created, err := i.store.GetByID(i.def.Type, id)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}
	if created == nil {
		return entityapimodels.EntityView{}, models.ErrNotFound
	}
	i.notifyAssignment(*created)
	return entityapimodels.EntityConvert(*created), nil
}

// createWithNumber сохраняет запись, генерируя номер при его отсутствии.
// Номер от клиента не перегенерируется - коллизия возвращается вызывающему.
func (i impl) createWithNumber(store entitystore.Provider, rec dbmodels.WorkflowEntity) (id string, err error) {
	if rec.Number != "" {
		return store.Create(rec)
	}
	for attempt := 0; attempt < numberGenAttempts; attempt++ {
		rec.Number = sequence.Next(i.def.NumberPrefix)
		id, err = store.Create(rec)
		if !errors.Is(err, models.ErrDuplicateNumber) {
			return id, err
		}
	}
	rec.Number = sequence.NextUnique(i.def.NumberPrefix)
	return store.Create(rec)
}

func (i impl) getRec(id string) (*dbmodels.WorkflowEntity, error) {
	rec, err := i.store.GetByID(i.def.Type, id)
	if err != nil {
		i.getLogger(id).WithError(err).Error("ошибка получения записи")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (i impl) GetByID(id string) (entityapimodels.EntityView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}
	return entityapimodels.EntityConvert(*rec), nil
}

func (i impl) Update(id, actorID string, data entityapimodels.EntityUpdateData) (entityapimodels.EntityView, error) {
	logger := i.getLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}
	assigneeID := ""
	if data.AssigneeID != nil {
		assigneeID = *data.AssigneeID
	}
	err = i.checkDependency(actorID, "", assigneeID)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}

	statusChanged := data.Status != nil && *data.Status != rec.Status
	if statusChanged && i.def.Type == models.EntityTypeRisk && *data.Status == models.EntityStatusClosed {
		if rec.ClosureResolution != models.ClosureApproved {
			logger.Warn("отклонена попытка закрыть риск без согласования")
			return entityapimodels.EntityView{}, models.ErrClosureNotAuthorized
		}
	}

	updMap, changes := i.buildUpdate(rec, data)
	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		logHandler := i.logsIn(tx)
		if err := store.Update(i.def.Type, id, updMap); err != nil {
			return err
		}
		if statusChanged {
			comment := data.Comment
			if comment == "" {
				comment = fmt.Sprintf("Status changed from %s to %s", rec.Status, *data.Status)
			}
			if err := logHandler.AppendStatusChange(id, actorID, models.LogTypeStatusChange, rec.Status, *data.Status, comment); err != nil {
				return err
			}
		}
		if len(changes) > 0 {
			actor := actorID
			if err := logHandler.Append(dbmodels.EntityLog{
				EntityID:   id,
				LoggedByID: &actor,
				LogType:    models.LogTypeUpdated,
				Changes: dbmodels.EntityChanges{
					Data: changes,
				},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления записи")
		return entityapimodels.EntityView{}, err
	}
	logger.Info("обновлена запись")

	updated, err := i.getRec(id)
	if err != nil {
		return entityapimodels.EntityView{}, err
	}
	if data.AssigneeID != nil && (rec.AssigneeID == nil || *rec.AssigneeID != *data.AssigneeID) {
		i.notifyAssignment(*updated)
	}
	return entityapimodels.EntityConvert(*updated), nil
}

// buildUpdate собирает карту изменяемых полей и список изменений для журнала,
// смена статуса журналируется отдельной записью и в список не попадает
func (i impl) buildUpdate(rec *dbmodels.WorkflowEntity, data entityapimodels.EntityUpdateData) (map[string]interface{}, []dbmodels.FieldChanges) {
	updMap := map[string]interface{}{}
	changes := []dbmodels.FieldChanges{}
	addChange := func(field string, oldValue, newValue any) {
		changes = append(changes, dbmodels.FieldChanges{
			Field:    field,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}
	if data.Status != nil && *data.Status != rec.Status {
		updMap["status"] = *data.Status
	}
	if data.Title != nil && *data.Title != rec.Title {
		updMap["title"] = *data.Title
		addChange("title", rec.Title, *data.Title)
	}
	if data.Description != nil && *data.Description != rec.Description {
		updMap["description"] = *data.Description
		addChange("description", rec.Description, *data.Description)
	}
	if data.Priority != nil && *data.Priority != rec.Priority {
		updMap["priority"] = *data.Priority
		addChange("priority", rec.Priority, *data.Priority)
	}
	if data.AssigneeID != nil {
		oldValue := ""
		if rec.AssigneeID != nil {
			oldValue = *rec.AssigneeID
		}
		if oldValue != *data.AssigneeID {
			updMap["assignee_id"] = *data.AssigneeID
			addChange("assignee_id", oldValue, *data.AssigneeID)
		}
	}
	if i.def.Type == models.EntityTypeRisk && (data.Probability != nil || data.Impact != nil) {
		probability := rec.Probability
		impact := rec.Impact
		if data.Probability != nil && *data.Probability != rec.Probability {
			probability = *data.Probability
			updMap["probability"] = probability
			addChange("probability", rec.Probability, probability)
		}
		if data.Impact != nil && *data.Impact != rec.Impact {
			impact = *data.Impact
			updMap["impact"] = impact
			addChange("impact", rec.Impact, impact)
		}
		score := models.RiskScore(probability, impact)
		if score != rec.Score {
			updMap["score"] = score
		}
	}
	return updMap, changes
}

func (i impl) Delete(id string) error {
	logger := i.getLogger(id)
	_, err := i.getRec(id)
	if err != nil {
		return err
	}
	err = i.store.Delete(i.def.Type, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления записи")
		return err
	}
	logger.Info("удалена запись")
	return nil
}

func (i impl) List(filter entityapimodels.EntityFilter) (list []entityapimodels.EntityView, rowCount int64, err error) {
	logger := i.getLogger("")
	rowCount, err = i.store.ListCount(i.def.Type, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []entityapimodels.EntityView{}, rowCount, nil
	}

	recList, err := i.store.List(i.def.Type, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка записей")
		return nil, 0, err
	}
	result := make([]entityapimodels.EntityView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, entityapimodels.EntityConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) AddComment(id, actorID string, data entityapimodels.CommentData) error {
	_, err := i.getRec(id)
	if err != nil {
		return err
	}
	err = i.checkDependency(actorID, "", "")
	if err != nil {
		return err
	}
	return i.logs().Append(dbmodels.EntityLog{
		EntityID:   id,
		LoggedByID: &actorID,
		LogType:    models.LogTypeComment,
		Comments:   data.Comment,
	})
}

func (i impl) Logs(id string) ([]entityapimodels.LogView, error) {
	_, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	return i.logs().List(id)
}

func (i impl) CloseApproved(id, actorID, comments string) error {
	logger := i.getLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if comments == "" {
		comments = fmt.Sprintf("Status changed from %s to %s", rec.Status, models.EntityStatusClosed)
	}
	err = i.transaction(func(tx *gorm.DB) error {
		store := i.storeIn(tx)
		logHandler := i.logsIn(tx)
		updMap := map[string]interface{}{
			"status":             models.EntityStatusClosed,
			"closure_resolution": models.ClosureApproved,
		}
		if err := store.Update(i.def.Type, id, updMap); err != nil {
			return err
		}
		return logHandler.AppendStatusChange(id, actorID, models.LogTypeClosureApproved, rec.Status, models.EntityStatusClosed, comments)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка закрытия риска")
		return err
	}
	logger.Info("риск закрыт по согласованию")
	return nil
}

func (i impl) notifyAssignment(rec dbmodels.WorkflowEntity) {
	if i.notifier == nil || rec.Assignee == nil {
		return
	}
	i.notifier.NotifyAssignment(*rec.Assignee, rec)
}
