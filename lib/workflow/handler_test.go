package workflowhandler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	entityloghandler "pm-tools-backend/lib/entity-log"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

var errTest = errors.New("ошибка хранилища")

type fakeEntityStore struct {
	recs          map[string]*dbmodels.WorkflowEntity
	createErrs    []error
	createdNums   []string
	deletedIDs    []string
	updates       []map[string]interface{}
	updateErr     error
	getByIDNil    bool
	listResult    []dbmodels.WorkflowEntity
	listCount     int64
	lastCreateRec dbmodels.WorkflowEntity
}

func (f *fakeEntityStore) Create(rec dbmodels.WorkflowEntity) (string, error) {
	f.createdNums = append(f.createdNums, rec.Number)
	f.lastCreateRec = rec
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return "", err
		}
	}
	if f.recs == nil {
		f.recs = map[string]*dbmodels.WorkflowEntity{}
	}
	stored := rec
	stored.ID = "new-id"
	f.recs[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeEntityStore) GetByID(entityType models.EntityType, id string) (*dbmodels.WorkflowEntity, error) {
	if f.getByIDNil {
		return nil, nil
	}
	return f.recs[id], nil
}

func (f *fakeEntityStore) GetByNumber(entityType models.EntityType, number string) (*dbmodels.WorkflowEntity, error) {
	for _, rec := range f.recs {
		if rec.Number == number {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeEntityStore) Update(entityType models.EntityType, id string, updMap map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updMap)
	rec, ok := f.recs[id]
	if !ok {
		return nil
	}
	if v, ok := updMap["status"]; ok {
		rec.Status = v.(models.EntityStatus)
	}
	if v, ok := updMap["title"]; ok {
		rec.Title = v.(string)
	}
	if v, ok := updMap["closure_resolution"]; ok {
		rec.ClosureResolution = v.(models.ClosureResolution)
	}
	if v, ok := updMap["probability"]; ok {
		rec.Probability = v.(models.RiskGrade)
	}
	if v, ok := updMap["impact"]; ok {
		rec.Impact = v.(models.RiskGrade)
	}
	if v, ok := updMap["score"]; ok {
		rec.Score = v.(int)
	}
	return nil
}

func (f *fakeEntityStore) Delete(entityType models.EntityType, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeEntityStore) List(entityType models.EntityType, filter entityapimodels.EntityFilter) ([]dbmodels.WorkflowEntity, error) {
	return f.listResult, nil
}

func (f *fakeEntityStore) ListCount(entityType models.EntityType, filter entityapimodels.EntityFilter) (int64, error) {
	return f.listCount, nil
}

type fakePersonStore struct {
	recs map[string]*dbmodels.Person
}

func (f *fakePersonStore) Create(rec dbmodels.Person) (string, error) { return rec.ID, nil }
func (f *fakePersonStore) GetByID(id string) (*dbmodels.Person, error) {
	return f.recs[id], nil
}
func (f *fakePersonStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakePersonStore) Delete(id string) error                                { return nil }
func (f *fakePersonStore) List(activeOnly bool, search string) ([]dbmodels.Person, error) {
	return nil, nil
}
func (f *fakePersonStore) HasReferences(id string) (bool, error) { return false, nil }

type fakeProjectStore struct {
	recs map[string]*dbmodels.Project
}

func (f *fakeProjectStore) Create(rec dbmodels.Project) (string, error) { return rec.ID, nil }
func (f *fakeProjectStore) GetByID(id string) (*dbmodels.Project, error) {
	return f.recs[id], nil
}
func (f *fakeProjectStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeProjectStore) Delete(id string) error                                { return nil }
func (f *fakeProjectStore) List(activeOnly bool) ([]dbmodels.Project, error)      { return nil, nil }
func (f *fakeProjectStore) HasReferences(id string) (bool, error)                 { return false, nil }

type fakeLogHandler struct {
	entries   []dbmodels.EntityLog
	appendErr error
}

func (f *fakeLogHandler) List(entityID string) ([]entityapimodels.LogView, error) {
	result := make([]entityapimodels.LogView, 0, len(f.entries))
	for _, entry := range f.entries {
		result = append(result, entityapimodels.LogConvert(entry))
	}
	return result, nil
}

func (f *fakeLogHandler) Append(entry dbmodels.EntityLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogHandler) AppendStatusChange(entityID, actorID string, logType models.LogType, prevStatus, newStatus models.EntityStatus, comments string) error {
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
	return f.Append(entry)
}

func riskDef(t *testing.T) models.EntityDefinition {
	def, ok := models.GetDefinition(models.EntityTypeRisk)
	require.True(t, ok)
	return def
}

func newTestImpl(def models.EntityDefinition, store *fakeEntityStore) impl {
	handler, _ := newTestHandler(def, store)
	return handler
}

func newTestHandler(def models.EntityDefinition, store *fakeEntityStore) (impl, *fakeLogHandler) {
	logs := &fakeLogHandler{}
	handler := impl{
		def:   def,
		store: store,
		personStore: &fakePersonStore{recs: map[string]*dbmodels.Person{
			"actor": {BaseModel: dbmodels.BaseModel{ID: "actor"}, FirstName: "Петр"},
		}},
		projectStore: &fakeProjectStore{recs: map[string]*dbmodels.Project{
			"prj": {BaseModel: dbmodels.BaseModel{ID: "prj"}, Code: "GEN"},
		}},
		runTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		newStore: func(tx *gorm.DB) entitystore.Provider {
			return store
		},
		newLogs: func(tx *gorm.DB) entityloghandler.Provider {
			return logs
		},
	}
	return handler, logs
}

func TestCreateWithNumber(t *testing.T) {
	def := riskDef(t)

	t.Run(`номер клиента не перегенерируется`, func(t *testing.T) {
		store := &fakeEntityStore{createErrs: []error{models.ErrDuplicateNumber}}
		handler := newTestImpl(def, store)
		_, err := handler.createWithNumber(store, dbmodels.WorkflowEntity{Number: "RISK-42"})
		require.ErrorIs(t, err, models.ErrDuplicateNumber)
		require.Equal(t, []string{"RISK-42"}, store.createdNums)
	})

	t.Run(`генерация с повтором при коллизии`, func(t *testing.T) {
		store := &fakeEntityStore{createErrs: []error{models.ErrDuplicateNumber, nil}}
		handler := newTestImpl(def, store)
		id, err := handler.createWithNumber(store, dbmodels.WorkflowEntity{})
		require.Nil(t, err)
		require.Equal(t, "new-id", id)
		require.Len(t, store.createdNums, 2)
		for _, number := range store.createdNums {
			require.True(t, strings.HasPrefix(number, "RISK-"))
		}
	})

	t.Run(`после исчерпания попыток берется уникальный суффикс`, func(t *testing.T) {
		store := &fakeEntityStore{createErrs: []error{
			models.ErrDuplicateNumber, models.ErrDuplicateNumber, models.ErrDuplicateNumber, nil,
		}}
		handler := newTestImpl(def, store)
		_, err := handler.createWithNumber(store, dbmodels.WorkflowEntity{})
		require.Nil(t, err)
		require.Len(t, store.createdNums, numberGenAttempts+1)
		last := store.createdNums[len(store.createdNums)-1]
		require.Len(t, strings.Split(last, "-"), 3)
	})
}

func TestCreate(t *testing.T) {
	def := riskDef(t)
	payload := entityapimodels.EntityCreateData{
		Title:       "задержка поставки",
		Description: "поставщик сорвал сроки",
		ProjectID:   "prj",
		Probability: models.RiskGradeHigh,
		Impact:      models.RiskGradeHigh,
	}

	t.Run(`создание пишет запись и строку журнала`, func(t *testing.T) {
		store := &fakeEntityStore{}
		handler, logs := newTestHandler(def, store)
		view, err := handler.Create("actor", payload)
		require.Nil(t, err)
		require.True(t, strings.HasPrefix(view.Number, "RISK-"))
		require.Equal(t, models.RiskStatusIdentified, view.Status)
		require.Equal(t, 16, view.Score)

		require.Len(t, logs.entries, 1)
		entry := logs.entries[0]
		require.Equal(t, models.LogTypeCreated, entry.LogType)
		require.Equal(t, "new-id", entry.EntityID)
		require.NotNil(t, entry.NewStatus)
		require.Equal(t, models.RiskStatusIdentified, *entry.NewStatus)
		require.Equal(t, "actor", *entry.LoggedByID)
	})

	t.Run(`недоступная после создания запись не выдается как успех`, func(t *testing.T) {
		store := &fakeEntityStore{getByIDNil: true}
		handler, _ := newTestHandler(def, store)
		_, err := handler.Create("actor", payload)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`ошибка журнала отменяет создание`, func(t *testing.T) {
		store := &fakeEntityStore{}
		handler, logs := newTestHandler(def, store)
		logs.appendErr = errTest
		_, err := handler.Create("actor", payload)
		require.ErrorIs(t, err, errTest)
		require.Empty(t, logs.entries)
	})
}

func TestUpdateStatusChange(t *testing.T) {
	def := riskDef(t)

	newRiskStore := func(status models.EntityStatus) *fakeEntityStore {
		return &fakeEntityStore{recs: map[string]*dbmodels.WorkflowEntity{
			"r1": {
				BaseModel:  dbmodels.BaseModel{ID: "r1"},
				EntityType: models.EntityTypeRisk,
				Number:     "RISK-1",
				Status:     status,
			},
		}}
	}

	t.Run(`смена статуса журналируется с комментарием по умолчанию`, func(t *testing.T) {
		store := newRiskStore(models.RiskStatusIdentified)
		handler, logs := newTestHandler(def, store)
		status := models.RiskStatusAssessed
		view, err := handler.Update("r1", "actor", entityapimodels.EntityUpdateData{Status: &status})
		require.Nil(t, err)
		require.Equal(t, models.RiskStatusAssessed, view.Status)

		require.Len(t, logs.entries, 1)
		entry := logs.entries[0]
		require.Equal(t, models.LogTypeStatusChange, entry.LogType)
		require.Equal(t, models.RiskStatusIdentified, *entry.PrevStatus)
		require.Equal(t, models.RiskStatusAssessed, *entry.NewStatus)
		expected := fmt.Sprintf("Status changed from %s to %s", models.RiskStatusIdentified, models.RiskStatusAssessed)
		require.Equal(t, expected, entry.Comments)
	})

	t.Run(`изменение полей пишет отдельную строку с изменениями`, func(t *testing.T) {
		store := newRiskStore(models.RiskStatusIdentified)
		handler, logs := newTestHandler(def, store)
		title := "уточненный заголовок"
		_, err := handler.Update("r1", "actor", entityapimodels.EntityUpdateData{Title: &title})
		require.Nil(t, err)

		require.Len(t, logs.entries, 1)
		entry := logs.entries[0]
		require.Equal(t, models.LogTypeUpdated, entry.LogType)
		require.Len(t, entry.Changes.Data, 1)
		require.Equal(t, "title", entry.Changes.Data[0].Field)
		require.Equal(t, "уточненный заголовок", store.recs["r1"].Title)
	})

	t.Run(`ошибка записи отменяет обновление`, func(t *testing.T) {
		store := newRiskStore(models.RiskStatusIdentified)
		store.updateErr = errTest
		handler, logs := newTestHandler(def, store)
		status := models.RiskStatusAssessed
		_, err := handler.Update("r1", "actor", entityapimodels.EntityUpdateData{Status: &status})
		require.ErrorIs(t, err, errTest)
		require.Empty(t, logs.entries)
	})
}

func TestCloseApproved(t *testing.T) {
	def := riskDef(t)
	store := &fakeEntityStore{recs: map[string]*dbmodels.WorkflowEntity{
		"r1": {
			BaseModel:  dbmodels.BaseModel{ID: "r1"},
			EntityType: models.EntityTypeRisk,
			Status:     models.RiskStatusPendingApproval,
		},
	}}
	handler, logs := newTestHandler(def, store)

	require.Nil(t, handler.CloseApproved("r1", "actor", "риск устранен"))
	require.Equal(t, models.EntityStatusClosed, store.recs["r1"].Status)
	require.Equal(t, models.ClosureApproved, store.recs["r1"].ClosureResolution)

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	require.Equal(t, models.LogTypeClosureApproved, entry.LogType)
	require.Equal(t, models.RiskStatusPendingApproval, *entry.PrevStatus)
	require.Equal(t, models.EntityStatusClosed, *entry.NewStatus)
	require.Equal(t, "риск устранен", entry.Comments)
}

func TestUpdateClosureGate(t *testing.T) {
	def := riskDef(t)

	t.Run(`закрытие без согласования отклоняется`, func(t *testing.T) {
		store := &fakeEntityStore{recs: map[string]*dbmodels.WorkflowEntity{
			"r1": {
				BaseModel:  dbmodels.BaseModel{ID: "r1"},
				EntityType: models.EntityTypeRisk,
				Status:     models.RiskStatusMitigated,
			},
		}}
		handler := newTestImpl(def, store)
		closed := models.EntityStatusClosed
		_, err := handler.Update("r1", "actor", entityapimodels.EntityUpdateData{Status: &closed})
		require.ErrorIs(t, err, models.ErrClosureNotAuthorized)
	})

	t.Run(`для остальных типов гейт не действует на уровне buildUpdate`, func(t *testing.T) {
		issueDef, ok := models.GetDefinition(models.EntityTypeIssue)
		require.True(t, ok)
		store := &fakeEntityStore{}
		handler := newTestImpl(issueDef, store)
		closed := models.EntityStatusClosed
		rec := &dbmodels.WorkflowEntity{
			BaseModel:  dbmodels.BaseModel{ID: "i1"},
			EntityType: models.EntityTypeIssue,
			Status:     models.IssueStatusResolved,
		}
		updMap, changes := handler.buildUpdate(rec, entityapimodels.EntityUpdateData{Status: &closed})
		require.Equal(t, closed, updMap["status"])
		require.Empty(t, changes)
	})

	t.Run(`запись не найдена`, func(t *testing.T) {
		store := &fakeEntityStore{}
		handler := newTestImpl(def, store)
		closed := models.EntityStatusClosed
		_, err := handler.Update("missing", "actor", entityapimodels.EntityUpdateData{Status: &closed})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestBuildUpdate(t *testing.T) {
	def := riskDef(t)
	store := &fakeEntityStore{}
	handler := newTestImpl(def, store)

	t.Run(`смена статуса не попадает в список изменений`, func(t *testing.T) {
		rec := &dbmodels.WorkflowEntity{Status: models.RiskStatusIdentified, Title: "старый"}
		status := models.RiskStatusAssessed
		title := "новый"
		updMap, changes := handler.buildUpdate(rec, entityapimodels.EntityUpdateData{
			Status: &status,
			Title:  &title,
		})
		require.Equal(t, status, updMap["status"])
		require.Equal(t, title, updMap["title"])
		require.Len(t, changes, 1)
		require.Equal(t, "title", changes[0].Field)
		require.Equal(t, "старый", changes[0].OldValue)
		require.Equal(t, "новый", changes[0].NewValue)
	})

	t.Run(`пересчет оценки при смене градаций`, func(t *testing.T) {
		rec := &dbmodels.WorkflowEntity{
			Status:      models.RiskStatusAssessed,
			Probability: models.RiskGradeLow,
			Impact:      models.RiskGradeLow,
			Score:       4,
		}
		probability := models.RiskGradeVeryHigh
		updMap, changes := handler.buildUpdate(rec, entityapimodels.EntityUpdateData{Probability: &probability})
		require.Equal(t, probability, updMap["probability"])
		require.Equal(t, 10, updMap["score"])
		require.Len(t, changes, 1)
	})

	t.Run(`совпадающие значения не изменяются`, func(t *testing.T) {
		rec := &dbmodels.WorkflowEntity{Status: models.RiskStatusAssessed, Title: "прежний"}
		title := "прежний"
		status := models.RiskStatusAssessed
		updMap, changes := handler.buildUpdate(rec, entityapimodels.EntityUpdateData{
			Title:  &title,
			Status: &status,
		})
		require.Empty(t, updMap)
		require.Empty(t, changes)
	})
}

func TestList(t *testing.T) {
	def := riskDef(t)

	t.Run(`страница за пределами выборки`, func(t *testing.T) {
		store := &fakeEntityStore{listCount: 5}
		handler := newTestImpl(def, store)
		list, rowCount, err := handler.List(entityapimodels.EntityFilter{
			Pagination: apimodels.Pagination{Page: 2, Limit: 20},
		})
		require.Nil(t, err)
		require.Equal(t, int64(5), rowCount)
		require.Empty(t, list)
	})

	t.Run(`конвертация записей`, func(t *testing.T) {
		store := &fakeEntityStore{
			listCount: 1,
			listResult: []dbmodels.WorkflowEntity{
				{
					BaseModel:   dbmodels.BaseModel{ID: "r1"},
					EntityType:  models.EntityTypeRisk,
					Number:      "RISK-1",
					Status:      models.RiskStatusIdentified,
					Probability: models.RiskGradeHigh,
					Impact:      models.RiskGradeVeryHigh,
					Score:       20,
				},
			},
		}
		handler := newTestImpl(def, store)
		list, rowCount, err := handler.List(entityapimodels.EntityFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
		require.Equal(t, "RISK-1", list[0].Number)
		require.Equal(t, models.RiskBandHigh, list[0].ScoreBand)
	})
}

func TestDelete(t *testing.T) {
	def := riskDef(t)
	store := &fakeEntityStore{recs: map[string]*dbmodels.WorkflowEntity{
		"r1": {BaseModel: dbmodels.BaseModel{ID: "r1"}},
	}}
	handler := newTestImpl(def, store)

	require.ErrorIs(t, handler.Delete("missing"), models.ErrNotFound)
	require.Nil(t, handler.Delete("r1"))
	require.Equal(t, []string{"r1"}, store.deletedIDs)
}

func TestCheckDependency(t *testing.T) {
	def := riskDef(t)
	store := &fakeEntityStore{}
	handler := newTestImpl(def, store)

	t.Run(`известные участники проходят проверку`, func(t *testing.T) {
		require.Nil(t, handler.checkDependency("actor", "prj", "actor"))
	})

	t.Run(`неизвестный автор`, func(t *testing.T) {
		err := handler.checkDependency("ghost", "prj", "")
		require.NotNil(t, err)
	})

	t.Run(`неизвестный проект`, func(t *testing.T) {
		err := handler.checkDependency("actor", "missing", "")
		require.NotNil(t, err)
	})

	t.Run(`неизвестный ответственный`, func(t *testing.T) {
		err := handler.checkDependency("actor", "prj", "ghost")
		require.NotNil(t, err)
	})
}
