package riskclosurehandler

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	entityloghandler "pm-tools-backend/lib/entity-log"
	closurestore "pm-tools-backend/lib/risk-closure/store"
	workflowhandler "pm-tools-backend/lib/workflow"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

var errTest = errors.New("ошибка хранилища")

type fakeClosureStore struct {
	pending    *dbmodels.ClosureRequest
	list       []dbmodels.ClosureRequest
	created    []dbmodels.ClosureRequest
	lastUpdMap map[string]interface{}
}

func (f *fakeClosureStore) Create(rec dbmodels.ClosureRequest) (string, error) {
	rec.ID = fmt.Sprintf("req-%d", len(f.created)+1)
	f.created = append(f.created, rec)
	stored := rec
	f.pending = &stored
	return rec.ID, nil
}
func (f *fakeClosureStore) GetPending(entityID string) (*dbmodels.ClosureRequest, error) {
	return f.pending, nil
}
func (f *fakeClosureStore) Update(entityID, id string, updMap map[string]interface{}) error {
	f.lastUpdMap = updMap
	if res, ok := updMap["resolution"]; ok && res != models.ClosurePending {
		f.pending = nil
	}
	return nil
}
func (f *fakeClosureStore) List(entityID string) ([]dbmodels.ClosureRequest, error) {
	return f.list, nil
}

type fakeRiskStore struct {
	recs      map[string]*dbmodels.WorkflowEntity
	updateErr error
}

func (f *fakeRiskStore) Create(rec dbmodels.WorkflowEntity) (string, error) { return rec.ID, nil }
func (f *fakeRiskStore) GetByID(entityType models.EntityType, id string) (*dbmodels.WorkflowEntity, error) {
	return f.recs[id], nil
}
func (f *fakeRiskStore) GetByNumber(entityType models.EntityType, number string) (*dbmodels.WorkflowEntity, error) {
	return nil, nil
}
func (f *fakeRiskStore) Update(entityType models.EntityType, id string, updMap map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	rec, ok := f.recs[id]
	if !ok {
		return nil
	}
	if v, ok := updMap["status"]; ok {
		rec.Status = v.(models.EntityStatus)
	}
	if v, ok := updMap["closure_resolution"]; ok {
		rec.ClosureResolution = v.(models.ClosureResolution)
	}
	return nil
}
func (f *fakeRiskStore) Delete(entityType models.EntityType, id string) error { return nil }
func (f *fakeRiskStore) List(entityType models.EntityType, filter entityapimodels.EntityFilter) ([]dbmodels.WorkflowEntity, error) {
	return nil, nil
}
func (f *fakeRiskStore) ListCount(entityType models.EntityType, filter entityapimodels.EntityFilter) (int64, error) {
	return 0, nil
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

// fakeWorkflow перехватывает служебное закрытие риска
type fakeWorkflow struct {
	risks  *fakeRiskStore
	logs   *fakeLogHandler
	closed []string
}

func (f *fakeWorkflow) Create(actorID string, data entityapimodels.EntityCreateData) (entityapimodels.EntityView, error) {
	return entityapimodels.EntityView{}, nil
}
func (f *fakeWorkflow) GetByID(id string) (entityapimodels.EntityView, error) {
	return entityapimodels.EntityView{}, nil
}
func (f *fakeWorkflow) Update(id, actorID string, data entityapimodels.EntityUpdateData) (entityapimodels.EntityView, error) {
	return entityapimodels.EntityView{}, nil
}
func (f *fakeWorkflow) Delete(id string) error { return nil }
func (f *fakeWorkflow) List(filter entityapimodels.EntityFilter) ([]entityapimodels.EntityView, int64, error) {
	return nil, 0, nil
}
func (f *fakeWorkflow) AddComment(id, actorID string, data entityapimodels.CommentData) error {
	return nil
}
func (f *fakeWorkflow) Logs(id string) ([]entityapimodels.LogView, error) { return nil, nil }

func (f *fakeWorkflow) CloseApproved(id, actorID, comments string) error {
	f.closed = append(f.closed, id)
	rec, ok := f.risks.recs[id]
	if !ok {
		return models.ErrNotFound
	}
	prevStatus := rec.Status
	rec.Status = models.EntityStatusClosed
	rec.ClosureResolution = models.ClosureApproved
	return f.logs.AppendStatusChange(id, actorID, models.LogTypeClosureApproved, prevStatus, models.EntityStatusClosed, comments)
}

type testEnv struct {
	handler  impl
	requests *fakeClosureStore
	risks    *fakeRiskStore
	logs     *fakeLogHandler
	workflow *fakeWorkflow
}

func newTestEnv(riskStatus models.EntityStatus, pending *dbmodels.ClosureRequest) testEnv {
	requests := &fakeClosureStore{pending: pending}
	risks := &fakeRiskStore{recs: map[string]*dbmodels.WorkflowEntity{
		"r1": {
			BaseModel:  dbmodels.BaseModel{ID: "r1"},
			EntityType: models.EntityTypeRisk,
			Status:     riskStatus,
		},
	}}
	logs := &fakeLogHandler{}
	workflow := &fakeWorkflow{risks: risks, logs: logs}
	handler := impl{
		store:       requests,
		entityStore: risks,
		personStore: &fakePersonStore{recs: map[string]*dbmodels.Person{
			"actor": {BaseModel: dbmodels.BaseModel{ID: "actor"}},
		}},
		runTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		newStore: func(tx *gorm.DB) closurestore.Provider {
			return requests
		},
		newEntityStore: func(tx *gorm.DB) entitystore.Provider {
			return risks
		},
		newLogs: func(tx *gorm.DB) entityloghandler.Provider {
			return logs
		},
		newWorkflow: func(tx *gorm.DB, def models.EntityDefinition) workflowhandler.Provider {
			return workflow
		},
	}
	return testEnv{
		handler:  handler,
		requests: requests,
		risks:    risks,
		logs:     logs,
		workflow: workflow,
	}
}

func newTestImpl(riskStatus models.EntityStatus, pending *dbmodels.ClosureRequest) impl {
	return newTestEnv(riskStatus, pending).handler
}

func TestRequestClosure(t *testing.T) {
	payload := entityapimodels.ClosureRequestData{Justification: "риск устранен"}

	t.Run(`запрос создает заявку, меняет статус и пишет журнал`, func(t *testing.T) {
		env := newTestEnv(models.RiskStatusMitigated, nil)
		err := env.handler.RequestClosure("r1", "actor", payload)
		require.Nil(t, err)

		require.Len(t, env.requests.created, 1)
		request := env.requests.created[0]
		require.Equal(t, "r1", request.EntityID)
		require.Equal(t, models.ClosurePending, request.Resolution)
		require.Equal(t, models.RiskStatusMitigated, request.PriorStatus)

		require.Equal(t, models.RiskStatusPendingApproval, env.risks.recs["r1"].Status)
		require.Equal(t, models.ClosurePending, env.risks.recs["r1"].ClosureResolution)

		require.Len(t, env.logs.entries, 1)
		entry := env.logs.entries[0]
		require.Equal(t, models.LogTypeClosureRequested, entry.LogType)
		require.Equal(t, models.RiskStatusMitigated, *entry.PrevStatus)
		require.Equal(t, models.RiskStatusPendingApproval, *entry.NewStatus)
		require.Equal(t, "риск устранен", entry.Comments)
	})

	t.Run(`ошибка обновления риска отменяет запрос`, func(t *testing.T) {
		env := newTestEnv(models.RiskStatusMitigated, nil)
		env.risks.updateErr = errTest
		err := env.handler.RequestClosure("r1", "actor", payload)
		require.ErrorIs(t, err, errTest)
		require.Empty(t, env.logs.entries)
	})

	t.Run(`риск не найден`, func(t *testing.T) {
		handler := newTestImpl(models.RiskStatusMitigated, nil)
		err := handler.RequestClosure("missing", "actor", payload)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`неизвестный автор`, func(t *testing.T) {
		handler := newTestImpl(models.RiskStatusMitigated, nil)
		err := handler.RequestClosure("r1", "ghost", payload)
		require.NotNil(t, err)
		require.NotErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`закрытый риск не принимает запрос`, func(t *testing.T) {
		handler := newTestImpl(models.EntityStatusClosed, nil)
		err := handler.RequestClosure("r1", "actor", payload)
		require.ErrorIs(t, err, models.ErrInvalidState)
	})

	t.Run(`повторный запрос при активном отклоняется`, func(t *testing.T) {
		pending := &dbmodels.ClosureRequest{
			BaseModel:   dbmodels.BaseModel{ID: "req-0"},
			EntityID:    "r1",
			Resolution:  models.ClosurePending,
			PriorStatus: models.RiskStatusMitigated,
		}
		handler := newTestImpl(models.RiskStatusPendingApproval, pending)
		err := handler.RequestClosure("r1", "actor", payload)
		require.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestClosureDecisions(t *testing.T) {
	payload := entityapimodels.ClosureDecisionData{Comments: "ок"}

	newPending := func() *dbmodels.ClosureRequest {
		return &dbmodels.ClosureRequest{
			BaseModel:   dbmodels.BaseModel{ID: "req-0"},
			EntityID:    "r1",
			Resolution:  models.ClosurePending,
			PriorStatus: models.RiskStatusMitigated,
		}
	}

	t.Run(`согласование закрывает риск`, func(t *testing.T) {
		env := newTestEnv(models.RiskStatusPendingApproval, newPending())
		err := env.handler.ApproveClosure("r1", "actor", payload)
		require.Nil(t, err)

		require.Equal(t, models.ClosureApproved, env.requests.lastUpdMap["resolution"])
		require.Equal(t, "actor", env.requests.lastUpdMap["decided_by_id"])
		require.Equal(t, []string{"r1"}, env.workflow.closed)
		require.Equal(t, models.EntityStatusClosed, env.risks.recs["r1"].Status)

		require.Len(t, env.logs.entries, 1)
		entry := env.logs.entries[0]
		require.Equal(t, models.LogTypeClosureApproved, entry.LogType)
		require.Equal(t, models.EntityStatusClosed, *entry.NewStatus)
	})

	t.Run(`отклонение возвращает статус до запроса`, func(t *testing.T) {
		env := newTestEnv(models.RiskStatusPendingApproval, newPending())
		err := env.handler.RejectClosure("r1", "actor", payload)
		require.Nil(t, err)

		require.Equal(t, models.ClosureRejected, env.requests.lastUpdMap["resolution"])
		require.Equal(t, models.RiskStatusMitigated, env.risks.recs["r1"].Status)
		require.Equal(t, models.ClosureRejected, env.risks.recs["r1"].ClosureResolution)

		require.Len(t, env.logs.entries, 1)
		entry := env.logs.entries[0]
		require.Equal(t, models.LogTypeClosureRejected, entry.LogType)
		require.Equal(t, models.RiskStatusPendingApproval, *entry.PrevStatus)
		require.Equal(t, models.RiskStatusMitigated, *entry.NewStatus)
	})

	t.Run(`решение без активного запроса отклоняется`, func(t *testing.T) {
		handler := newTestImpl(models.RiskStatusMitigated, nil)
		require.ErrorIs(t, handler.ApproveClosure("r1", "actor", payload), models.ErrInvalidState)
		require.ErrorIs(t, handler.RejectClosure("r1", "actor", payload), models.ErrInvalidState)
	})

	t.Run(`решение по отсутствующему риску`, func(t *testing.T) {
		handler := newTestImpl(models.RiskStatusMitigated, nil)
		require.ErrorIs(t, handler.ApproveClosure("missing", "actor", payload), models.ErrNotFound)
		require.ErrorIs(t, handler.RejectClosure("missing", "actor", payload), models.ErrNotFound)
	})
}

// Полный цикл согласования: запрос -> отказ -> повторный запрос -> согласование
func TestClosureCycle(t *testing.T) {
	env := newTestEnv(models.RiskStatusMitigated, nil)
	request := entityapimodels.ClosureRequestData{Justification: "риск устранен"}

	require.Nil(t, env.handler.RequestClosure("r1", "actor", request))
	require.Equal(t, models.RiskStatusPendingApproval, env.risks.recs["r1"].Status)

	require.Nil(t, env.handler.RejectClosure("r1", "actor", entityapimodels.ClosureDecisionData{Comments: "рано"}))
	require.Equal(t, models.RiskStatusMitigated, env.risks.recs["r1"].Status)

	// после отказа повторный запрос допустим
	require.Nil(t, env.handler.RequestClosure("r1", "actor", request))
	require.Len(t, env.requests.created, 2)
	require.Equal(t, models.RiskStatusMitigated, env.requests.created[1].PriorStatus)

	require.Nil(t, env.handler.ApproveClosure("r1", "actor", entityapimodels.ClosureDecisionData{Comments: "ок"}))
	require.Equal(t, models.EntityStatusClosed, env.risks.recs["r1"].Status)
	require.Equal(t, models.ClosureApproved, env.risks.recs["r1"].ClosureResolution)

	logTypes := []models.LogType{}
	for _, entry := range env.logs.entries {
		logTypes = append(logTypes, entry.LogType)
	}
	require.Equal(t, []models.LogType{
		models.LogTypeClosureRequested,
		models.LogTypeClosureRejected,
		models.LogTypeClosureRequested,
		models.LogTypeClosureApproved,
	}, logTypes)
}

func TestGetRequests(t *testing.T) {
	handler := newTestImpl(models.RiskStatusMitigated, nil)
	store := handler.store.(*fakeClosureStore)
	store.list = []dbmodels.ClosureRequest{
		{
			BaseModel:     dbmodels.BaseModel{ID: "req-1"},
			EntityID:      "r1",
			RequestedByID: "actor",
			Justification: "риск устранен",
			PriorStatus:   models.RiskStatusMitigated,
			Resolution:    models.ClosureRejected,
		},
	}
	list, err := handler.GetRequests("r1")
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.ClosureRejected, list[0].Resolution)
	require.Equal(t, models.RiskStatusMitigated, list[0].PriorStatus)
}
