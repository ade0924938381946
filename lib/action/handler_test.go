package actionhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pm-tools-backend/models"
	actionapimodels "pm-tools-backend/models/api/action"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

type fakeActionStore struct {
	recs       map[string]*dbmodels.ActionItem
	lastCreate dbmodels.ActionItem
	lastUpdMap map[string]interface{}
	deletedIDs []string
}

func (f *fakeActionStore) Create(rec dbmodels.ActionItem) (string, error) {
	f.lastCreate = rec
	return "a-1", nil
}
func (f *fakeActionStore) GetByID(entityID, id string) (*dbmodels.ActionItem, error) {
	return f.recs[id], nil
}
func (f *fakeActionStore) Update(entityID, id string, updMap map[string]interface{}) error {
	f.lastUpdMap = updMap
	return nil
}
func (f *fakeActionStore) Delete(entityID, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}
func (f *fakeActionStore) List(entityID string) ([]dbmodels.ActionItem, error) {
	list := []dbmodels.ActionItem{}
	for _, rec := range f.recs {
		list = append(list, *rec)
	}
	return list, nil
}
func (f *fakeActionStore) ListOverdue(projectID string) ([]dbmodels.ActionItem, error) {
	return nil, nil
}

type fakeEntityStore struct {
	recs map[string]*dbmodels.WorkflowEntity
}

func (f *fakeEntityStore) Create(rec dbmodels.WorkflowEntity) (string, error) { return rec.ID, nil }
func (f *fakeEntityStore) GetByID(entityType models.EntityType, id string) (*dbmodels.WorkflowEntity, error) {
	return f.recs[id], nil
}
func (f *fakeEntityStore) GetByNumber(entityType models.EntityType, number string) (*dbmodels.WorkflowEntity, error) {
	return nil, nil
}
func (f *fakeEntityStore) Update(entityType models.EntityType, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeEntityStore) Delete(entityType models.EntityType, id string) error { return nil }
func (f *fakeEntityStore) List(entityType models.EntityType, filter entityapimodels.EntityFilter) ([]dbmodels.WorkflowEntity, error) {
	return nil, nil
}
func (f *fakeEntityStore) ListCount(entityType models.EntityType, filter entityapimodels.EntityFilter) (int64, error) {
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

func newTestImpl(actions map[string]*dbmodels.ActionItem) (impl, *fakeActionStore) {
	store := &fakeActionStore{recs: actions}
	handler := impl{
		store: store,
		entityStore: &fakeEntityStore{recs: map[string]*dbmodels.WorkflowEntity{
			"e1": {BaseModel: dbmodels.BaseModel{ID: "e1"}, EntityType: models.EntityTypeIssue},
		}},
		personStore: &fakePersonStore{recs: map[string]*dbmodels.Person{
			"actor": {BaseModel: dbmodels.BaseModel{ID: "actor"}},
		}},
	}
	return handler, store
}

func TestActionCreate(t *testing.T) {
	t.Run(`родительская запись обязательна`, func(t *testing.T) {
		handler, _ := newTestImpl(nil)
		_, err := handler.Create(models.EntityTypeIssue, "missing", "actor", actionapimodels.ActionData{Description: "проверить"})
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run(`статус по умолчанию Pending`, func(t *testing.T) {
		handler, store := newTestImpl(nil)
		id, err := handler.Create(models.EntityTypeIssue, "e1", "actor", actionapimodels.ActionData{Description: "проверить"})
		require.Nil(t, err)
		require.Equal(t, "a-1", id)
		require.Equal(t, models.ActionStatusPending, store.lastCreate.Status)
		require.Nil(t, store.lastCreate.CompletedAt)
	})

	t.Run(`завершенная задача получает completed_at`, func(t *testing.T) {
		handler, store := newTestImpl(nil)
		_, err := handler.Create(models.EntityTypeIssue, "e1", "actor", actionapimodels.ActionData{
			Description: "сделано сразу",
			Status:      models.ActionStatusCompleted,
		})
		require.Nil(t, err)
		require.NotNil(t, store.lastCreate.CompletedAt)
	})

	t.Run(`неизвестный исполнитель`, func(t *testing.T) {
		handler, _ := newTestImpl(nil)
		_, err := handler.Create(models.EntityTypeIssue, "e1", "actor", actionapimodels.ActionData{
			Description: "проверить",
			AssigneeID:  "ghost",
		})
		require.NotNil(t, err)
	})
}

func TestActionUpdate(t *testing.T) {
	existing := func() map[string]*dbmodels.ActionItem {
		return map[string]*dbmodels.ActionItem{
			"a-1": {
				BaseModel: dbmodels.BaseModel{ID: "a-1"},
				EntityID:  "e1",
				Status:    models.ActionStatusInProgress,
			},
		}
	}

	t.Run(`перевод в Completed ставит отметку времени`, func(t *testing.T) {
		handler, store := newTestImpl(existing())
		completed := models.ActionStatusCompleted
		err := handler.Update(models.EntityTypeIssue, "e1", "a-1", "actor", actionapimodels.ActionUpdateData{Status: &completed})
		require.Nil(t, err)
		require.Equal(t, completed, store.lastUpdMap["status"])
		require.IsType(t, time.Time{}, store.lastUpdMap["completed_at"])
	})

	t.Run(`статус без изменения не попадает в обновление`, func(t *testing.T) {
		handler, store := newTestImpl(existing())
		inProgress := models.ActionStatusInProgress
		notes := "заметка"
		err := handler.Update(models.EntityTypeIssue, "e1", "a-1", "actor", actionapimodels.ActionUpdateData{
			Status: &inProgress,
			Notes:  &notes,
		})
		require.Nil(t, err)
		_, hasStatus := store.lastUpdMap["status"]
		require.False(t, hasStatus)
		require.Equal(t, notes, store.lastUpdMap["notes"])
	})

	t.Run(`задача не найдена`, func(t *testing.T) {
		handler, _ := newTestImpl(nil)
		completed := models.ActionStatusCompleted
		err := handler.Update(models.EntityTypeIssue, "e1", "missing", "actor", actionapimodels.ActionUpdateData{Status: &completed})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestActionDelete(t *testing.T) {
	handler, store := newTestImpl(map[string]*dbmodels.ActionItem{
		"a-1": {BaseModel: dbmodels.BaseModel{ID: "a-1"}, EntityID: "e1"},
	})
	require.ErrorIs(t, handler.Delete(models.EntityTypeIssue, "e1", "missing"), models.ErrNotFound)
	require.Nil(t, handler.Delete(models.EntityTypeIssue, "e1", "a-1"))
	require.Equal(t, []string{"a-1"}, store.deletedIDs)
}
