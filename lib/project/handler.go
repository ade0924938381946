package projecthandler

import (
	log "github.com/sirupsen/logrus"
	"pm-tools-backend/db"
	projectstore "pm-tools-backend/lib/project/store"
	"pm-tools-backend/models"
	projectapimodels "pm-tools-backend/models/api/project"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(data projectapimodels.ProjectData) (id string, err error)
	GetByID(id string) (projectapimodels.ProjectView, error)
	Update(id string, data projectapimodels.ProjectData) error
	Delete(id string) (hMsg string, err error)
	List(activeOnly bool) ([]projectapimodels.ProjectView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: projectstore.NewInstance(db.DB),
	}
}

type impl struct {
	store projectstore.Provider
}

func (i impl) Create(data projectapimodels.ProjectData) (string, error) {
	rec := dbmodels.Project{
		Code:        data.Code,
		Name:        data.Name,
		Description: data.Description,
		IsActive:    true,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).WithField("code", data.Code).Error("ошибка создания проекта")
		return "", err
	}
	log.WithField("rec_id", id).Info("создан проект")
	return id, nil
}

func (i impl) GetByID(id string) (projectapimodels.ProjectView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	if rec == nil {
		return projectapimodels.ProjectView{}, models.ErrNotFound
	}
	return projectapimodels.ProjectConvert(*rec), nil
}

func (i impl) Update(id string, data projectapimodels.ProjectData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	updMap := map[string]interface{}{
		"code":        data.Code,
		"name":        data.Name,
		"description": data.Description,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления проекта")
		return err
	}
	logger.Info("обновлен проект")
	return nil
}

func (i impl) Delete(id string) (string, error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", models.ErrNotFound
	}
	referenced, err := i.store.HasReferences(id)
	if err != nil {
		return "", err
	}
	if referenced {
		return "по проекту есть записи, удаление недоступно", nil
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления проекта")
		return "", err
	}
	logger.Info("удален проект")
	return "", nil
}

func (i impl) List(activeOnly bool) ([]projectapimodels.ProjectView, error) {
	list, err := i.store.List(activeOnly)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка проектов")
		return nil, err
	}
	result := make([]projectapimodels.ProjectView, 0, len(list))
	for _, rec := range list {
		result = append(result, projectapimodels.ProjectConvert(rec))
	}
	return result, nil
}
