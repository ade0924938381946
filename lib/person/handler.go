package personhandler

import (
	log "github.com/sirupsen/logrus"
	"pm-tools-backend/db"
	personstore "pm-tools-backend/lib/person/store"
	"pm-tools-backend/models"
	personapimodels "pm-tools-backend/models/api/person"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(data personapimodels.PersonData) (id string, err error)
	GetByID(id string) (personapimodels.PersonView, error)
	Update(id string, data personapimodels.PersonData) error
	Delete(id string) (hMsg string, err error)
	List(activeOnly bool, search string) ([]personapimodels.PersonView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: personstore.NewInstance(db.DB),
	}
}

type impl struct {
	store personstore.Provider
}

func (i impl) Create(data personapimodels.PersonData) (string, error) {
	rec := dbmodels.Person{
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		MiddleName: data.MiddleName,
		Email:      data.Email,
		Role:       data.Role,
		IsActive:   true,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления сотрудника")
		return "", err
	}
	log.WithField("rec_id", id).Info("добавлен сотрудник")
	return id, nil
}

func (i impl) GetByID(id string) (personapimodels.PersonView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return personapimodels.PersonView{}, err
	}
	if rec == nil {
		return personapimodels.PersonView{}, models.ErrNotFound
	}
	return personapimodels.PersonConvert(*rec), nil
}

func (i impl) Update(id string, data personapimodels.PersonData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	updMap := map[string]interface{}{
		"first_name":  data.FirstName,
		"last_name":   data.LastName,
		"middle_name": data.MiddleName,
		"email":       data.Email,
		"role":        data.Role,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления сотрудника")
		return err
	}
	logger.Info("обновлен сотрудник")
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
		return "сотрудник используется в записях, удаление недоступно", nil
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления сотрудника")
		return "", err
	}
	logger.Info("удален сотрудник")
	return "", nil
}

func (i impl) List(activeOnly bool, search string) ([]personapimodels.PersonView, error) {
	list, err := i.store.List(activeOnly, search)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сотрудников")
		return nil, err
	}
	result := make([]personapimodels.PersonView, 0, len(list))
	for _, rec := range list {
		result = append(result, personapimodels.PersonConvert(rec))
	}
	return result, nil
}
