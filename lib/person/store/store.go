package personstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Person) (id string, err error)
	GetByID(id string) (rec *dbmodels.Person, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(activeOnly bool, search string) (list []dbmodels.Person, err error)
	HasReferences(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Person) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Person, error) {
	rec := dbmodels.Person{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Person{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Person{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(activeOnly bool, search string) (list []dbmodels.Person, err error) {
	list = []dbmodels.Person{}
	tx := i.db.
		Order("last_name ASC, first_name ASC")
	if activeOnly {
		tx.Where("is_active = true")
	}
	if search != "" {
		searchValue := "%" + strings.ToLower(search) + "%"
		tx.Where("LOWER(CONCAT(last_name,' ', first_name, ' ' , middle_name)) like ? or LOWER(email) like ?", searchValue, searchValue)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) HasReferences(id string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.WorkflowEntity{}).
		Where("raised_by_id = ? or assignee_id = ?", id, id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = i.db.
		Model(&dbmodels.ActionItem{}).
		Where("created_by_id = ? or assignee_id = ?", id, id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
