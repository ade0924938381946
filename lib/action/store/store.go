package actionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ActionItem) (id string, err error)
	GetByID(entityID, id string) (rec *dbmodels.ActionItem, err error)
	Update(entityID, id string, updMap map[string]interface{}) error
	Delete(entityID, id string) error
	List(entityID string) (list []dbmodels.ActionItem, err error)
	ListOverdue(projectID string) (list []dbmodels.ActionItem, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ActionItem) (id string, err error) {
	err = i.db.
		Omit("Entity", "Assignee", "CreatedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(entityID, id string) (*dbmodels.ActionItem, error) {
	rec := dbmodels.ActionItem{}
	err := i.db.
		Where("id = ?", id).
		Where("entity_id = ?", entityID).
		Preload("Assignee").
		Preload("CreatedBy").
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

func (i impl) Update(entityID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ActionItem{}).
		Where("id = ?", id).
		Where("entity_id = ?", entityID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(entityID, id string) error {
	rec := dbmodels.ActionItem{}
	err := i.db.Model(&dbmodels.ActionItem{}).
		Where("id = ?", id).
		Where("entity_id = ?", entityID).
		Delete(&rec).Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(entityID string) (list []dbmodels.ActionItem, err error) {
	list = []dbmodels.ActionItem{}
	tx := i.db.
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Preload("Assignee").
		Preload("CreatedBy")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListOverdue(projectID string) (list []dbmodels.ActionItem, err error) {
	list = []dbmodels.ActionItem{}
	tx := i.db.
		Joins("Entity").
		Where("action_items.due_date < NOW()").
		Where("action_items.status NOT IN ?", []string{"Completed", "Cancelled"}).
		Order("action_items.due_date ASC").
		Preload("Assignee")
	if projectID != "" {
		tx.Where("\"Entity\".project_id = ?", projectID)
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
