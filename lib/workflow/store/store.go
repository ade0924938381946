package entitystore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pm-tools-backend/models"
	entityapimodels "pm-tools-backend/models/api/entity"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowEntity) (id string, err error)
	GetByID(entityType models.EntityType, id string) (rec *dbmodels.WorkflowEntity, err error)
	GetByNumber(entityType models.EntityType, number string) (rec *dbmodels.WorkflowEntity, err error)
	Update(entityType models.EntityType, id string, updMap map[string]interface{}) error
	Delete(entityType models.EntityType, id string) error
	List(entityType models.EntityType, filter entityapimodels.EntityFilter) (list []dbmodels.WorkflowEntity, err error)
	ListCount(entityType models.EntityType, filter entityapimodels.EntityFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowEntity) (id string, err error) {
	err = i.db.
		Omit("Project", "RaisedBy", "Assignee").
		Create(&rec).
		Error
	if err != nil {
		if strings.Contains(err.Error(), "(SQLSTATE 23505)") {
			return "", models.ErrDuplicateNumber
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(entityType models.EntityType, id string) (*dbmodels.WorkflowEntity, error) {
	rec := dbmodels.WorkflowEntity{}
	err := i.db.
		Where("id = ?", id).
		Where("entity_type = ?", entityType).
		Preload("Project").
		Preload("RaisedBy").
		Preload("Assignee").
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

func (i impl) GetByNumber(entityType models.EntityType, number string) (*dbmodels.WorkflowEntity, error) {
	rec := dbmodels.WorkflowEntity{}
	err := i.db.
		Where("entity_type = ?", entityType).
		Where("number = ?", number).
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

func (i impl) Update(entityType models.EntityType, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.WorkflowEntity{}).
		Where("id = ?", id).
		Where("entity_type = ?", entityType).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(entityType models.EntityType, id string) error {
	rec := dbmodels.WorkflowEntity{
		BaseModel:  dbmodels.BaseModel{ID: id},
		EntityType: entityType,
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(entityType models.EntityType, filter entityapimodels.EntityFilter) (list []dbmodels.WorkflowEntity, err error) {
	list = []dbmodels.WorkflowEntity{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx := i.applyFilter(entityType, filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("Project").
		Preload("RaisedBy").
		Preload("Assignee")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(entityType models.EntityType, filter entityapimodels.EntityFilter) (rowCount int64, err error) {
	err = i.applyFilter(entityType, filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) applyFilter(entityType models.EntityType, filter entityapimodels.EntityFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.WorkflowEntity{}).
		Where("entity_type = ?", entityType)
	if filter.ProjectID != "" {
		tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		tx.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != "" {
		tx.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(number) like ? or LOWER(title) like ? or LOWER(description) like ?", searchValue, searchValue, searchValue)
	}
	return tx
}
