package closurestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pm-tools-backend/models"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ClosureRequest) (id string, err error)
	GetPending(entityID string) (rec *dbmodels.ClosureRequest, err error)
	Update(entityID, id string, updMap map[string]interface{}) error
	List(entityID string) (list []dbmodels.ClosureRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ClosureRequest) (id string, err error) {
	err = i.db.
		Omit("Entity", "RequestedBy", "DecidedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetPending(entityID string) (*dbmodels.ClosureRequest, error) {
	rec := dbmodels.ClosureRequest{}
	err := i.db.
		Where("entity_id = ?", entityID).
		Where("resolution = ?", models.ClosurePending).
		Preload("RequestedBy").
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
		Model(&dbmodels.ClosureRequest{}).
		Where("id = ?", id).
		Where("entity_id = ?", entityID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(entityID string) (list []dbmodels.ClosureRequest, err error) {
	list = []dbmodels.ClosureRequest{}
	tx := i.db.
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Preload("RequestedBy").
		Preload("DecidedBy")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
