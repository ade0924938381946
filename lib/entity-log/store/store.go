package entitylogstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "pm-tools-backend/models/db"
)

// Журнал append-only: записи не обновляются и поштучно не удаляются,
// каскадное удаление выполняет хук родительской записи

type Provider interface {
	Create(rec dbmodels.EntityLog) (id string, err error)
	List(entityID string) (list []dbmodels.EntityLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EntityLog) (id string, err error) {
	err = i.db.
		Omit("Entity", "LoggedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(entityID string) (list []dbmodels.EntityLog, err error) {
	list = []dbmodels.EntityLog{}
	tx := i.db.
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Preload("LoggedBy")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
