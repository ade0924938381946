package attachmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "pm-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Attachment) (id string, err error)
	GetByID(id string) (*dbmodels.Attachment, error)
	ListByEntity(entityID string) ([]dbmodels.Attachment, error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Attachment) (string, error) {
	err := i.db.
		Omit("Entity", "UploadedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attachment, error) {
	rec := dbmodels.Attachment{}
	err := i.db.
		Model(&dbmodels.Attachment{}).
		Preload("UploadedBy").
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

func (i impl) ListByEntity(entityID string) (list []dbmodels.Attachment, err error) {
	err = i.db.
		Model(&dbmodels.Attachment{}).
		Preload("UploadedBy").
		Where("entity_id = ?", entityID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Attachment{}).
		Error
}
