package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "pm-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Project")
	}
	if err := DB.AutoMigrate(&dbmodels.Person{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Person")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowEntity{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowEntity")
	}
	if err := DB.AutoMigrate(&dbmodels.EntityLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EntityLog")
	}
	if err := DB.AutoMigrate(&dbmodels.ActionItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ActionItem")
	}
	if err := DB.AutoMigrate(&dbmodels.ClosureRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ClosureRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Attachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attachment")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
