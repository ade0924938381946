package db

import (
	projectstore "pm-tools-backend/lib/project/store"
	dbmodels "pm-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addDefaultProject()
}

// addDefaultProject заводит общий проект при первом запуске, чтобы записи можно
// было регистрировать до настройки справочника проектов
func addDefaultProject() {
	store := projectstore.NewInstance(DB)
	list, err := store.List(false)
	if err != nil {
		log.WithError(err).Error("ошибка проверки справочника проектов")
		return
	}
	if len(list) != 0 {
		return
	}
	rec := dbmodels.Project{
		Code:     "GEN",
		Name:     "Общий проект",
		IsActive: true,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления общего проекта")
	}
}
