package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"pm-tools-backend/models"
	actionapimodels "pm-tools-backend/models/api/action"
	entityapimodels "pm-tools-backend/models/api/entity"
)

type Provider interface {
	ExportEntityRegister(entityType models.EntityType, list []entityapimodels.EntityView, actions map[string][]actionapimodels.ActionView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var registerHeaders = []string{"Номер", "Заголовок", "Статус", "Приоритет", "Проект", "Автор", "Ответственный", "Дата регистрации", "Вероятность", "Влияние", "Оценка"}
var actionHeaders = []string{"Номер записи", "Задача", "Тип", "Статус", "Приоритет", "Исполнитель", "Срок", "Завершена"}

const dateFormat = "02.01.2006"

func (i impl) ExportEntityRegister(entityType models.EntityType, list []entityapimodels.EntityView, actions map[string][]actionapimodels.ActionView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, registerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRegisterData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования реестра в xlsx")
		}
	}
	f.SetSheetName(sheet, "Реестр")

	actionSheet := "Задачи"
	if _, err = f.NewSheet(actionSheet); err != nil {
		return nil, err
	}
	if err = writeActionData(f, actionSheet, list, actions); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования списка задач в xlsx")
	}
	return f.WriteToBuffer()
}

func writeRegisterData(f *excelize.File, sheet string, list []entityapimodels.EntityView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(registerHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.Number,
			item.Title,
			string(item.Status),
			string(item.Priority),
			item.ProjectName,
			item.RaisedByName,
			item.AssigneeName,
			item.RaisedAt.Format(dateFormat),
		}
		if item.EntityType == models.EntityTypeRisk {
			values = append(values, string(item.Probability), string(item.Impact), item.Score)
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeActionData(f *excelize.File, sheet string, list []entityapimodels.EntityView, actions map[string][]actionapimodels.ActionView) error {
	row, err := writeHeader(f, sheet, 0, actionHeaders)
	if err != nil {
		return err
	}
	for _, item := range list {
		for _, action := range actions[item.ID] {
			row++
			dueDate := ""
			if action.DueDate != nil {
				dueDate = action.DueDate.Format(dateFormat)
			}
			completedAt := ""
			if action.CompletedAt != nil {
				completedAt = action.CompletedAt.Format(dateFormat)
			}
			values := []interface{}{
				item.Number,
				action.Description,
				action.ActionType,
				string(action.Status),
				string(action.Priority),
				action.AssigneeName,
				dueDate,
				completedAt,
			}
			if err := writeRow(f, sheet, row, values); err != nil {
				return err
			}
		}
	}
	return nil
}
