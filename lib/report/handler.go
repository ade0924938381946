package reporthandler

import (
	"bytes"

	log "github.com/sirupsen/logrus"
	"pm-tools-backend/db"
	actionstore "pm-tools-backend/lib/action/store"
	xlsexport "pm-tools-backend/lib/export/xls"
	reportstore "pm-tools-backend/lib/report/store"
	initchecker "pm-tools-backend/lib/utils/init-checker"
	entitystore "pm-tools-backend/lib/workflow/store"
	"pm-tools-backend/models"
	actionapimodels "pm-tools-backend/models/api/action"
	entityapimodels "pm-tools-backend/models/api/entity"
	reportapimodels "pm-tools-backend/models/api/report"
)

type Provider interface {
	StatusSummary(projectID string) ([]reportapimodels.StatusSummaryView, error)
	RiskMatrix(projectID string) (reportapimodels.RiskMatrixView, error)
	OverdueActions(projectID string) ([]reportapimodels.OverdueActionView, error)
	RegisterExportToXls(entityType models.EntityType, filter entityapimodels.EntityFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       reportstore.NewInstance(db.DB),
		entityStore: entitystore.NewInstance(db.DB),
		actionStore: actionstore.NewInstance(db.DB),
		exporter:    xlsexport.Instance,
	}
	initchecker.CheckInit(
		"exporter", instance.exporter,
	)
	Instance = instance
}

type impl struct {
	store       reportstore.Provider
	entityStore entitystore.Provider
	actionStore actionstore.Provider
	exporter    xlsexport.Provider
}

func (i impl) StatusSummary(projectID string) ([]reportapimodels.StatusSummaryView, error) {
	counts, err := i.store.StatusCounts(projectID)
	if err != nil {
		log.WithError(err).Error("ошибка построения сводки по статусам")
		return nil, err
	}
	byType := map[models.EntityType]*reportapimodels.StatusSummaryView{}
	for _, row := range counts {
		summary, ok := byType[row.EntityType]
		if !ok {
			summary = &reportapimodels.StatusSummaryView{
				EntityType: row.EntityType,
				ByStatus:   map[models.EntityStatus]int64{},
			}
			byType[row.EntityType] = summary
		}
		summary.ByStatus[row.Status] += row.Count
		summary.Total += row.Count
	}
	result := make([]reportapimodels.StatusSummaryView, 0, len(byType))
	for _, def := range models.Definitions() {
		if summary, ok := byType[def.Type]; ok {
			result = append(result, *summary)
		}
	}
	return result, nil
}

func (i impl) RiskMatrix(projectID string) (reportapimodels.RiskMatrixView, error) {
	counts, err := i.store.RiskGradeCounts(projectID)
	if err != nil {
		log.WithError(err).Error("ошибка построения матрицы рисков")
		return reportapimodels.RiskMatrixView{}, err
	}
	result := reportapimodels.RiskMatrixView{
		Bands: map[models.RiskScoreBand]int64{},
		Cells: []reportapimodels.RiskMatrixCell{},
	}
	for _, row := range counts {
		result.Total += row.Count
		result.Bands[models.GetRiskScoreBand(row.Score)] += row.Count
		result.Cells = append(result.Cells, reportapimodels.RiskMatrixCell{
			Probability: row.Probability,
			Impact:      row.Impact,
			Count:       row.Count,
		})
	}
	return result, nil
}

func (i impl) OverdueActions(projectID string) ([]reportapimodels.OverdueActionView, error) {
	list, err := i.actionStore.ListOverdue(projectID)
	if err != nil {
		log.WithError(err).Error("ошибка получения просроченных задач")
		return nil, err
	}
	result := make([]reportapimodels.OverdueActionView, 0, len(list))
	for _, rec := range list {
		view := reportapimodels.OverdueActionView{
			ActionID:    rec.ID,
			EntityID:    rec.EntityID,
			Description: rec.Description,
			Status:      rec.Status,
		}
		if rec.DueDate != nil {
			view.DueDate = *rec.DueDate
		}
		if rec.Entity != nil {
			view.EntityNumber = rec.Entity.Number
		}
		if rec.Assignee != nil {
			view.AssigneeName = rec.Assignee.GetFullName()
		}
		result = append(result, view)
	}
	return result, nil
}

func (i impl) RegisterExportToXls(entityType models.EntityType, filter entityapimodels.EntityFilter) (*bytes.Buffer, error) {
	// выгружается весь реестр с учетом фильтра, постранично
	registry := []entityapimodels.EntityView{}
	filter.Page = 1
	filter.Limit = 100
	for {
		page, err := i.entityStore.List(entityType, filter)
		if err != nil {
			return nil, err
		}
		for _, rec := range page {
			registry = append(registry, entityapimodels.EntityConvert(rec))
		}
		if len(page) < filter.Limit {
			break
		}
		filter.Page++
	}
	actions := map[string][]actionapimodels.ActionView{}
	for _, item := range registry {
		list, err := i.actionStore.List(item.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range list {
			actions[item.ID] = append(actions[item.ID], actionapimodels.ActionConvert(rec))
		}
	}
	return i.exporter.ExportEntityRegister(entityType, registry, actions)
}
