package projectapimodels

import (
	"github.com/pkg/errors"
	dbmodels "pm-tools-backend/models/db"
)

type ProjectData struct {
	Code        string `json:"code"`        // код проекта
	Name        string `json:"name"`        // название
	Description string `json:"description"` // описание
}

func (p ProjectData) Validate() error {
	if p.Code == "" {
		return errors.New("отсутствует код проекта")
	}
	if p.Name == "" {
		return errors.New("отсутствует название проекта")
	}
	return nil
}

type ProjectView struct {
	ProjectData
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

func ProjectConvert(rec dbmodels.Project) ProjectView {
	return ProjectView{
		ProjectData: ProjectData{
			Code:        rec.Code,
			Name:        rec.Name,
			Description: rec.Description,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
}
