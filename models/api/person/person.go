package personapimodels

import (
	"github.com/pkg/errors"
	dbmodels "pm-tools-backend/models/db"
)

type PersonData struct {
	FirstName  string `json:"first_name"`  // имя
	LastName   string `json:"last_name"`   // фамилия
	MiddleName string `json:"middle_name"` // отчество
	Email      string `json:"email"`       // почта
	Role       string `json:"role"`        // роль в проекте, произвольная метка
}

func (p PersonData) Validate() error {
	if p.FirstName == "" && p.LastName == "" {
		return errors.New("отсутствует имя сотрудника")
	}
	return nil
}

type PersonView struct {
	PersonData
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

func PersonConvert(rec dbmodels.Person) PersonView {
	return PersonView{
		PersonData: PersonData{
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			MiddleName: rec.MiddleName,
			Email:      rec.Email,
			Role:       rec.Role,
		},
		ID:       rec.ID,
		FullName: rec.GetFullName(),
		IsActive: rec.IsActive,
	}
}
