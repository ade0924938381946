package dbmodels

import "strings"

type Person struct {
	BaseModel
	FirstName  string `gorm:"type:varchar(100)"`
	LastName   string `gorm:"type:varchar(100)"`
	MiddleName string `gorm:"type:varchar(100)"`
	Email      string `gorm:"type:varchar(255);index"`
	Role       string `gorm:"type:varchar(100)"`
	IsActive   bool   `gorm:"default:true"`
}

func (p Person) GetFullName() string {
	parts := []string{}
	for _, part := range []string{p.LastName, p.FirstName, p.MiddleName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
