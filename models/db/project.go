package dbmodels

type Project struct {
	BaseModel
	Code        string `gorm:"type:varchar(50);uniqueIndex"`
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsActive    bool `gorm:"default:true"`
}
