package dbmodels

type Attachment struct {
	BaseModel
	EntityID     string          `gorm:"type:varchar(36);index"`
	Entity       *WorkflowEntity `gorm:"foreignKey:EntityID"`
	FileName     string          `gorm:"type:varchar(255)"`
	ObjectKey    string          `gorm:"type:varchar(255)"`
	Size         int64
	UploadedByID *string `gorm:"type:varchar(36)"`
	UploadedBy   *Person `gorm:"foreignKey:UploadedByID"`
}
