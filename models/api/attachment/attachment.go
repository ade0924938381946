package attachmentapimodels

import (
	"time"

	dbmodels "pm-tools-backend/models/db"
)

type AttachmentView struct {
	ID             string    `json:"id"`
	EntityID       string    `json:"entity_id"`
	FileName       string    `json:"file_name"`
	Size           int64     `json:"size"`
	UploadedByID   string    `json:"uploaded_by_id"`
	UploadedByName string    `json:"uploaded_by_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func AttachmentConvert(rec dbmodels.Attachment) AttachmentView {
	result := AttachmentView{
		ID:        rec.ID,
		EntityID:  rec.EntityID,
		FileName:  rec.FileName,
		Size:      rec.Size,
		CreatedAt: rec.CreatedAt,
	}
	if rec.UploadedByID != nil {
		result.UploadedByID = *rec.UploadedByID
	}
	if rec.UploadedBy != nil {
		result.UploadedByName = rec.UploadedBy.GetFullName()
	}
	return result
}
