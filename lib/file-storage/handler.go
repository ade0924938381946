package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"pm-tools-backend/config"
	"pm-tools-backend/db"
	"pm-tools-backend/models"
	attachmentapimodels "pm-tools-backend/models/api/attachment"
	dbmodels "pm-tools-backend/models/db"

	attachmentstore "pm-tools-backend/lib/file-storage/store"
	entitystore "pm-tools-backend/lib/workflow/store"
)

type Provider interface {
	Upload(ctx context.Context, entityType models.EntityType, entityID string, fileName string, file []byte, uploadedByID string) (attachmentapimodels.AttachmentView, error)
	Download(ctx context.Context, id string) (fileName string, body []byte, err error)
	List(entityType models.EntityType, entityID string) ([]attachmentapimodels.AttachmentView, error)
	Delete(ctx context.Context, id string) error
	MakeBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client:    s3client,
		store:       attachmentstore.NewInstance(db.DB),
		entityStore: entitystore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client    *minio.Client
	store       attachmentstore.Provider
	entityStore entitystore.Provider
}

func (i impl) Upload(ctx context.Context, entityType models.EntityType, entityID string, fileName string, file []byte, uploadedByID string) (attachmentapimodels.AttachmentView, error) {
	entity, err := i.entityStore.GetByID(entityType, entityID)
	if err != nil {
		return attachmentapimodels.AttachmentView{}, err
	}
	if entity == nil {
		return attachmentapimodels.AttachmentView{}, models.ErrNotFound
	}
	objectKey := fmt.Sprintf("%s/%s", entityID, uuid.NewString())
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return attachmentapimodels.AttachmentView{}, errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	rec := dbmodels.Attachment{
		EntityID:  entityID,
		FileName:  fileName,
		ObjectKey: objectKey,
		Size:      int64(len(file)),
	}
	if uploadedByID != "" {
		rec.UploadedByID = &uploadedByID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return attachmentapimodels.AttachmentView{}, errors.Wrap(err, "ошибка сохранения записи о файле")
	}
	saved, err := i.store.GetByID(id)
	if err != nil || saved == nil {
		rec.ID = id
		return attachmentapimodels.AttachmentConvert(rec), nil
	}
	return attachmentapimodels.AttachmentConvert(*saved), nil
}

func (i impl) Download(ctx context.Context, id string) (string, []byte, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", nil, err
	}
	if rec == nil {
		return "", nil, models.ErrNotFound
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec.FileName, body, nil
}

func (i impl) List(entityType models.EntityType, entityID string) ([]attachmentapimodels.AttachmentView, error) {
	entity, err := i.entityStore.GetByID(entityType, entityID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, models.ErrNotFound
	}
	list, err := i.store.ListByEntity(entityID)
	if err != nil {
		return nil, err
	}
	result := make([]attachmentapimodels.AttachmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, attachmentapimodels.AttachmentConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(ctx context.Context, id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return i.store.Delete(rec.ID)
}

func (i impl) MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}
