package minio

import (
	"bytes"
	"context"

	"github.com/DRSN-tech/catalog-admin/internal/cfg"
	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const noSuchKey = "NoSuchKey"

// ImageRepo реализует репозиторий изображений поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в MinIO и возвращает ключ объекта.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey, bytes.NewReader(image.Data), image.Size,
		minio.PutObjectOptions{ContentType: image.ContentType},
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Get открывает объект на чтение. Отсутствующий ключ — e.ErrImageNotFound.
func (i *ImageRepo) Get(ctx context.Context, key string) (*usecase.ImageObject, error) {
	obj, err := i.mc.GetObject(ctx, i.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapMinioErr(err))
	}

	// GetObject ленивый: ошибка отсутствия объекта приходит только на Stat/Read
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, e.Wrap(whereami.WhereAmI(), mapMinioErr(err))
	}

	return &usecase.ImageObject{
		Body:        obj,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func mapMinioErr(err error) error {
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return e.ErrImageNotFound
	}
	return err
}
