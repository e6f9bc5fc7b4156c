package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/cfg"
	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/infrastructure"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/jitter"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/google/uuid"
)

const (
	deleteAttempts    = 3
	deleteBaseBackoff = 200 * time.Millisecond
	deleteMaxBackoff  = 2 * time.Second
)

// MinioInfrastructure загружает изображения товаров в MinIO и отдаёт их обратно.
type MinioInfrastructure struct {
	minioRepo usecase.ImageRepository
	cfg       *cfg.MinIOCfg
	logger    logger.Logger
	newID     func() string
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo: minioRepo,
		cfg:       cfg,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// UploadImage сохраняет изображение под ключом "<uuid>.<ext>" и возвращает путь для image_path.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	const op = "MinioInfrastructure.UploadImage"

	if m.cfg.MaxImageSize > 0 && int64(len(req.Data)) > m.cfg.MaxImageSize {
		return nil, e.Wrap(op, e.ErrFileTooLarge)
	}

	ext, err := infrastructure.GetExtensionFromMIME(req.MimeType)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.MimeType, req.Name, err))
	}

	imageID := m.newID()
	objKey := fmt.Sprintf("%s.%s", imageID, ext)
	image := domain.NewImage(imageID, m.cfg.BucketName, objKey, req.Data, req.MimeType)

	key, err := m.minioRepo.Upload(ctx, image)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("upload %s failed: %w", req.Name, err))
	}

	m.logger.Infof("image uploaded, key: %s, size: %d", key, image.Size)
	return usecase.NewUploadImageRes(key, infrastructure.ImagePath(key)), nil
}

func (m *MinioInfrastructure) GetImage(ctx context.Context, key string) (*usecase.ImageObject, error) {
	const op = "MinioInfrastructure.GetImage"

	obj, err := m.minioRepo.Get(ctx, key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return obj, nil
}

// DeleteImage удаляет изображение с экспоненциальной задержкой и jitter между попытками.
func (m *MinioInfrastructure) DeleteImage(ctx context.Context, key string) error {
	const op = "MinioInfrastructure.DeleteImage"

	var err error
	for attempt := 0; attempt < deleteAttempts; attempt++ {
		if err = m.minioRepo.Delete(ctx, key); err == nil {
			return nil
		}

		if attempt == deleteAttempts-1 {
			break
		}

		m.logger.Warnf("delete image %s failed, attempt %d: %v", key, attempt+1, err)
		select {
		case <-time.After(jitter.ExponentialBackoff(deleteBaseBackoff, deleteMaxBackoff, attempt, jitter.DefaultJitter)):
		case <-ctx.Done():
			return e.Wrap(op, ctx.Err())
		}
	}

	return e.Wrap(op, err)
}
