package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// TxRunner выполняет fn атомарно относительно хранилища.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события изменения товаров.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.ProductEvent) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	GetImage(ctx context.Context, key string) (*ImageObject, error)
	DeleteImage(ctx context.Context, key string) error
}
