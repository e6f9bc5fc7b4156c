package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// ProductRepository — хранилище товаров. Get/Update возвращают e.ErrProductNotFound,
// если товара нет; Delete в этом случае возвращает false без ошибки.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, changes *domain.ProductChanges) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AboutRepository хранит единственное about-сообщение сервиса.
type AboutRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, message string) (string, error)
}

// CacheRepository — кэш товаров по ID. Промах кэша: (nil, nil).
type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Get(ctx context.Context, key string) (*ImageObject, error)
	Delete(ctx context.Context, key string) error
}

// OutboxRepository — transactional outbox: Create вызывается внутри транзакции изменения товара.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}
