package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// ProductUC — операции над товарами, доступные слою доставки.
type ProductUC interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Add(ctx context.Context, req *AddProductReq) (*domain.Product, error)
	Update(ctx context.Context, id int64, changes *domain.ProductChanges) (*domain.Product, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

// AboutUC — операции над about-сообщением.
type AboutUC interface {
	GetMessage(ctx context.Context) (string, error)
	SetMessage(ctx context.Context, message string) (string, error)
}

// ImageUC — загрузка и выдача изображений товаров.
type ImageUC interface {
	Upload(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	Get(ctx context.Context, key string) (*ImageObject, error)
	Delete(ctx context.Context, key string) error
}
