package redis

import (
	"context"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// NopCacheRepo используется, когда Redis выключен: всегда промах.
type NopCacheRepo struct{}

func (NopCacheRepo) GetProduct(context.Context, int64) (*domain.Product, error) { return nil, nil }

func (NopCacheRepo) SetProduct(context.Context, domain.Product) error { return nil }

func (NopCacheRepo) DeleteProducts(context.Context, []int64) error { return nil }
