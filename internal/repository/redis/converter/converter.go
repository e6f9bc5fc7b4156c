package converter

import (
	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// ProductConverter преобразует товар в модель кэша и обратно.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (ProductConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductRedisModel{
		ID:        entity.ID,
		Category:  string(entity.Category),
		Name:      entity.Name,
		Price:     entity.Price,
		ImagePath: entity.ImagePath,
		CreatedAt: entity.CreatedAt.UTC(),
	}
}

func (ProductConverterImpl) ToEntity(model *ProductRedisModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:        model.ID,
		Category:  domain.Category(model.Category),
		Name:      model.Name,
		Price:     model.Price,
		ImagePath: model.ImagePath,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
