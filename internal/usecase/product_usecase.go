package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/google/uuid"
)

// ProductUseCase реализует бизнес-логику управления товарами каталога.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	txRunner    TxRunner
	events      EventPublisher
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	txRunner TxRunner,
	events EventPublisher,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		txRunner:    txRunner,
		events:      events,
		logger:      logger,
	}
}

// List возвращает все товары в порядке хранилища.
func (p *ProductUseCase) List(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.List"

	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// Get возвращает товар по ID или (nil, nil), если товара нет.
// Сначала смотрит в кэш, при промахе читает хранилище и в фоне кладёт результат в кэш.
func (p *ProductUseCase) Get(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.Get"

	cached, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("cache lookup failed, product_id: %d: %v", id, e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			return nil, nil
		}
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление товара в кэш
	go func(product domain.Product) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}(*product)

	return product, nil
}

// Add создаёт товар: хранилище назначает ID и время создания, событие публикуется в той же транзакции.
func (p *ProductUseCase) Add(ctx context.Context, req *AddProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.Add"

	product, err := p.newProduct(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.Product
	err = p.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = p.productRepo.Create(ctx, product)
		if err != nil {
			return err
		}

		return p.publish(ctx, domain.ProductCreated, created.ID, created)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product created, product_id: %d", created.ID)
	return created, nil
}

// Update частично обновляет товар. Если товара нет — e.ErrProductNotFound, хранилище не меняется.
func (p *ProductUseCase) Update(ctx context.Context, id int64, changes *domain.ProductChanges) (*domain.Product, error) {
	const op = "ProductUseCase.Update"

	if changes == nil {
		changes = &domain.ProductChanges{}
	}

	if err := changes.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if changes.IsEmpty() {
		product, err := p.productRepo.Get(ctx, id)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		return product, nil
	}

	var updated *domain.Product
	err := p.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = p.productRepo.Update(ctx, id, changes)
		if err != nil {
			return err
		}

		return p.publish(ctx, domain.ProductUpdated, updated.ID, updated)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	return updated, nil
}

// Remove удаляет товар. Повторное удаление не ошибка: возвращается false.
func (p *ProductUseCase) Remove(ctx context.Context, id int64) (bool, error) {
	const op = "ProductUseCase.Remove"

	var removed bool
	err := p.txRunner.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = p.productRepo.Delete(ctx, id)
		if err != nil || !removed {
			return err
		}

		return p.publish(ctx, domain.ProductRemoved, id, nil)
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	if removed {
		p.invalidate(ctx, id)
	}

	return removed, nil
}

// newProduct собирает и валидирует товар из запроса.
func (p *ProductUseCase) newProduct(req *AddProductReq) (*domain.Product, error) {
	category := domain.DefaultCategory
	if c := strings.TrimSpace(req.Category); c != "" {
		parsed, err := domain.ParseCategory(c)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	product := domain.NewProduct(category, req.Name, req.Price, req.ImagePath)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

func (p *ProductUseCase) publish(ctx context.Context, eventType domain.ProductEventType, productID int64, product *domain.Product) error {
	return p.events.Publish(ctx, domain.NewProductEvent(uuid.NewString(), eventType, productID, product))
}

// invalidate удаляет товар из кэша. Ошибка кэша не влияет на результат операции.
func (p *ProductUseCase) invalidate(ctx context.Context, id int64) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to delete product from cache, product_id: %d: %v", id, err)
	}
}
