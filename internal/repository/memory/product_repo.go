package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/jimlawless/whereami"
)

// ProductRepo хранит товары в памяти процесса.
// Все записи проходят под одним мьютексом, ID выдаются монотонно и не переиспользуются.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	order    []int64 // ID в порядке добавления
	lastID   int64
	now      func() time.Time
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: make(map[int64]domain.Product),
		now:      time.Now,
	}
}

// List возвращает копию всех товаров в порядке добавления.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, r.products[id])
	}

	return res, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return &product, nil
}

// Create назначает товару следующий ID и время создания.
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	created := *product
	created.ID = r.lastID
	created.CreatedAt = r.now().UTC()

	r.products[created.ID] = created
	r.order = append(r.order, created.ID)

	return &created, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, changes *domain.ProductChanges) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	updated := changes.Apply(current)
	r.products[id] = updated

	return &updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}

	delete(r.products, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true, nil
}
