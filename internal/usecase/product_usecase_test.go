package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/repository/memory"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/DRSN-tech/catalog-admin/pkg/tr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- FAKES ---

type fakeCache struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	deleted  []int64
	getErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: make(map[int64]domain.Product)}
}

func (f *fakeCache) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeCache) SetProduct(_ context.Context, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = product
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

func (f *fakeCache) has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.products[id]
	return ok
}

type fakePublisher struct {
	events []*domain.ProductEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event *domain.ProductEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func newTestUC() (*ProductUseCase, *memory.ProductRepo, *fakeCache, *fakePublisher) {
	repo := memory.NewProductRepo()
	cache := newFakeCache()
	pub := &fakePublisher{}
	return NewProductUC(repo, cache, tr.NopRunner{}, pub, logger.NewNopLogger()), repo, cache, pub
}

func addTee(t *testing.T, uc *ProductUseCase) *domain.Product {
	t.Helper()
	p, err := uc.Add(context.Background(), NewAddProductReq("Shirts", "Tee", 10, "/a.png"))
	require.NoError(t, err)
	return p
}

// --- TESTS ---

func TestProductUseCase_AddThenGet(t *testing.T) {
	uc, _, _, pub := newTestUC()

	created := addTee(t, uc)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.ProductCreated, pub.events[0].Type)
	assert.Equal(t, created.ID, pub.events[0].ProductID)
}

func TestProductUseCase_AddMonotonicIDs(t *testing.T) {
	uc, _, _, _ := newTestUC()

	var last int64
	for i := 0; i < 5; i++ {
		p := addTee(t, uc)
		assert.Greater(t, p.ID, last)
		last = p.ID
	}
}

func TestProductUseCase_AddDefaultsCategory(t *testing.T) {
	uc, _, _, _ := newTestUC()

	p, err := uc.Add(context.Background(), NewAddProductReq("", "Belt", 5, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategory, p.Category)
}

func TestProductUseCase_AddValidation(t *testing.T) {
	uc, repo, _, pub := newTestUC()

	_, err := uc.Add(context.Background(), NewAddProductReq("Hats", "Cap", 5, ""))
	assert.ErrorIs(t, err, e.ErrInvalidCategory)

	_, err = uc.Add(context.Background(), NewAddProductReq("Shirts", "Tee", -1, ""))
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, pub.events)
}

func TestProductUseCase_GetMissingReturnsNil(t *testing.T) {
	uc, _, _, _ := newTestUC()

	got, err := uc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductUseCase_GetFillsCache(t *testing.T) {
	uc, _, cache, _ := newTestUC()
	created := addTee(t, uc)

	_, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return cache.has(created.ID) }, time.Second, 10*time.Millisecond)
}

func TestProductUseCase_GetFallsBackOnCacheError(t *testing.T) {
	uc, _, cache, _ := newTestUC()
	created := addTee(t, uc)
	cache.getErr = errors.New("redis down")

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestProductUseCase_UpdateNeverTouchesIdentity(t *testing.T) {
	uc, _, cache, pub := newTestUC()
	created := addTee(t, uc)

	price := 12.0
	updated, err := uc.Update(context.Background(), created.ID, &domain.ProductChanges{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, created.Name, updated.Name)
	assert.Contains(t, cache.deleted, created.ID)
	assert.Equal(t, domain.ProductUpdated, pub.events[len(pub.events)-1].Type)
}

func TestProductUseCase_UpdateMissing(t *testing.T) {
	uc, repo, _, pub := newTestUC()
	addTee(t, uc)
	before, err := repo.List(context.Background())
	require.NoError(t, err)

	price := 12.0
	_, err = uc.Update(context.Background(), 5, &domain.ProductChanges{Price: &price})
	require.ErrorIs(t, err, e.ErrProductNotFound)

	after, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, pub.events, 1, "only the create event")
}

func TestProductUseCase_UpdateEmptyChanges(t *testing.T) {
	uc, _, _, pub := newTestUC()
	created := addTee(t, uc)

	got, err := uc.Update(context.Background(), created.ID, &domain.ProductChanges{})
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Len(t, pub.events, 1)

	_, err = uc.Update(context.Background(), 99, nil)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestProductUseCase_UpdateInvalidPrice(t *testing.T) {
	uc, _, _, _ := newTestUC()
	created := addTee(t, uc)

	price := 1.005
	_, err := uc.Update(context.Background(), created.ID, &domain.ProductChanges{Price: &price})
	assert.ErrorIs(t, err, e.ErrPricePrecision)
}

func TestProductUseCase_RemoveIdempotent(t *testing.T) {
	uc, _, _, pub := newTestUC()
	created := addTee(t, uc)

	removed, err := uc.Remove(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = uc.Remove(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	require.Len(t, pub.events, 2)
	assert.Equal(t, domain.ProductRemoved, pub.events[1].Type)
	assert.Nil(t, pub.events[1].Product)
}

func TestProductUseCase_PublishFailureFailsMutation(t *testing.T) {
	uc, _, _, pub := newTestUC()
	pub.err = errors.New("outbox insert failed")

	_, err := uc.Add(context.Background(), NewAddProductReq("Shirts", "Tee", 10, ""))
	assert.Error(t, err)
}

func TestAboutUseCase_SetThenGet(t *testing.T) {
	uc := NewAboutUC(memory.NewAboutRepo("initial"), logger.NewNopLogger())

	msg, err := uc.GetMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "initial", msg)

	set, err := uc.SetMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", set)

	msg, err = uc.GetMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", msg)
}
