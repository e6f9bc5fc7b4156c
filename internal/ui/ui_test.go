package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateCall struct {
	id      int
	changes gqlclient.ProductChanges
}

// fakeAPI — CatalogAPI в памяти с записью вызовов.
type fakeAPI struct {
	mu          sync.Mutex
	products    map[int]gqlclient.Product
	failLoad    bool
	failUpdate  bool
	productCall []int
	updateCalls []updateCall
	addCalls    []gqlclient.ProductInput
	nextID      int
	removeCalls []int
	about       string
}

func newFakeAPI(products ...gqlclient.Product) *fakeAPI {
	f := &fakeAPI{products: map[int]gqlclient.Product{}, about: "Catalog"}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeAPI) About(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.about, true
}

func (f *fakeAPI) SetAboutMessage(_ context.Context, message string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.about = message
	return message, true
}

func (f *fakeAPI) ProductList(context.Context) ([]gqlclient.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]gqlclient.Product, 0, len(f.products))
	for id := 1; id <= 100; id++ {
		if p, ok := f.products[id]; ok {
			res = append(res, p)
		}
	}
	return res, true
}

func (f *fakeAPI) Product(_ context.Context, id int) (*gqlclient.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCall = append(f.productCall, id)
	if f.failLoad {
		return nil, false
	}
	p, ok := f.products[id]
	if !ok {
		return nil, true
	}
	return &p, true
}

func (f *fakeAPI) ProductAdd(_ context.Context, in gqlclient.ProductInput) (*gqlclient.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, in)

	f.nextID++
	for f.products[f.nextID].ID != 0 {
		f.nextID++
	}

	category := in.Category
	if category == "" {
		category = "Shirts"
	}
	p := gqlclient.Product{
		ID:          f.nextID,
		Category:    category,
		ProductName: in.ProductName,
		Price:       in.Price,
		ImagePath:   in.ImagePath,
		Created:     created,
	}
	f.products[p.ID] = p
	return &p, true
}

func (f *fakeAPI) adds() []gqlclient.ProductInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gqlclient.ProductInput(nil), f.addCalls...)
}

func (f *fakeAPI) ProductUpdate(_ context.Context, id int, changes gqlclient.ProductChanges) (*gqlclient.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, updateCall{id: id, changes: changes})
	if f.failUpdate {
		return nil, false
	}

	p := f.products[id]
	if changes.Category != nil {
		p.Category = *changes.Category
	}
	if changes.ProductName != nil {
		p.ProductName = *changes.ProductName
	}
	if changes.Price != nil {
		p.Price = *changes.Price
	}
	if changes.ImagePath != nil {
		p.ImagePath = *changes.ImagePath
	}
	f.products[id] = p
	return &p, true
}

func (f *fakeAPI) ProductRemove(_ context.Context, id int) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls = append(f.removeCalls, id)
	_, ok := f.products[id]
	delete(f.products, id)
	return ok, true
}

func (f *fakeAPI) updates() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updateCalls...)
}

var created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func tee() gqlclient.Product {
	return gqlclient.Product{ID: 1, Category: "Shirts", ProductName: "Tee", Price: 10, ImagePath: "/a.png", Created: created}
}

func jeans() gqlclient.Product {
	return gqlclient.Product{ID: 2, Category: "Jeans", ProductName: "Blue", Price: 59.5, ImagePath: "/b.png", Created: created}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// openLoaded открывает товар и доставляет ответ загрузки.
func openLoaded(t *testing.T, api *fakeAPI, id int) ProductEdit {
	t.Helper()

	m, cmd := NewProductEdit(api, DefaultStyles()).Open(id)
	require.Equal(t, EditLoading, m.State())
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	return m
}

func press(m ProductEdit, keys ...string) ProductEdit {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestProductEdit_LoadsIntoEditing(t *testing.T) {
	m := openLoaded(t, newFakeAPI(tee()), 1)

	assert.Equal(t, EditEditing, m.State())
	require.NotNil(t, m.Product())
	assert.Equal(t, "Tee", m.Product().ProductName)
	assert.True(t, m.Invalid().Empty())
	assert.Contains(t, m.View(), "Editing Product: Tee")
}

func TestProductEdit_NotFound(t *testing.T) {
	m := openLoaded(t, newFakeAPI(tee()), 7)

	assert.Equal(t, EditNotFound, m.State())
	assert.Nil(t, m.Product())
	assert.Contains(t, m.View(), "product with ID 7 not found.")
}

func TestProductEdit_LoadFailureShowsNotFound(t *testing.T) {
	api := newFakeAPI(tee())
	api.failLoad = true

	m := openLoaded(t, api, 1)

	assert.Equal(t, EditNotFound, m.State())
}

func TestProductEdit_StaleResponseDropped(t *testing.T) {
	api := newFakeAPI(tee(), jeans())
	m := NewProductEdit(api, DefaultStyles())

	m, first := m.Open(1)
	m, second := m.Open(2)

	m, _ = m.Update(second())
	m, _ = m.Update(first())

	require.Equal(t, EditEditing, m.State())
	assert.Equal(t, 2, m.ID())
	assert.Equal(t, 2, m.Product().ID)
	assert.Equal(t, "Blue", m.Product().ProductName)
}

func TestProductEdit_IDChangeReturnsToLoading(t *testing.T) {
	m := openLoaded(t, newFakeAPI(tee(), jeans()), 1)

	m, cmd := m.Open(2)

	assert.Equal(t, EditLoading, m.State())
	assert.Nil(t, m.Product())
	assert.NotNil(t, cmd)
}

func TestProductEdit_InvalidFieldBlocksSubmit(t *testing.T) {
	api := newFakeAPI(tee())
	m := openLoaded(t, api, 1)
	before := m.Product()

	// category -> product_name -> price, затем "10x"
	m = press(m, "tab", "tab", "x")
	require.True(t, m.Invalid().Has(fieldPrice))

	m, cmd := m.Submit()
	assert.Nil(t, cmd)
	m = press(m, "enter")

	assert.Empty(t, api.updates())
	assert.Same(t, before, m.Product())
	assert.Contains(t, m.View(), msgFixInvalid)
}

func TestProductEdit_FixingFieldClearsInvalid(t *testing.T) {
	m := openLoaded(t, newFakeAPI(tee()), 1)

	m = press(m, "tab", "tab", "x")
	require.True(t, m.Invalid().Has(fieldPrice))

	m = press(m, "backspace")
	assert.False(t, m.Invalid().Has(fieldPrice))
	assert.True(t, m.Invalid().Empty())
}

func TestProductEdit_SubmitSendsOnlyChangedFields(t *testing.T) {
	api := newFakeAPI(tee())
	m := openLoaded(t, api, 1)

	m = press(m, "tab", "!")
	m, cmd := m.Submit()
	require.NotNil(t, cmd)

	calls := api.updates()
	assert.Empty(t, calls)

	m, _ = m.Update(cmd())

	calls = api.updates()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].id)
	require.NotNil(t, calls[0].changes.ProductName)
	assert.Equal(t, "Tee!", *calls[0].changes.ProductName)
	assert.Nil(t, calls[0].changes.Category)
	assert.Nil(t, calls[0].changes.Price)
	assert.Nil(t, calls[0].changes.ImagePath)

	assert.Equal(t, "Tee!", m.Product().ProductName)
	assert.Equal(t, created, m.Product().Created)
}

func TestProductEdit_CategoryCycle(t *testing.T) {
	api := newFakeAPI(tee())
	m := openLoaded(t, api, 1)

	m = press(m, "right")
	m, cmd := m.Submit()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	calls := api.updates()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].changes.Category)
	assert.Equal(t, "Jeans", *calls[0].changes.Category)
	assert.Equal(t, "Jeans", m.Product().Category)
}

func TestProductEdit_UnchangedFormDoesNotSubmit(t *testing.T) {
	api := newFakeAPI(tee())
	m := openLoaded(t, api, 1)

	m, cmd := m.Submit()

	assert.Nil(t, cmd)
	assert.Empty(t, api.updates())
	assert.Equal(t, EditEditing, m.State())
}

func TestProductEdit_FailedSaveKeepsState(t *testing.T) {
	api := newFakeAPI(tee())
	api.failUpdate = true
	m := openLoaded(t, api, 1)
	before := m.Product()

	m = press(m, "tab", "!")
	m, cmd := m.Submit()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Len(t, api.updates(), 1)
	assert.Same(t, before, m.Product())
	assert.Equal(t, EditEditing, m.State())
	assert.Contains(t, m.View(), "Tee!")
}

func TestProductEdit_SaveForPreviousIDDropped(t *testing.T) {
	api := newFakeAPI(tee(), jeans())
	m := openLoaded(t, api, 1)

	m = press(m, "tab", "!")
	m, save := m.Submit()
	require.NotNil(t, save)

	m, load := m.Open(2)
	m, _ = m.Update(load())
	m, _ = m.Update(save())

	assert.Equal(t, "Blue", m.Product().ProductName)
}

func TestProductList_LoadOpenRemove(t *testing.T) {
	api := newFakeAPI(tee(), jeans())

	m, cmd := NewProductList(api, DefaultStyles()).Load()
	m, _ = m.Update(cmd())
	require.Len(t, m.Products(), 2)
	assert.Contains(t, m.View(), "Blue")

	m, cmd = m.Update(key("j"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, openEditMsg{id: 2}, cmd())

	m, cmd = m.Update(key("d"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	require.Len(t, m.Products(), 1)
	assert.Equal(t, 1, m.Products()[0].ID)
	assert.Contains(t, m.View(), "Product 2 removed.")
}

func TestProductList_RemoveIsIdempotent(t *testing.T) {
	api := newFakeAPI(tee())
	m := NewProductList(api, DefaultStyles())

	m, _ = m.Update(productRemovedMsg{id: 5, removed: false, ok: true})

	assert.Contains(t, m.View(), "Product 5 was already removed.")
}

func TestProductList_StaleLoadDropped(t *testing.T) {
	api := newFakeAPI(tee())
	m := NewProductList(api, DefaultStyles())

	m, first := m.Load()
	stale := first()

	api.products[2] = jeans()
	m, second := m.Load()

	m, _ = m.Update(second())
	m, _ = m.Update(stale)

	assert.Len(t, m.Products(), 2)
}

func TestModel_AlertAndNavigation(t *testing.T) {
	api := newFakeAPI(tee())
	alerts := NewAlertSink()

	root := New(api, alerts, 1)
	require.Equal(t, screenEdit, root.Screen())

	next, _ := root.Update(root.initCmd())
	root = next.(Model)
	assert.Equal(t, EditEditing, root.Edit().State())

	alerts.Alert("Product not found")
	next, cmd := root.Update(alerts.Wait()())
	root = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Product not found", root.Alert())
	assert.Contains(t, root.View(), "Product not found")

	next, cmd = root.Update(key("esc"))
	root = next.(Model)
	assert.Empty(t, root.Alert())
	require.NotNil(t, cmd)

	next, cmd = root.Update(cmd())
	root = next.(Model)
	assert.Equal(t, screenList, root.Screen())
	require.NotNil(t, cmd)

	next, _ = root.Update(cmd())
	root = next.(Model)
	assert.Len(t, root.List().Products(), 1)
	assert.True(t, strings.Contains(root.View(), "Tee"))
}

func typeInto(m ProductAdd, keys ...string) ProductAdd {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestProductAdd_InvalidPriceBlocksSubmit(t *testing.T) {
	api := newFakeAPI()
	m, _ := NewProductAdd(api, DefaultStyles()).Open()

	// category -> product_name -> price, затем "0x"
	m = typeInto(m, "tab", "tab", "x")
	require.True(t, m.Invalid().Has(fieldPrice))

	m, cmd := m.Submit()
	assert.Nil(t, cmd)
	m = typeInto(m, "enter")

	assert.Empty(t, api.adds())
	assert.Contains(t, m.View(), msgFixInvalid)
}

func TestProductAdd_SubmitCreatesAndReturnsToList(t *testing.T) {
	api := newFakeAPI(tee())
	m, _ := NewProductAdd(api, DefaultStyles()).Open()

	m = typeInto(m, "right", "tab", "P", "a", "r", "k", "a", "tab", "backspace", "9", "9", ".", "5", "tab", "/", "p", ".", "p", "n", "g")
	require.True(t, m.Invalid().Empty())

	m, cmd := m.Submit()
	require.NotNil(t, cmd)

	m, back := m.Update(cmd())
	require.NotNil(t, back)
	assert.Equal(t, backMsg{}, back())

	adds := api.adds()
	require.Len(t, adds, 1)
	assert.Equal(t, gqlclient.ProductInput{Category: "Jeans", ProductName: "Parka", Price: 99.5, ImagePath: "/p.png"}, adds[0])
	assert.True(t, m.Invalid().Empty())
}

func TestModel_AddFromListReloadsList(t *testing.T) {
	api := newFakeAPI(tee())
	root := New(api, NewAlertSink(), 0)

	next, _ := root.Update(root.initCmd())
	root = next.(Model)
	require.Len(t, root.List().Products(), 1)

	next, cmd := root.Update(key("n"))
	root = next.(Model)
	require.NotNil(t, cmd)
	next, _ = root.Update(cmd())
	root = next.(Model)
	require.Equal(t, screenAdd, root.Screen())

	for _, k := range []string{"tab", "J", "a", "c", "k"} {
		next, _ = root.Update(key(k))
		root = next.(Model)
	}

	next, cmd = root.Update(key("enter"))
	root = next.(Model)
	require.NotNil(t, cmd)

	next, cmd = root.Update(cmd())
	root = next.(Model)
	require.NotNil(t, cmd)

	next, cmd = root.Update(cmd())
	root = next.(Model)
	require.Equal(t, screenList, root.Screen())
	require.NotNil(t, cmd)

	next, _ = root.Update(cmd())
	root = next.(Model)
	require.Len(t, root.List().Products(), 2)
	assert.Equal(t, "Jack", root.List().Products()[1].ProductName)
	assert.Equal(t, 0.0, root.List().Products()[1].Price)
}

func TestInvalidFieldSet(t *testing.T) {
	s := InvalidFieldSet{}
	assert.True(t, s.Empty())

	s.Set(fieldPrice, true)
	s.Set(fieldCategory, true)
	assert.Equal(t, []string{fieldCategory, fieldPrice}, s.Fields())

	s.Set(fieldPrice, false)
	assert.False(t, s.Has(fieldPrice))
	assert.Len(t, s, 1)
}
