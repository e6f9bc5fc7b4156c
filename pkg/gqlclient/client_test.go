package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingAlerter) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingAlerter) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// newServer поднимает шлюз, который отвечает body и запоминает последний запрос.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *gqlRequest) {
	t.Helper()

	var last gqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&last))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &last
}

func TestFetch_ReturnsData(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"data":{"about":"Catalog v1"}}`)
	alerts := &recordingAlerter{}

	data := New(srv.URL, alerts).Fetch(context.Background(), "query { about }", map[string]interface{}{"x": 1})

	require.NotNil(t, data)
	assert.JSONEq(t, `{"about":"Catalog v1"}`, string(data))
	assert.Empty(t, alerts.all())
	assert.Equal(t, "query { about }", req.Query)
	assert.EqualValues(t, 1, req.Variables["x"])
}

func TestFetch_ReportsFirstGraphQLError(t *testing.T) {
	body := `{"errors":[{"message":"Invalid price: must be a non-negative number","path":["productAdd"]},{"message":"second"}]}`
	srv, _ := newServer(t, http.StatusOK, body)
	alerts := &recordingAlerter{}

	data := New(srv.URL, alerts).Fetch(context.Background(), "mutation { x }", nil)

	assert.Nil(t, data)
	assert.Equal(t, []string{"Invalid price: must be a non-negative number"}, alerts.all())
}

func TestFetch_ErrorsOnBadRequestStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"errors":[{"message":"query is required"}]}`)
	alerts := &recordingAlerter{}

	data := New(srv.URL, alerts).Fetch(context.Background(), "", nil)

	assert.Nil(t, data)
	assert.Equal(t, []string{"query is required"}, alerts.all())
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	alerts := &recordingAlerter{}
	data := New(url, alerts).Fetch(context.Background(), "query { about }", nil)

	assert.Nil(t, data)
	got := alerts.all()
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "Error in sending data to server: "), got[0])
}

func TestFetch_MalformedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `not json`)
	alerts := &recordingAlerter{}

	data := New(srv.URL, alerts).Fetch(context.Background(), "query { about }", nil)

	assert.Nil(t, data)
	got := alerts.all()
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "Error in sending data to server: "), got[0])
}

func TestProduct_NullMeansMissing(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"data":{"product":null}}`)
	alerts := &recordingAlerter{}

	product, ok := New(srv.URL, alerts).Product(context.Background(), 42)

	assert.True(t, ok)
	assert.Nil(t, product)
	assert.Empty(t, alerts.all())
	assert.EqualValues(t, 42, req.Variables["id"])
}

func TestProduct_DecodesFields(t *testing.T) {
	body := `{"data":{"product":{"id":1,"category":"Jeans","product_name":"Blue","price":59.5,` +
		`"image_path":"/images/a.png","created":"2024-03-01T10:20:30.000Z"}}}`
	srv, _ := newServer(t, http.StatusOK, body)

	product, ok := New(srv.URL, &recordingAlerter{}).Product(context.Background(), 1)

	require.True(t, ok)
	require.NotNil(t, product)
	assert.Equal(t, 1, product.ID)
	assert.Equal(t, "Jeans", product.Category)
	assert.Equal(t, "Blue", product.ProductName)
	assert.Equal(t, 59.5, product.Price)
	assert.Equal(t, "/images/a.png", product.ImagePath)
	assert.Equal(t, 2024, product.Created.Year())
}

func TestProductUpdate_SendsOnlyChangedFields(t *testing.T) {
	body := `{"data":{"productUpdate":{"id":3,"category":"Shirts","product_name":"New","price":10,` +
		`"image_path":"","created":"2024-03-01T10:20:30.000Z"}}}`
	srv, req := newServer(t, http.StatusOK, body)

	name := "New"
	product, ok := New(srv.URL, &recordingAlerter{}).ProductUpdate(context.Background(), 3, ProductChanges{ProductName: &name})

	require.True(t, ok)
	assert.Equal(t, "New", product.ProductName)

	changes, isMap := req.Variables["changes"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, map[string]interface{}{"product_name": "New"}, changes)
}

func TestProductAdd(t *testing.T) {
	body := `{"data":{"productAdd":{"id":4,"category":"Shirts","product_name":"Tee","price":10,` +
		`"image_path":"/a.png","created":"2024-03-01T10:20:30.000Z"}}}`
	srv, req := newServer(t, http.StatusOK, body)
	alerts := &recordingAlerter{}

	product, ok := New(srv.URL, alerts).ProductAdd(context.Background(), ProductInput{ProductName: "Tee", Price: 10, ImagePath: "/a.png"})

	require.True(t, ok)
	require.NotNil(t, product)
	assert.Equal(t, 4, product.ID)
	assert.Equal(t, "Shirts", product.Category)
	assert.Empty(t, alerts.all())

	assert.Contains(t, req.Query, "productAdd(product: $product)")
	in, isMap := req.Variables["product"].(map[string]interface{})
	require.True(t, isMap)
	assert.Equal(t, map[string]interface{}{"product_name": "Tee", "price": 10.0, "image_path": "/a.png"}, in)
}

func TestProductAdd_ValidationErrorReported(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"errors":[{"message":"Invalid price: must be a non-negative number","path":["productAdd"]}],"data":null}`)
	alerts := &recordingAlerter{}

	product, ok := New(srv.URL, alerts).ProductAdd(context.Background(), ProductInput{Price: -1})

	assert.False(t, ok)
	assert.Nil(t, product)
	assert.Equal(t, []string{"Invalid price: must be a non-negative number"}, alerts.all())
}

func TestProductRemove(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"productRemove":false}}`)

	removed, ok := New(srv.URL, &recordingAlerter{}).ProductRemove(context.Background(), 9)

	assert.True(t, ok)
	assert.False(t, removed)
}

func TestProductChanges_IsEmpty(t *testing.T) {
	assert.True(t, ProductChanges{}.IsEmpty())
	price := 1.0
	assert.False(t, ProductChanges{Price: &price}.IsEmpty())
}
