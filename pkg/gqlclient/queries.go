package gqlclient

import (
	"context"
	"time"
)

// Categories — значения enum Category в порядке схемы.
var Categories = []string{"Shirts", "Jeans", "Jackets", "Sweaters", "Accessories"}

type Product struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	ImagePath   string    `json:"image_path"`
	Created     time.Time `json:"created"`
}

// ProductInput — поля нового товара; пустая категория означает значение по умолчанию.
type ProductInput struct {
	Category    string  `json:"category,omitempty"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	ImagePath   string  `json:"image_path"`
}

// ProductChanges — изменённые поля товара. id и created сюда не входят.
type ProductChanges struct {
	Category    *string  `json:"category,omitempty"`
	ProductName *string  `json:"product_name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImagePath   *string  `json:"image_path,omitempty"`
}

// IsEmpty сообщает, что менять нечего.
func (c ProductChanges) IsEmpty() bool {
	return c.Category == nil && c.ProductName == nil && c.Price == nil && c.ImagePath == nil
}

const productFields = `id category product_name price image_path created`

func (c *Client) About(ctx context.Context) (string, bool) {
	var out struct {
		About string `json:"about"`
	}
	if !c.fetchInto(ctx, `query { about }`, nil, &out) {
		return "", false
	}
	return out.About, true
}

func (c *Client) SetAboutMessage(ctx context.Context, message string) (string, bool) {
	var out struct {
		SetAboutMessage string `json:"setAboutMessage"`
	}
	query := `mutation setAboutMessage($message: String!) { setAboutMessage(message: $message) }`
	if !c.fetchInto(ctx, query, map[string]interface{}{"message": message}, &out) {
		return "", false
	}
	return out.SetAboutMessage, true
}

func (c *Client) ProductList(ctx context.Context) ([]Product, bool) {
	var out struct {
		ProductList []Product `json:"productList"`
	}
	if !c.fetchInto(ctx, `query { productList { `+productFields+` } }`, nil, &out) {
		return nil, false
	}
	return out.ProductList, true
}

// Product возвращает товар по id. (nil, true) — товара нет.
func (c *Client) Product(ctx context.Context, id int) (*Product, bool) {
	var out struct {
		Product *Product `json:"product"`
	}
	query := `query product($id: Int!) { product(id: $id) { ` + productFields + ` } }`
	if !c.fetchInto(ctx, query, map[string]interface{}{"id": id}, &out) {
		return nil, false
	}
	return out.Product, true
}

func (c *Client) ProductAdd(ctx context.Context, in ProductInput) (*Product, bool) {
	var out struct {
		ProductAdd *Product `json:"productAdd"`
	}
	query := `mutation productAdd($product: ProductInputs!) { productAdd(product: $product) { ` + productFields + ` } }`
	if !c.fetchInto(ctx, query, map[string]interface{}{"product": in}, &out) {
		return nil, false
	}
	return out.ProductAdd, true
}

func (c *Client) ProductUpdate(ctx context.Context, id int, changes ProductChanges) (*Product, bool) {
	var out struct {
		ProductUpdate *Product `json:"productUpdate"`
	}
	query := `mutation productUpdate($id: Int!, $changes: ProductUpdateProducts!) {
		productUpdate(id: $id, changes: $changes) { ` + productFields + ` }
	}`
	if !c.fetchInto(ctx, query, map[string]interface{}{"id": id, "changes": changes}, &out) {
		return nil, false
	}
	return out.ProductUpdate, out.ProductUpdate != nil
}

// ProductRemove возвращает (removed, ok). removed=false при ok=true — товара уже не было.
func (c *Client) ProductRemove(ctx context.Context, id int) (bool, bool) {
	var out struct {
		ProductRemove bool `json:"productRemove"`
	}
	query := `mutation productRemove($id: Int!) { productRemove(id: $id) }`
	if !c.fetchInto(ctx, query, map[string]interface{}{"id": id}, &out) {
		return false, false
	}
	return out.ProductRemove, true
}
