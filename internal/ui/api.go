package ui

import (
	"context"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
)

// requestTimeout ограничивает один запрос к шлюзу из интерфейса.
const requestTimeout = 10 * time.Second

// CatalogAPI — операции шлюза, которые нужны экранам. Реализуется *gqlclient.Client.
// Об ошибках реализация сообщает сама (через Alerter), экраны получают только ok=false.
type CatalogAPI interface {
	About(ctx context.Context) (string, bool)
	SetAboutMessage(ctx context.Context, message string) (string, bool)
	ProductList(ctx context.Context) ([]gqlclient.Product, bool)
	Product(ctx context.Context, id int) (*gqlclient.Product, bool)
	ProductAdd(ctx context.Context, in gqlclient.ProductInput) (*gqlclient.Product, bool)
	ProductUpdate(ctx context.Context, id int, changes gqlclient.ProductChanges) (*gqlclient.Product, bool)
	ProductRemove(ctx context.Context, id int) (bool, bool)
}

func requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
