package graphql

import (
	_ "embed"

	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	gql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema разбирает встроенную схему и привязывает к ней резолверы.
func NewSchema(productUC usecase.ProductUC, aboutUC usecase.AboutUC, logger logger.Logger, maxParallelism int) (*gql.Schema, error) {
	opts := []gql.SchemaOpt{
		gql.MaxParallelism(maxParallelism),
	}

	return gql.ParseSchema(schemaSDL, NewResolver(productUC, aboutUC, logger), opts...)
}
