package graphql

import (
	"context"
	"fmt"
	"math"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
)

// Resolver — корневой резолвер Query и Mutation.
type Resolver struct {
	productUC usecase.ProductUC
	aboutUC   usecase.AboutUC
	logger    logger.Logger
}

func NewResolver(productUC usecase.ProductUC, aboutUC usecase.AboutUC, logger logger.Logger) *Resolver {
	return &Resolver{
		productUC: productUC,
		aboutUC:   aboutUC,
		logger:    logger,
	}
}

// QUERY

func (r *Resolver) About(ctx context.Context) (string, error) {
	msg, err := r.aboutUC.GetMessage(ctx)
	if err != nil {
		return "", toGraphQLError(err)
	}

	return msg, nil
}

func (r *Resolver) ProductList(ctx context.Context) ([]*productResolver, error) {
	products, err := r.productUC.List(ctx)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	res := make([]*productResolver, len(products))
	for i := range products {
		res[i] = &productResolver{p: products[i]}
	}

	return res, nil
}

func (r *Resolver) Product(ctx context.Context, args struct{ ID int32 }) (*productResolver, error) {
	product, err := r.productUC.Get(ctx, int64(args.ID))
	if err != nil {
		return nil, toGraphQLError(err)
	}
	if product == nil {
		return nil, nil
	}

	return &productResolver{p: *product}, nil
}

// MUTATION

func (r *Resolver) SetAboutMessage(ctx context.Context, args struct{ Message string }) (*string, error) {
	msg, err := r.aboutUC.SetMessage(ctx, args.Message)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	return &msg, nil
}

// productInputs: у category в схеме есть значение по умолчанию, поэтому поле не указатель.
type productInputs struct {
	Category    string
	ProductName *string
	Price       *float64
	ImagePath   *string
}

func (r *Resolver) ProductAdd(ctx context.Context, args struct{ Product productInputs }) (*productResolver, error) {
	in := args.Product
	req := usecase.NewAddProductReq(in.Category, deref(in.ProductName), deref(in.Price), deref(in.ImagePath))

	product, err := r.productUC.Add(ctx, req)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	return &productResolver{p: *product}, nil
}

type productUpdateProducts struct {
	Category    *string
	ProductName *string
	Price       *float64
	ImagePath   *string
}

func (r *Resolver) ProductUpdate(ctx context.Context, args struct {
	ID      int32
	Changes productUpdateProducts
}) (*productResolver, error) {
	changes := &domain.ProductChanges{
		Name:      args.Changes.ProductName,
		Price:     args.Changes.Price,
		ImagePath: args.Changes.ImagePath,
	}
	if args.Changes.Category != nil {
		c := domain.Category(*args.Changes.Category)
		changes.Category = &c
	}

	product, err := r.productUC.Update(ctx, int64(args.ID), changes)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	return &productResolver{p: *product}, nil
}

func (r *Resolver) ProductRemove(ctx context.Context, args struct{ ID int32 }) (*bool, error) {
	removed, err := r.productUC.Remove(ctx, int64(args.ID))
	if err != nil {
		return nil, toGraphQLError(err)
	}

	return &removed, nil
}

// productResolver отдаёт поля типа Product.
type productResolver struct {
	p domain.Product
}

func (p *productResolver) ID() (int32, error) {
	if p.p.ID > math.MaxInt32 || p.p.ID < math.MinInt32 {
		return 0, toGraphQLError(fmt.Errorf("product id %d overflows Int", p.p.ID))
	}
	return int32(p.p.ID), nil
}

func (p *productResolver) Category() string {
	return string(p.p.Category)
}

func (p *productResolver) ProductName() *string {
	return &p.p.Name
}

func (p *productResolver) Price() *float64 {
	return &p.p.Price
}

func (p *productResolver) ImagePath() *string {
	return &p.p.ImagePath
}

func (p *productResolver) Created() GraphQLDate {
	return GraphQLDate{Time: p.p.CreatedAt}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
