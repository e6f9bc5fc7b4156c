package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, category, product_name, price, image_path, created_at, updated_at`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Чтение идёт через пул, изменения только внутри транзакции из контекста.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает все товары по возрастанию ID.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var model converter.ProductModel
	if err := scanProduct(p.pool.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create вставляет товар. ID и created_at назначает база (BIGSERIAL и DEFAULT NOW()).
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (category, product_name, price, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	model := p.conv.ToModel(product)
	if err := scanProduct(
		tx.QueryRow(ctx, query, model.Category, model.Name, model.Price, model.ImagePath),
		model,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Update блокирует строку (FOR UPDATE), применяет изменения и сохраняет результат.
// id и created_at не перезаписываются.
func (p *ProductRepo) Update(ctx context.Context, id int64, changes *domain.ProductChanges) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	selectQuery := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	var current converter.ProductModel
	if err := scanProduct(tx.QueryRow(ctx, selectQuery, id), &current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	applied := changes.Apply(*p.conv.ToEntity(&current))
	merged := p.conv.ToModel(&applied)

	updateQuery := `
		UPDATE products
		SET category = $2, product_name = $3, price = $4, image_path = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var model converter.ProductModel
	if err := scanProduct(
		tx.QueryRow(ctx, updateQuery, id, merged.Category, merged.Name, merged.Price, merged.ImagePath),
		&model,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete удаляет товар; false, если строки не было.
func (p *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID,
		&model.Category,
		&model.Name,
		&model.Price,
		&model.ImagePath,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}
