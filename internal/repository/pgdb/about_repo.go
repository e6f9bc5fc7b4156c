package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// AboutRepo хранит about-сообщение в однострочной таблице about.
type AboutRepo struct {
	pool    *pgxpool.Pool
	initial string
}

// NewAboutRepo создаёт репозиторий; initial возвращается, пока сообщение ни разу не записано.
func NewAboutRepo(pool *pgxpool.Pool, initial string) *AboutRepo {
	return &AboutRepo{
		pool:    pool,
		initial: initial,
	}
}

func (a *AboutRepo) Get(ctx context.Context) (string, error) {
	var message string
	err := a.pool.QueryRow(ctx, `SELECT message FROM about WHERE id = 1`).Scan(&message)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a.initial, nil
		}
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return message, nil
}

func (a *AboutRepo) Set(ctx context.Context, message string) (string, error) {
	query := `
		INSERT INTO about (id, message)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET
			message = EXCLUDED.message,
			updated_at = NOW()
		RETURNING message
	`

	var stored string
	if err := a.pool.QueryRow(ctx, query, message).Scan(&stored); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return stored, nil
}
