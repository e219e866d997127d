package pg

import (
	"context"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/persistence"
	"github.com/jmoiron/sqlx"
)

// DB обёртка над sqlx.DB для репозиториев
type DB struct {
	Db *sqlx.DB
}

var _ persistence.Persistence = (*DB)(nil)

func NewDB(db *sqlx.DB) *DB {
	return &DB{Db: db}
}

// Ping проверяет соединение, используется в readiness-пробе
func (d *DB) Ping(ctx context.Context) error {
	return d.Db.PingContext(ctx)
}

// Get одна запись в структуру
func (d *DB) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.Db.GetContext(ctx, dest, query, args...)
}

// Select все записи в слайс
func (d *DB) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.Db.SelectContext(ctx, dest, query, args...)
}

func (d *DB) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := d.Db.ExecContext(ctx, query, args...)
	return err
}

func (d *DB) ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := d.Db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
