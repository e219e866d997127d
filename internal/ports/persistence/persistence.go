package persistence

import "context"

// Persistence запросы к хранилищу, которыми пользуются репозитории.
// Все изменения данных в приложении укладываются в один запрос, транзакции не нужны
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	// ExecWithResult возвращает количество затронутых строк
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
}
