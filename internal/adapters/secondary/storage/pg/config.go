package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	maxOpenConnections            = 25
	maxIdleConnections            = 5
	connMaxLifetime               = 5 * time.Minute
	connMaxIdleTime               = 1 * time.Minute
	defaultStatementTimeoutMillis = 60000
	connectTimeout                = 10 * time.Second
)

// Config подключение к PostgreSQL. Без HOST сервис работает на in-memory хранилище
type Config struct {
	Host                   string `envconfig:"HOST"`
	Port                   string `envconfig:"PORT" default:"5432"`
	Username               string `envconfig:"USERNAME"`
	Password               string `envconfig:"PASSWORD"`
	Database               string `envconfig:"DATABASE"`
	SSLMode                string `envconfig:"SSL_MODE" default:"disable"`
	StatementTimeoutMillis int    `envconfig:"STATEMENT_TIMEOUT" default:"60000"`
	MigrateOnStart         bool   `envconfig:"MIGRATE_ON_START" default:"true"`
}

// Enabled true, если база настроена
func (c *Config) Enabled() bool {
	return c != nil && c.Host != ""
}

func (c *Config) toPgConnection() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host,
		c.Port,
		c.Username,
		c.Database,
		c.Password,
		c.SSLMode,
	)
}

// NewConnection создает новое подключение к базе данных с настройками пула и statement_timeout
func (c *Config) NewConnection(ctx context.Context) (*sqlx.DB, error) {
	connectionConfig, err := pgx.ParseConfig(c.toPgConnection())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	timeout := c.StatementTimeoutMillis
	if timeout <= 0 {
		timeout = defaultStatementTimeoutMillis
	}
	// runtime params применяются к каждому соединению пула, а не только к первому
	connectionConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", timeout)

	connectionString := stdlib.RegisterConnConfig(connectionConfig)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, "pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("connect db error: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	return db, nil
}
