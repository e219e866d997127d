package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	ports "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"

	"log/slog"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation код ошибки Postgres при нарушении уникального индекса
const uniqueViolation = "23505"

type userColumns struct {
	TableName             string
	ID                    string
	Name                  string
	Email                 string
	PasswordHash          string
	Provider              string
	SubscriptionStatus    string
	SubscriptionExpiresAt string
	Settings              string
	CreatedAt             string
	UpdatedAt             string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName:             "users",
		ID:                    "id",
		Name:                  "name",
		Email:                 "email",
		PasswordHash:          "password_hash",
		Provider:              "provider",
		SubscriptionStatus:    "subscription_status",
		SubscriptionExpiresAt: "subscription_expires_at",
		Settings:              "settings",
		CreatedAt:             "created_at",
		UpdatedAt:             "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (10 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Name,
		r.columns.Email,
		r.columns.PasswordHash,
		r.columns.Provider,
		r.columns.SubscriptionStatus,
		r.columns.SubscriptionExpiresAt,
		r.columns.Settings,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Create создаёт нового пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Provider),
		string(user.SubscriptionStatus),
		user.SubscriptionExpiresAt,
		user.Settings,
		user.CreatedAt,
		user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.Log.Warn("user email already registered", "email", user.Email)
			return fmt.Errorf("user %s: %w", user.Email, domain.ErrAlreadyExists)
		}
		r.Log.Error("failed to create user",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.Log.Debug("user created successfully",
		"id", user.ID,
		"provider", user.Provider)
	return nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "user_id", id)
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by id",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	r.Log.Debug("user retrieved successfully", "user_id", id)
	return &user, nil
}

// GetByEmail получает пользователя по email без учёта регистра
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Email)
	err := r.db.Get(ctx, &user, query, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("user not found by email", "email", email)
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// Update обновляет профиль, подписку и настройки пользователя
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`UPDATE %s SET 
		%s = $2, %s = $3, %s = $4, %s = $5, 
		%s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		r.columns.TableName,
		r.columns.Name,
		r.columns.Email,
		r.columns.PasswordHash,
		r.columns.Provider,
		r.columns.SubscriptionStatus,
		r.columns.SubscriptionExpiresAt,
		r.columns.Settings,
		r.columns.UpdatedAt,
		r.columns.ID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Provider),
		string(user.SubscriptionStatus),
		user.SubscriptionExpiresAt,
		user.Settings,
		user.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to update user",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for update", "user_id", user.ID)
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	r.Log.Debug("user updated successfully", "user_id", user.ID, "rowsAffected", rowsAffected)
	return nil
}
