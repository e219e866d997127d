package paymentRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ports "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"

	"log/slog"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/persistence"
	"github.com/google/uuid"
)

type paymentColumns struct {
	TableName    string
	ID           string
	UserID       string
	PlanID       string
	PredictionID string
	Amount       string
	Currency     string
	Method       string
	ProviderID   string
	Status       string
	Metadata     string
	CreatedAt    string
	SucceededAt  string
	FailedAt     string
	ErrorMessage string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns paymentColumns
}

// New создаёт новый репозиторий для работы с платежами
func New(db persistence.Persistence, log *slog.Logger) ports.IPaymentRepo {
	cols := paymentColumns{
		TableName:    "payments",
		ID:           "id",
		UserID:       "user_id",
		PlanID:       "plan_id",
		PredictionID: "prediction_id",
		Amount:       "amount",
		Currency:     "currency",
		Method:       "method",
		ProviderID:   "provider_id",
		Status:       "status",
		Metadata:     "metadata",
		CreatedAt:    "created_at",
		SucceededAt:  "succeeded_at",
		FailedAt:     "failed_at",
		ErrorMessage: "error_message",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (14 полей)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.PlanID,
		r.columns.PredictionID,
		r.columns.Amount,
		r.columns.Currency,
		r.columns.Method,
		r.columns.ProviderID,
		r.columns.Status,
		r.columns.Metadata,
		r.columns.CreatedAt,
		r.columns.SucceededAt,
		r.columns.FailedAt,
		r.columns.ErrorMessage,
	)
}

// Create создаёт новый платёж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	// Сериализуем metadata через Value() (реализует driver.Valuer)
	metadataValue, err := payment.Metadata.Value()
	if err != nil {
		r.Log.Error("failed to marshal payment metadata",
			"error", err,
			"payment_id", payment.ID,
		)
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.columns.TableName,
		r.allColumns(),
	)

	err = r.db.Exec(ctx, query,
		payment.ID,
		payment.UserID,
		string(payment.PlanID),
		payment.PredictionID,
		payment.Amount,
		payment.Currency,
		string(payment.Method),
		payment.ProviderID,
		string(payment.Status),
		metadataValue,
		payment.CreatedAt,
		payment.SucceededAt,
		payment.FailedAt,
		payment.ErrorMessage,
	)
	if err != nil {
		r.Log.Error("failed to create payment",
			"error", err,
			"payment_id", payment.ID,
			"user_id", payment.UserID,
		)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.Log.Debug("payment created successfully",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"amount", payment.Amount,
	)
	return nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID,
	)

	err := r.db.Get(ctx, &payment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("payment not found", "payment_id", id)
			return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get payment",
			"error", err,
			"payment_id", id,
		)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	r.Log.Debug("payment retrieved successfully", "payment_id", id)
	return &payment, nil
}

// Settle переводит платёж из pending в финальный статус.
// Условие на статус в UPDATE делает повторное применение события безопасным
func (r *Repository) Settle(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, at time.Time, errorMessage *string) (bool, error) {
	var succeededAt, failedAt *time.Time
	if status == domain.PaymentStatusSucceeded {
		succeededAt = &at
	} else {
		failedAt = &at
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5 AND %s = $6`,
		r.columns.TableName,
		r.columns.Status,
		r.columns.SucceededAt,
		r.columns.FailedAt,
		r.columns.ErrorMessage,
		r.columns.ID,
		r.columns.Status,
	)

	rowsAffected, err := r.db.ExecWithResult(ctx, query,
		string(status), succeededAt, failedAt, errorMessage, id, string(domain.PaymentStatusPending))
	if err != nil {
		r.Log.Error("failed to settle payment",
			"error", err,
			"payment_id", id,
			"status", status,
		)
		return false, fmt.Errorf("failed to settle payment: %w", err)
	}

	if rowsAffected == 0 {
		r.Log.Debug("payment is not pending, settle skipped", "payment_id", id)
		return false, nil
	}

	r.Log.Debug("payment settled",
		"payment_id", id,
		"status", status,
	)
	return true, nil
}

// ListPending pending платежи, созданные не позже before, старые первыми
func (r *Repository) ListPending(ctx context.Context, before time.Time, limit int) ([]*domain.Payment, error) {
	var payments []*domain.Payment

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s 
		WHERE %s = $1 
		  AND %s <= $2
		ORDER BY %s
		LIMIT $3
	`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.CreatedAt,
	)

	err := r.db.Select(ctx, &payments, query, string(domain.PaymentStatusPending), before, limit)
	if err != nil {
		r.Log.Error("failed to list pending payments", "error", err)
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}

// ListByUser платежи пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error) {
	var payments []*domain.Payment

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.CreatedAt,
	)

	err := r.db.Select(ctx, &payments, query, userID)
	if err != nil {
		r.Log.Error("failed to list user payments",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("failed to list user payments: %w", err)
	}
	return payments, nil
}
