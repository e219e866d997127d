package calculationRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ports "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"

	"log/slog"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/persistence"
	"github.com/google/uuid"
)

type calculationColumns struct {
	TableName   string
	ID          string
	UserID      string
	Title       string
	Name        string
	BirthDate   string
	BirthTime   string
	BirthPlace  string
	Chart       string
	Excerpt     string
	FullContent string
	AccessType  string
	Price       string
	ReportPath  string
	CreatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns calculationColumns
}

// New создаёт репозиторий сохранённых расчётов
func New(db persistence.Persistence, log *slog.Logger) ports.ICalculationRepo {
	cols := calculationColumns{
		TableName:   "calculations",
		ID:          "id",
		UserID:      "user_id",
		Title:       "title",
		Name:        "name",
		BirthDate:   "birth_date",
		BirthTime:   "birth_time",
		BirthPlace:  "birth_place",
		Chart:       "chart",
		Excerpt:     "excerpt",
		FullContent: "full_content",
		AccessType:  "access_type",
		Price:       "price",
		ReportPath:  "report_path",
		CreatedAt:   "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (14 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.Title,
		r.columns.Name,
		r.columns.BirthDate,
		r.columns.BirthTime,
		r.columns.BirthPlace,
		r.columns.Chart,
		r.columns.Excerpt,
		r.columns.FullContent,
		r.columns.AccessType,
		r.columns.Price,
		r.columns.ReportPath,
		r.columns.CreatedAt)
}

// Create сохраняет расчёт
func (r *Repository) Create(ctx context.Context, calc *domain.Calculation) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		calc.ID,
		calc.UserID,
		calc.Title,
		calc.Name,
		calc.BirthDate,
		calc.BirthTime,
		calc.BirthPlace,
		calc.Chart,
		calc.Excerpt,
		calc.FullContent,
		string(calc.AccessType),
		calc.Price,
		calc.ReportPath,
		calc.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create calculation",
			"error", err,
			"calculation_id", calc.ID,
			"user_id", calc.UserID)
		return fmt.Errorf("failed to create calculation: %w", err)
	}
	r.Log.Debug("calculation created successfully",
		"calculation_id", calc.ID,
		"user_id", calc.UserID)
	return nil
}

// GetByID получает расчёт по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	var calc domain.Calculation
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &calc, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("calculation not found", "calculation_id", id)
			return nil, fmt.Errorf("calculation %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get calculation",
			"error", err,
			"calculation_id", id)
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return &calc, nil
}

// ListByUser возвращает расчёты пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Calculation, error) {
	var calcs []*domain.Calculation
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &calcs, query, userID)
	if err != nil {
		r.Log.Error("failed to list calculations",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	r.Log.Debug("calculations listed", "user_id", userID, "count", len(calcs))
	return calcs, nil
}

// UpdateAccess меняет уровень доступа к прогнозу
func (r *Repository) UpdateAccess(ctx context.Context, id uuid.UUID, access domain.AccessType) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		r.columns.TableName,
		r.columns.AccessType,
		r.columns.ID)
	return r.updateOne(ctx, "access", id, query, string(access), id)
}

// UpdateReportPath сохраняет путь к отчёту в хранилище
func (r *Repository) UpdateReportPath(ctx context.Context, id uuid.UUID, path string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		r.columns.TableName,
		r.columns.ReportPath,
		r.columns.ID)
	return r.updateOne(ctx, "report path", id, query, path, id)
}

func (r *Repository) updateOne(ctx context.Context, what string, id uuid.UUID, query string, args ...interface{}) error {
	rowsAffected, err := r.db.ExecWithResult(ctx, query, args...)
	if err != nil {
		r.Log.Error("failed to update calculation "+what,
			"error", err,
			"calculation_id", id)
		return fmt.Errorf("failed to update calculation %s: %w", what, err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("calculation not found for update", "calculation_id", id)
		return fmt.Errorf("calculation %s: %w", id, domain.ErrNotFound)
	}
	r.Log.Debug("calculation "+what+" updated", "calculation_id", id)
	return nil
}
