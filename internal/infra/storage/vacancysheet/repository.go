package vacancysheet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/punkajrapr/timegrid/pkg/dbmetrics"
	"github.com/punkajrapr/timegrid/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Record сохранённый лист доступности бизнеса
// Хранится только исходный текст; разобранная форма живёт в кэше процесса
// и перечитывается при изменении UpdatedAt
type Record struct {
	BusinessID int64
	RawText    string
	UpdatedAt  time.Time
}

// Repository репозиторий листов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает лист бизнеса
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*Record, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("business_id", "raw_text", "updated_at").
		From("vacancy_sheets").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var record Record
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.BusinessID,
		&record.RawText,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan sheet: %v", ErrScanRow, err)
	}

	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

// Upsert сохраняет лист бизнеса, заменяя предыдущий целиком
// Атомарность на уровне строки: лист никогда не существует в
// полуприменённом состоянии
func (r *Repository) Upsert(ctx context.Context, businessID int64, rawText string) (*Record, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vacancy_sheets").
		Columns("business_id", "raw_text", "updated_at").
		Values(businessID, rawText, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (business_id) DO UPDATE SET raw_text = EXCLUDED.raw_text, updated_at = NOW()").
		Suffix("RETURNING business_id, raw_text, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var record Record
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.BusinessID,
		&record.RawText,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

// Delete удаляет лист бизнеса
func (r *Repository) Delete(ctx context.Context, businessID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vacancy_sheets").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSheetNotFound
	}

	return nil
}
