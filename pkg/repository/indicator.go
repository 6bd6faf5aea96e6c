package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/assocweb/ingest/pkg/domain"
)

// IndicatorRepository handles economic indicator operations
type IndicatorRepository struct {
	db *sqlx.DB
}

// indicatorSQL represents an economic indicator for SQL operations
type indicatorSQL struct {
	ID        int64   `db:"id"`
	Category  string  `db:"category"`
	Title     string  `db:"title"`
	Slug      string  `db:"slug"`
	Year      int     `db:"year"`
	Month     int     `db:"month"`
	Value     float64 `db:"value"`
	SellValue float64 `db:"sell_value"`
	Unit      int     `db:"unit"`
	Source    string  `db:"source"`
	IsActive  bool    `db:"is_active"`
	UpdatedAt int64   `db:"updated_at"`
}

// NewIndicatorRepository creates a new indicator repository
func NewIndicatorRepository(db *sqlx.DB) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

// Upsert creates the indicator for (Category, Year, Month) or updates its values in place.
// The slug of an existing row is kept. Returns true if a new row was created.
func (r *IndicatorRepository) Upsert(ctx context.Context, ind *domain.EconomicIndicator) (created bool, err error) {
	if ind.UpdatedAt.IsZero() {
		ind.UpdatedAt = time.Now()
	}
	row := &indicatorSQL{
		Category:  ind.Category,
		Title:     ind.Title,
		Slug:      ind.Slug,
		Year:      ind.Year,
		Month:     ind.Month,
		Value:     ind.Value,
		SellValue: ind.SellValue,
		Unit:      ind.Unit,
		Source:    ind.Source,
		IsActive:  ind.IsActive,
		UpdatedAt: ind.UpdatedAt.Unix(),
	}

	query := `
		INSERT INTO economic_indicators (
			category, title, slug, year, month, value, sell_value, unit, source, is_active, updated_at
		) VALUES (
			:category, :title, :slug, :year, :month, :value, :sell_value, :unit, :source, :is_active, :updated_at
		)
		ON CONFLICT(category, year, month) DO UPDATE SET
			title = excluded.title,
			value = excluded.value,
			sell_value = excluded.sell_value,
			unit = excluded.unit,
			source = excluded.source,
			updated_at = excluded.updated_at
	`

	err = withRetry(ctx, func() error {
		existing, findErr := r.find(ctx, ind.Category, ind.Year, ind.Month)
		if findErr != nil {
			return findErr
		}
		if _, execErr := r.db.NamedExecContext(ctx, query, row); execErr != nil {
			return execErr
		}
		created = existing == nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("upsert indicator %s %d-%02d: %w", ind.Category, ind.Year, ind.Month, err)
	}

	stored, err := r.find(ctx, ind.Category, ind.Year, ind.Month)
	if err != nil {
		return created, fmt.Errorf("reload indicator: %w", err)
	}
	if stored != nil {
		ind.ID = stored.ID
		ind.Slug = stored.Slug
	}
	return created, nil
}

// Get returns the indicator for the key, nil if there is none
func (r *IndicatorRepository) Get(ctx context.Context, category string, year, month int) (*domain.EconomicIndicator, error) {
	row, err := r.find(ctx, category, year, month)
	if err != nil {
		return nil, fmt.Errorf("get indicator: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return toDomainIndicator(row), nil
}

// Count returns the number of stored indicators
func (r *IndicatorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM economic_indicators"); err != nil {
		return 0, fmt.Errorf("count indicators: %w", err)
	}
	return count, nil
}

func (r *IndicatorRepository) find(ctx context.Context, category string, year, month int) (*indicatorSQL, error) {
	query, args, err := sq.Select("*").From("economic_indicators").
		Where(sq.Eq{"category": category, "year": year, "month": month}).ToSql()
	if err != nil {
		return nil, err
	}
	var row indicatorSQL
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func toDomainIndicator(row *indicatorSQL) *domain.EconomicIndicator {
	return &domain.EconomicIndicator{
		ID:        row.ID,
		Category:  row.Category,
		Title:     row.Title,
		Slug:      row.Slug,
		Year:      row.Year,
		Month:     row.Month,
		Value:     row.Value,
		SellValue: row.SellValue,
		Unit:      row.Unit,
		Source:    row.Source,
		IsActive:  row.IsActive,
		UpdatedAt: time.Unix(row.UpdatedAt, 0),
	}
}
