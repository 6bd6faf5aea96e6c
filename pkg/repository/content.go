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

// ContentRepository handles operations on all content collections.
// Each collection lives in its own table named after the collection.
type ContentRepository struct {
	db *sqlx.DB
}

// contentSQL represents a content record for SQL operations, dates are unix seconds
type contentSQL struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Slug        string        `db:"slug"`
	Description string        `db:"description"`
	Content     string        `db:"content"`
	Source      string        `db:"source"`
	SourceURL   string        `db:"source_url"`
	Image       string        `db:"image"`
	Category    string        `db:"category"`
	Location    string        `db:"location"`
	StartDate   int64         `db:"start_date"`
	EndDate     sql.NullInt64 `db:"end_date"`
	IsActive    bool          `db:"is_active"`
	CreatedAt   int64         `db:"created_at"`
}

var contentColumns = []string{
	"id", "title", "slug", "description", "content", "source", "source_url", "image",
	"category", "location", "start_date", "end_date", "is_active", "created_at",
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// FindByTitle returns the record with the exact title, nil if there is none
func (r *ContentRepository) FindByTitle(ctx context.Context, c domain.Collection, title string) (*domain.ContentRecord, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	query, args, err := sq.Select(contentColumns...).From(string(c)).Where(sq.Eq{"title": title}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	var rec contentSQL
	err = withRetry(ctx, func() error { return r.db.GetContext(ctx, &rec, query, args...) })
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by title: %w", c, err)
	}
	return toDomainContent(c, &rec), nil
}

// Create inserts a new record and sets its ID and CreatedAt.
// Returns ErrDuplicate if the title or slug already exists in the collection.
func (r *ContentRepository) Create(ctx context.Context, c domain.Collection, rec *domain.ContentRecord) error {
	if !c.Valid() {
		return fmt.Errorf("unknown collection %q", c)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	row := fromDomainContent(rec)

	query := `INSERT INTO ` + string(c) + ` (
			title, slug, description, content, source, source_url, image,
			category, location, start_date, end_date, is_active, created_at
		) VALUES (
			:title, :slug, :description, :content, :source, :source_url, :image,
			:category, :location, :start_date, :end_date, :is_active, :created_at
		)`

	var result sql.Result
	err := withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.NamedExecContext(ctx, query, row)
		return execErr
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("create %s %q: %w", c, rec.Title, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", c, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	rec.ID = id
	rec.Collection = c
	return nil
}

// FindUpcoming returns active records with start date in [from, to), ordered by date then id
func (r *ContentRepository) FindUpcoming(ctx context.Context, c domain.Collection, from, to time.Time) ([]domain.ContentRecord, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	query, args, err := sq.Select(contentColumns...).From(string(c)).
		Where(sq.GtOrEq{"start_date": from.Unix()}).
		Where(sq.Lt{"start_date": to.Unix()}).
		Where(sq.Eq{"is_active": 1}).
		OrderBy("start_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upcoming query: %w", err)
	}
	return r.selectRecords(ctx, c, query, args)
}

// List returns up to limit records of a collection, newest first; limit <= 0 means no limit
func (r *ContentRepository) List(ctx context.Context, c domain.Collection, limit int) ([]domain.ContentRecord, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	builder := sq.Select(contentColumns...).From(string(c)).OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return r.selectRecords(ctx, c, query, args)
}

// Count returns the number of records in a collection
func (r *ContentRepository) Count(ctx context.Context, c domain.Collection) (int, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("unknown collection %q", c)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+string(c)); err != nil {
		return 0, fmt.Errorf("count %s: %w", c, err)
	}
	return count, nil
}

// CountByCategory returns the number of records with the given category
func (r *ContentRepository) CountByCategory(ctx context.Context, c domain.Collection, category string) (int, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("unknown collection %q", c)
	}
	query, args, err := sq.Select("COUNT(*)").From(string(c)).Where(sq.Eq{"category": category}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s by category: %w", c, err)
	}
	return count, nil
}

func (r *ContentRepository) selectRecords(ctx context.Context, c domain.Collection, query string, args []any) ([]domain.ContentRecord, error) {
	var rows []contentSQL
	err := withRetry(ctx, func() error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", c, err)
	}
	res := make([]domain.ContentRecord, 0, len(rows))
	for i := range rows {
		res = append(res, *toDomainContent(c, &rows[i]))
	}
	return res, nil
}

func fromDomainContent(rec *domain.ContentRecord) *contentSQL {
	row := &contentSQL{
		Title:       rec.Title,
		Slug:        rec.Slug,
		Description: rec.Description,
		Content:     rec.Content,
		Source:      rec.Source,
		SourceURL:   rec.SourceURL,
		Image:       rec.Image,
		Category:    rec.Category,
		Location:    rec.Location,
		StartDate:   rec.StartDate.Unix(),
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt.Unix(),
	}
	if rec.EndDate != nil {
		row.EndDate = sql.NullInt64{Int64: rec.EndDate.Unix(), Valid: true}
	}
	return row
}

func toDomainContent(c domain.Collection, row *contentSQL) *domain.ContentRecord {
	rec := &domain.ContentRecord{
		ID:          row.ID,
		Collection:  c,
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		Content:     row.Content,
		Source:      row.Source,
		SourceURL:   row.SourceURL,
		Image:       row.Image,
		Category:    row.Category,
		Location:    row.Location,
		StartDate:   time.Unix(row.StartDate, 0),
		IsActive:    row.IsActive,
		CreatedAt:   time.Unix(row.CreatedAt, 0),
	}
	if row.EndDate.Valid {
		end := time.Unix(row.EndDate.Int64, 0)
		rec.EndDate = &end
	}
	return rec
}
