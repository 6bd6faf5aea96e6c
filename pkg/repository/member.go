package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/assocweb/ingest/pkg/domain"
)

// MemberRepository reads notification recipients from the members table
type MemberRepository struct {
	db *sqlx.DB
}

type memberSQL struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	IsActive bool   `db:"is_active"`
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// ListActiveRecipients returns active members with an email, in id order
func (r *MemberRepository) ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error) {
	var rows []memberSQL
	query := `SELECT id, name, email, is_active FROM members WHERE is_active = 1 AND email != '' ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active recipients: %w", err)
	}
	res := make([]domain.Recipient, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.Recipient{ID: row.ID, Name: row.Name, Email: row.Email, IsActive: row.IsActive})
	}
	return res, nil
}

// CreateRecipient inserts a member and sets its ID
func (r *MemberRepository) CreateRecipient(ctx context.Context, rcp *domain.Recipient) error {
	row := memberSQL{Name: rcp.Name, Email: rcp.Email, IsActive: rcp.IsActive}
	var id int64
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, `INSERT INTO members (name, email, is_active) VALUES (:name, :email, :is_active)`, row)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("create recipient %s: %w", rcp.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create recipient: %w", err)
	}
	rcp.ID = id
	return nil
}
