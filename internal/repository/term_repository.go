package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/scheduling-api/internal/models"
)

// TermRepository handles persistence for academic terms and the
// term-class association.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns terms matching provided filters.
func (r *TermRepository) List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	base := "FROM terms WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *filter.IsActive)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":       true,
		"start_date": true,
		"end_date":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "start_date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, name, start_date, end_date, is_active, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)

	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list terms: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count terms: %w", err)
	}

	return terms, total, nil
}

// FindByID loads a term by identifier.
func (r *TermRepository) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	const query = `SELECT id, name, start_date, end_date, is_active, created_at, updated_at FROM terms WHERE id = $1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindCurrent returns the active term whose date range contains the
// given day. Zero or one row exists by invariant.
func (r *TermRepository) FindCurrent(ctx context.Context, today time.Time) (*models.Term, error) {
	const query = `SELECT id, name, start_date, end_date, is_active, created_at, updated_at
FROM terms WHERE is_active = TRUE AND start_date <= $1 AND end_date >= $1
ORDER BY start_date DESC LIMIT 1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, today); err != nil {
		return nil, err
	}
	return &term, nil
}

// Create inserts a new term record.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	now := time.Now().UTC()
	term.CreatedAt = now
	term.UpdatedAt = now

	const query = `INSERT INTO terms (name, start_date, end_date, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, term.Name, term.StartDate, term.EndDate, term.IsActive, term.CreatedAt, term.UpdatedAt).Scan(&term.ID); err != nil {
		return fmt.Errorf("create term: %w", err)
	}
	return nil
}

// Update modifies an existing term.
func (r *TermRepository) Update(ctx context.Context, term *models.Term) error {
	term.UpdatedAt = time.Now().UTC()
	const query = `UPDATE terms SET name = :name, start_date = :start_date, end_date = :end_date, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("update term: %w", err)
	}
	return nil
}

// OverlapsActive checks whether an active term already covers any part
// of the provided range.
func (r *TermRepository) OverlapsActive(ctx context.Context, start, end time.Time, excludeID int64) (bool, error) {
	base := "SELECT 1 FROM terms WHERE is_active = TRUE AND start_date <= $2 AND end_date >= $1"
	args := []interface{}{start, end}
	if excludeID > 0 {
		base += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, base+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check term overlap: %w", err)
	}
	return true, nil
}

// ListTermClasses returns every term-class pair with denormalized names.
func (r *TermRepository) ListTermClasses(ctx context.Context) ([]models.TermClassDetail, error) {
	const query = `
SELECT tc.id, tc.term_id, tc.class_id, tc.is_active,
       t.name AS term_name, t.start_date AS term_start_date, t.end_date AS term_end_date,
       c.name AS class_name, c.code AS class_code
FROM term_classes tc
JOIN terms t ON t.id = tc.term_id
JOIN classes c ON c.id = tc.class_id
ORDER BY t.start_date DESC, c.name ASC`
	var pairs []models.TermClassDetail
	if err := r.db.SelectContext(ctx, &pairs, query); err != nil {
		return nil, fmt.Errorf("list term classes: %w", err)
	}
	return pairs, nil
}
