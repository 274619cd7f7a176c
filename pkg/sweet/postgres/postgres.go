// Package postgres implements a PostgreSQL-backed sweet repository.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sweetshop/pkg/sweet"
)

// Repository persists sweets in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository. The caller must ensure the
// database has a sweets table:
//
//	CREATE TABLE IF NOT EXISTS sweets (
//	    position   BIGSERIAL,
//	    id         TEXT PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    category   TEXT NOT NULL,
//	    price      DOUBLE PRECISION NOT NULL,
//	    quantity   INT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//
// The position column preserves insertion order for listing and as the
// tie-break for sorted reads.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new sweet.
func (r *Repository) Create(ctx context.Context, s sweet.Sweet) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sweets (id,name,category,price,quantity,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7)",
		s.ID, s.Name, s.Category, s.Price, s.Quantity, s.CreatedAt, s.UpdatedAt)
	if isUniqueViolation(err) {
		return sweet.ErrDuplicateID
	}
	return err
}

// Get retrieves a sweet by ID.
func (r *Repository) Get(ctx context.Context, id string) (sweet.Sweet, error) {
	var s sweet.Sweet
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets WHERE id=$1", id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return sweet.Sweet{}, sweet.ErrNotFound
	}
	return s, err
}

// List fetches all sweets in insertion order.
func (r *Repository) List(ctx context.Context) ([]sweet.Sweet, error) {
	return r.query(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets ORDER BY position")
}

// Delete removes a sweet by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sweets WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sweet.ErrNotFound
	}
	return nil
}

// Restock increases the stock of a sweet.
func (r *Repository) Restock(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: restock amount must be positive", sweet.ErrInvalidInput)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE sweets SET quantity=quantity+$2, updated_at=now() WHERE id=$1", id, amount)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sweet.ErrNotFound
	}
	return nil
}

// DecrementStock reduces the stock of a sweet in a single conditional
// update, so a decrement never drives quantity negative.
func (r *Repository) DecrementStock(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: decrement amount must be positive", sweet.ErrInvalidInput)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE sweets SET quantity=quantity-$2, updated_at=now() WHERE id=$1 AND quantity>=$2", id, amount)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}
	// Distinguish a missing row from too little stock.
	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	return sweet.InsufficientStockError(s.Name, s.Quantity, amount)
}

// SearchByName returns sweets whose name contains the given substring,
// case-insensitively.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]sweet.Sweet, error) {
	return r.query(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets WHERE name ILIKE '%'||$1||'%' ORDER BY position",
		name)
}

// SearchByCategory returns sweets whose category contains the given
// substring, case-insensitively.
func (r *Repository) SearchByCategory(ctx context.Context, category string) ([]sweet.Sweet, error) {
	return r.query(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets WHERE category ILIKE '%'||$1||'%' ORDER BY position",
		category)
}

// SearchByPriceRange returns sweets priced within [min, max]. An
// inverted range matches nothing.
func (r *Repository) SearchByPriceRange(ctx context.Context, min, max float64) ([]sweet.Sweet, error) {
	return r.query(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets WHERE price>=$1 AND price<=$2 ORDER BY position",
		min, max)
}

// SortBy returns all sweets sorted ascending by the given field, with
// insertion order as the tie-break.
func (r *Repository) SortBy(ctx context.Context, field string) ([]sweet.Sweet, error) {
	switch field {
	case sweet.SortByName, sweet.SortByPrice, sweet.SortByQuantity:
	default:
		return nil, fmt.Errorf("%w: %q", sweet.ErrInvalidField, field)
	}
	return r.query(ctx,
		"SELECT id,name,category,price,quantity,created_at,updated_at FROM sweets ORDER BY "+field+", position")
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]sweet.Sweet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sweets := make([]sweet.Sweet, 0)
	for rows.Next() {
		var s sweet.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sweets = append(sweets, s)
	}
	return sweets, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
