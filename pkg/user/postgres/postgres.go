// Package postgres implements a PostgreSQL-backed user repository.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"sweetshop/pkg/user"
)

// Repository persists users and their purchase history in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository. The caller must ensure the
// database has users and purchases tables:
//
//	CREATE TABLE IF NOT EXISTS users (
//	    username   TEXT PRIMARY KEY,
//	    password   TEXT NOT NULL,
//	    role       TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS purchases (
//	    position     BIGSERIAL,
//	    order_id     TEXT PRIMARY KEY,
//	    username     TEXT NOT NULL REFERENCES users(username),
//	    sweet_id     TEXT NOT NULL,
//	    name         TEXT NOT NULL,
//	    quantity     INT NOT NULL,
//	    unit_price   DOUBLE PRECISION NOT NULL,
//	    total        DOUBLE PRECISION NOT NULL,
//	    purchased_at TIMESTAMPTZ NOT NULL
//	);
//
// The position column keeps history reads in append order.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username,password,role,created_at) VALUES ($1,$2,$3,$4)",
		u.Username, u.Password, u.Role, u.CreatedAt)
	if isUniqueViolation(err) {
		return user.ErrDuplicateUsername
	}
	return err
}

// Get retrieves a user by username.
func (r *Repository) Get(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		"SELECT username,password,role,created_at FROM users WHERE username=$1", username).
		Scan(&u.Username, &u.Password, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return u, err
}

// AppendPurchase adds a purchase record to the user's history.
func (r *Repository) AppendPurchase(ctx context.Context, username string, p user.Purchase) error {
	if _, err := r.Get(ctx, username); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO purchases (order_id,username,sweet_id,name,quantity,unit_price,total,purchased_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
		p.OrderID, username, p.SweetID, p.Name, p.Quantity, p.UnitPrice, p.Total, p.PurchasedAt)
	return err
}

// PurchaseHistory returns the user's purchase records in append order.
func (r *Repository) PurchaseHistory(ctx context.Context, username string) ([]user.Purchase, error) {
	if _, err := r.Get(ctx, username); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT order_id,sweet_id,name,quantity,unit_price,total,purchased_at FROM purchases WHERE username=$1 ORDER BY position",
		username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	purchases := make([]user.Purchase, 0)
	for rows.Next() {
		var p user.Purchase
		if err := rows.Scan(&p.OrderID, &p.SweetID, &p.Name, &p.Quantity, &p.UnitPrice, &p.Total, &p.PurchasedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
