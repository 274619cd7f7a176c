// Package user defines shop accounts and their purchase history.
package user

import (
	"context"
	"errors"
	"time"
)

// RoleCustomer is the role assigned to newly registered users.
const RoleCustomer = "customer"

// User represents a registered shop account.
//
// Password is stored as given; securing credentials is outside the
// scope of this service.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Purchase is an immutable record of one settled purchase. Name and
// UnitPrice are copied from the sweet at settlement time so later
// edits or deletions never change history.
type Purchase struct {
	OrderID     string    `json:"order_id"`
	SweetID     string    `json:"sweet_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total"`
	PurchasedAt time.Time `json:"purchased_at"`
}

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already registered")
)

// Repository defines behavior for persisting users.
//
// PurchaseHistory returns records in the order they were appended and
// fails with ErrNotFound for an unknown user.
type Repository interface {
	Create(ctx context.Context, u User) error
	Get(ctx context.Context, username string) (User, error)
	AppendPurchase(ctx context.Context, username string, p Purchase) error
	PurchaseHistory(ctx context.Context, username string) ([]Purchase, error)
}
