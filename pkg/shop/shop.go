// Package shop coordinates purchases and account registration across
// the sweet and user repositories.
package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sweetshop/pkg/sweet"
	"sweetshop/pkg/user"
)

var (
	// ErrInvalidQuantity indicates a purchase quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidCredentials indicates a missing or mismatched username/password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Shop settles purchases against the injected repositories.
type Shop struct {
	sweets sweet.Repository
	users  user.Repository
}

// New creates a Shop backed by the given repositories.
func New(sweets sweet.Repository, users user.Repository) *Shop {
	return &Shop{sweets: sweets, users: users}
}

// Register creates a new customer account. The password is stored as
// given.
func (s *Shop) Register(ctx context.Context, username, password string) (user.User, error) {
	if username == "" || password == "" {
		return user.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}
	u := user.User{
		Username:  username,
		Password:  password,
		Role:      user.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Authenticate checks a plaintext credential pair against the stored
// account. An unknown user and a wrong password are indistinguishable
// to the caller.
func (s *Shop) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	u, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}
	if u.Password != password {
		return user.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Purchase settles a purchase of quantity units of the given sweet for
// the given user and returns the generated order ID.
//
// All validation completes before any mutation. The stock decrement
// and the history append are two separate repository writes: if the
// append fails after the decrement succeeded, stock is lost without a
// matching record. Wrapping both stores in one transaction would need
// a shared backend, which this coordinator deliberately does not
// assume.
func (s *Shop) Purchase(ctx context.Context, username, sweetID string, quantity int) (string, error) {
	sw, err := s.sweets.Get(ctx, sweetID)
	if err != nil {
		return "", err
	}
	u, err := s.users.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if quantity < 1 {
		return "", ErrInvalidQuantity
	}
	if sw.Quantity < quantity {
		return "", sweet.InsufficientStockError(sw.Name, sw.Quantity, quantity)
	}

	if err := s.sweets.DecrementStock(ctx, sweetID, quantity); err != nil {
		return "", err
	}

	p := user.Purchase{
		OrderID:     uuid.New().String(),
		SweetID:     sw.ID,
		Name:        sw.Name,
		Quantity:    quantity,
		UnitPrice:   sw.Price,
		Total:       sw.Price * float64(quantity),
		PurchasedAt: time.Now().UTC(),
	}
	if err := s.users.AppendPurchase(ctx, u.Username, p); err != nil {
		return "", fmt.Errorf("stock decremented but history append failed: %w", err)
	}
	return p.OrderID, nil
}
