// Package memory implements an in-memory user repository.
package memory

import (
	"context"
	"sync"

	"sweetshop/pkg/user"
)

// Repository provides an in-memory implementation of user.Repository.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]user.User
	history map[string][]user.Purchase
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		users:   make(map[string]user.User),
		history: make(map[string][]user.Purchase),
	}
}

// Create stores the user with an empty purchase history.
func (r *Repository) Create(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return user.ErrDuplicateUsername
	}
	r.users[u.Username] = u
	r.history[u.Username] = nil
	return nil
}

// Get retrieves a user by username.
func (r *Repository) Get(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

// AppendPurchase adds a purchase record to the end of the user's history.
func (r *Repository) AppendPurchase(ctx context.Context, username string, p user.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return user.ErrNotFound
	}
	r.history[username] = append(r.history[username], p)
	return nil
}

// PurchaseHistory returns the user's purchase records in append order.
func (r *Repository) PurchaseHistory(ctx context.Context, username string) ([]user.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.users[username]; !ok {
		return nil, user.ErrNotFound
	}
	out := make([]user.Purchase, len(r.history[username]))
	copy(out, r.history[username])
	return out, nil
}
