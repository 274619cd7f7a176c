// Package memory implements an in-memory sweet repository.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sweetshop/pkg/sweet"
)

// Repository provides an in-memory implementation of sweet.Repository.
// Insertion order is tracked so that List and stable sorts are
// deterministic across calls.
type Repository struct {
	mu     sync.RWMutex
	sweets map[string]sweet.Sweet
	order  []string
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{sweets: make(map[string]sweet.Sweet)}
}

// Create stores the sweet.
func (r *Repository) Create(ctx context.Context, s sweet.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[s.ID]; ok {
		return sweet.ErrDuplicateID
	}
	r.sweets[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

// Get retrieves a sweet by ID.
func (r *Repository) Get(ctx context.Context, id string) (sweet.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sweets[id]
	if !ok {
		return sweet.Sweet{}, sweet.ErrNotFound
	}
	return s, nil
}

// List returns all sweets in insertion order.
func (r *Repository) List(ctx context.Context) ([]sweet.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

// Delete removes a sweet by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return sweet.ErrNotFound
	}
	delete(r.sweets, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Restock increases the stock of a sweet.
func (r *Repository) Restock(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: restock amount must be positive", sweet.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return sweet.ErrNotFound
	}
	s.Quantity += amount
	s.UpdatedAt = time.Now().UTC()
	r.sweets[id] = s
	return nil
}

// DecrementStock reduces the stock of a sweet, failing if the amount
// exceeds the quantity on hand.
func (r *Repository) DecrementStock(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: decrement amount must be positive", sweet.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return sweet.ErrNotFound
	}
	if s.Quantity < amount {
		return sweet.InsufficientStockError(s.Name, s.Quantity, amount)
	}
	s.Quantity -= amount
	s.UpdatedAt = time.Now().UTC()
	r.sweets[id] = s
	return nil
}

// SearchByName returns sweets whose name contains the given substring,
// case-insensitively.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]sweet.Sweet, error) {
	return r.filter(func(s sweet.Sweet) bool {
		return strings.Contains(strings.ToLower(s.Name), strings.ToLower(name))
	}), nil
}

// SearchByCategory returns sweets whose category contains the given
// substring, case-insensitively.
func (r *Repository) SearchByCategory(ctx context.Context, category string) ([]sweet.Sweet, error) {
	return r.filter(func(s sweet.Sweet) bool {
		return strings.Contains(strings.ToLower(s.Category), strings.ToLower(category))
	}), nil
}

// SearchByPriceRange returns sweets priced within [min, max]. An
// inverted range yields an empty result.
func (r *Repository) SearchByPriceRange(ctx context.Context, min, max float64) ([]sweet.Sweet, error) {
	return r.filter(func(s sweet.Sweet) bool {
		return s.Price >= min && s.Price <= max
	}), nil
}

// SortBy returns all sweets sorted ascending by the given field. The
// sort is stable, so equal keys keep insertion order.
func (r *Repository) SortBy(ctx context.Context, field string) ([]sweet.Sweet, error) {
	r.mu.RLock()
	out := r.snapshot()
	r.mu.RUnlock()

	switch field {
	case sweet.SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case sweet.SortByPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case sweet.SortByQuantity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	default:
		return nil, fmt.Errorf("%w: %q", sweet.ErrInvalidField, field)
	}
	return out, nil
}

// snapshot copies the stored sweets in insertion order. Callers must
// hold at least a read lock.
func (r *Repository) snapshot() []sweet.Sweet {
	out := make([]sweet.Sweet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sweets[id])
	}
	return out
}

func (r *Repository) filter(keep func(sweet.Sweet) bool) []sweet.Sweet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]sweet.Sweet, 0)
	for _, id := range r.order {
		if s := r.sweets[id]; keep(s) {
			out = append(out, s)
		}
	}
	return out
}
