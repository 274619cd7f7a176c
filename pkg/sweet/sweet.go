// Package sweet defines the sweet inventory model and its repository contract.
package sweet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sweet represents a saleable product with stock on hand.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sort fields accepted by Repository.SortBy.
const (
	SortByName     = "name"
	SortByPrice    = "price"
	SortByQuantity = "quantity"
)

var (
	// ErrNotFound indicates the requested sweet does not exist.
	ErrNotFound = errors.New("sweet not found")
	// ErrDuplicateID indicates a sweet with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate sweet id")
	// ErrInvalidInput indicates a negative price or quantity.
	ErrInvalidInput = errors.New("invalid sweet input")
	// ErrInvalidField indicates an unsupported sort field.
	ErrInvalidField = errors.New("invalid sort field")
	// ErrInsufficientStock indicates a decrement larger than the stock on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError wraps ErrInsufficientStock with the available
// versus requested quantities so callers can report both.
func InsufficientStockError(name string, available, requested int) error {
	return fmt.Errorf("%w for %q: available %d, requested %d", ErrInsufficientStock, name, available, requested)
}

// New builds a Sweet with a fresh ID and timestamps. Price and quantity
// must be non-negative.
func New(name, category string, price float64, quantity int) (Sweet, error) {
	if price < 0 {
		return Sweet{}, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if quantity < 0 {
		return Sweet{}, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}
	now := time.Now().UTC()
	return Sweet{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Repository defines behavior for persisting sweets.
//
// List returns sweets in insertion order. SearchByPriceRange with
// min > max returns an empty result. SortBy sorts ascending and is
// stable: equal keys keep insertion order.
type Repository interface {
	Create(ctx context.Context, s Sweet) error
	Get(ctx context.Context, id string) (Sweet, error)
	List(ctx context.Context) ([]Sweet, error)
	Delete(ctx context.Context, id string) error
	Restock(ctx context.Context, id string, amount int) error
	DecrementStock(ctx context.Context, id string, amount int) error
	SearchByName(ctx context.Context, name string) ([]Sweet, error)
	SearchByCategory(ctx context.Context, category string) ([]Sweet, error)
	SearchByPriceRange(ctx context.Context, min, max float64) ([]Sweet, error)
	SortBy(ctx context.Context, field string) ([]Sweet, error)
}
