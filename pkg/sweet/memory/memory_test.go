package memory

import (
	"context"
	"errors"
	"testing"

	"sweetshop/pkg/sweet"
)

func seed(t *testing.T) *Repository {
	t.Helper()
	repo := New()
	ctx := context.Background()
	for _, s := range []struct {
		name, category string
		price          float64
		quantity       int
	}{
		{"Kaju Katli", "Nut-Based", 50, 20},
		{"Gajar Halwa", "Vegetable-Based", 30, 15},
		{"Gulab Jamun", "Milk-Based", 10, 50},
		{"Chocolate Bar", "Chocolate", 20, 100},
	} {
		sw, err := sweet.New(s.name, s.category, s.price, s.quantity)
		if err != nil {
			t.Fatalf("new sweet: %v", err)
		}
		if err := repo.Create(ctx, sw); err != nil {
			t.Fatalf("create %s: %v", s.name, err)
		}
	}
	return repo
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	sw, err := sweet.New("Jalebi", "Milk-Based", 25, 30)
	if err != nil {
		t.Fatalf("new sweet: %v", err)
	}
	if err := repo.Create(ctx, sw); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, sw.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Jalebi" || got.Category != "Milk-Based" || got.Price != 25 || got.Quantity != 30 {
		t.Fatalf("unexpected sweet: %+v", got)
	}
	all, err := repo.List(ctx)
	if err != nil || len(all) != 5 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
}

func TestCreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	sw, _ := sweet.New("Duplicate", "Test", 1, 1)
	if err := repo.Create(ctx, sw); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, sw); !errors.Is(err, sweet.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestNewRejectsNegativeInput(t *testing.T) {
	if _, err := sweet.New("Bad", "Test", -1, 1); !errors.Is(err, sweet.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
	if _, err := sweet.New("Bad", "Test", 1, -1); !errors.Is(err, sweet.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative quantity, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	all, _ := repo.List(ctx)
	id := all[0].ID
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, id); !errors.Is(err, sweet.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, sweet.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent id, got %v", err)
	}
	rest, _ := repo.List(ctx)
	if len(rest) != 3 {
		t.Fatalf("expected 3 sweets after delete, got %d", len(rest))
	}
}

func TestSearchByName(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	results, err := repo.SearchByName(ctx, "Kaju Katli")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Kaju Katli" {
		t.Fatalf("unexpected results: %+v", results)
	}

	// Substring match is case-insensitive.
	results, _ = repo.SearchByName(ctx, "gULAB")
	if len(results) != 1 || results[0].Name != "Gulab Jamun" {
		t.Fatalf("unexpected results: %+v", results)
	}

	results, _ = repo.SearchByName(ctx, "Non-existent Sweet")
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSearchByCategory(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	results, err := repo.SearchByCategory(ctx, "milk")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Gulab Jamun" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearchByPriceRange(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	results, err := repo.SearchByPriceRange(ctx, 25, 55)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	names := map[string]bool{}
	for _, s := range results {
		names[s.Name] = true
	}
	if !names["Kaju Katli"] || !names["Gajar Halwa"] {
		t.Fatalf("unexpected results: %+v", results)
	}

	// Inverted bounds match nothing.
	results, _ = repo.SearchByPriceRange(ctx, 55, 25)
	if len(results) != 0 {
		t.Fatalf("expected empty result for inverted range, got %d", len(results))
	}
}

func TestSortBy(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	byPrice, err := repo.SortBy(ctx, sweet.SortByPrice)
	if err != nil {
		t.Fatalf("sort by price: %v", err)
	}
	prices := []float64{10, 20, 30, 50}
	for i, s := range byPrice {
		if s.Price != prices[i] {
			t.Fatalf("price[%d] = %v, want %v", i, s.Price, prices[i])
		}
	}

	byName, err := repo.SortBy(ctx, sweet.SortByName)
	if err != nil {
		t.Fatalf("sort by name: %v", err)
	}
	names := []string{"Chocolate Bar", "Gajar Halwa", "Gulab Jamun", "Kaju Katli"}
	for i, s := range byName {
		if s.Name != names[i] {
			t.Fatalf("name[%d] = %q, want %q", i, s.Name, names[i])
		}
	}

	byQuantity, err := repo.SortBy(ctx, sweet.SortByQuantity)
	if err != nil {
		t.Fatalf("sort by quantity: %v", err)
	}
	quantities := []int{15, 20, 50, 100}
	for i, s := range byQuantity {
		if s.Quantity != quantities[i] {
			t.Fatalf("quantity[%d] = %d, want %d", i, s.Quantity, quantities[i])
		}
	}

	if _, err := repo.SortBy(ctx, "color"); !errors.Is(err, sweet.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestSortByStableTies(t *testing.T) {
	ctx := context.Background()
	repo := New()
	var ids []string
	for _, name := range []string{"First", "Second", "Third"} {
		sw, _ := sweet.New(name, "Tied", 5, 5)
		if err := repo.Create(ctx, sw); err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, sw.ID)
	}
	sorted, err := repo.SortBy(ctx, sweet.SortByPrice)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	for i, s := range sorted {
		if s.ID != ids[i] {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, s.ID, ids[i])
		}
	}
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	all, _ := repo.List(ctx)
	id, before := all[0].ID, all[0].Quantity
	if err := repo.Restock(ctx, id, 5); err != nil {
		t.Fatalf("restock: %v", err)
	}
	got, _ := repo.Get(ctx, id)
	if got.Quantity != before+5 {
		t.Fatalf("quantity = %d, want %d", got.Quantity, before+5)
	}
	if err := repo.Restock(ctx, "missing", 5); !errors.Is(err, sweet.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Restock(ctx, id, 0); !errors.Is(err, sweet.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	all, _ := repo.List(ctx)
	id, before := all[0].ID, all[0].Quantity
	if err := repo.DecrementStock(ctx, id, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	got, _ := repo.Get(ctx, id)
	if got.Quantity != before-3 {
		t.Fatalf("quantity = %d, want %d", got.Quantity, before-3)
	}
	if !got.UpdatedAt.After(all[0].UpdatedAt) {
		t.Fatal("expected UpdatedAt to be refreshed")
	}

	if err := repo.DecrementStock(ctx, id, got.Quantity+1); !errors.Is(err, sweet.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	unchanged, _ := repo.Get(ctx, id)
	if unchanged.Quantity != got.Quantity {
		t.Fatalf("failed decrement mutated stock: %d != %d", unchanged.Quantity, got.Quantity)
	}
	if err := repo.DecrementStock(ctx, "missing", 1); !errors.Is(err, sweet.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := seed(t)

	first, _ := repo.List(ctx)
	second, _ := repo.List(ctx)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("element %d differs between reads", i)
		}
	}
}
