package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"sweetshop/pkg/user"
)

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := New()

	u := user.User{Username: "asha", Password: "secret", Role: user.RoleCustomer, CreatedAt: time.Now()}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "asha")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != user.RoleCustomer {
		t.Fatalf("role = %q, want %q", got.Role, user.RoleCustomer)
	}
	if err := repo.Create(ctx, u); !errors.Is(err, user.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if _, err := repo.Get(ctx, "nobody"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPurchaseHistoryOrder(t *testing.T) {
	ctx := context.Background()
	repo := New()

	if err := repo.Create(ctx, user.User{Username: "asha", Role: user.RoleCustomer}); err != nil {
		t.Fatalf("create: %v", err)
	}
	history, err := repo.PurchaseHistory(ctx, "asha")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}

	for i, order := range []string{"order-1", "order-2", "order-3"} {
		p := user.Purchase{OrderID: order, SweetID: "s1", Name: "Jalebi", Quantity: i + 1, UnitPrice: 25, Total: 25 * float64(i+1), PurchasedAt: time.Now()}
		if err := repo.AppendPurchase(ctx, "asha", p); err != nil {
			t.Fatalf("append %s: %v", order, err)
		}
	}
	history, err = repo.PurchaseHistory(ctx, "asha")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	for i, order := range []string{"order-1", "order-2", "order-3"} {
		if history[i].OrderID != order {
			t.Fatalf("history[%d] = %s, want %s", i, history[i].OrderID, order)
		}
	}
}

func TestUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := New()

	if err := repo.AppendPurchase(ctx, "ghost", user.Purchase{OrderID: "o1"}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on append, got %v", err)
	}
	if _, err := repo.PurchaseHistory(ctx, "ghost"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on history, got %v", err)
	}
}
