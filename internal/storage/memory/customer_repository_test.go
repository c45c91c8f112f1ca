package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newCustomer() domain.Customer {
	return domain.Customer{
		ID:        "customer-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCustomerRepository_CreateFind(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	customer := newCustomer()

	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if stored.Email != customer.Email {
		t.Fatalf("expected email %s, got %s", customer.Email, stored.Email)
	}
}

func TestCustomerRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	customer := newCustomer()

	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, customer); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCustomerRepository_FindByEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	customer := newCustomer()

	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.FindByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("find by email failed: %v", err)
	}
	if stored.ID != customer.ID {
		t.Fatalf("expected id %s, got %s", customer.ID, stored.ID)
	}
}

func TestCustomerRepository_NotFound(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrCustomerRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrCustomerRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
