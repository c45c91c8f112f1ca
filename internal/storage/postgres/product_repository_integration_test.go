package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func sampleProduct(name string, price int64, quantity int32) domain.Product {
	now := time.Now().UTC().Round(time.Microsecond)
	return domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: price,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestProductRepository_PostgresCreateAndFind(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	widget := sampleProduct("Widget", 150, 10)
	gadget := sampleProduct("Gadget", 300, 5)
	for _, p := range []domain.Product{widget, gadget} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create product %s: %v", p.Name, err)
		}
	}

	byName, err := repo.FindByName(ctx, "Widget")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if byName.ID != widget.ID || byName.PriceMinor != 150 || byName.Quantity != 10 {
		t.Fatalf("unexpected product payload: %+v", byName)
	}

	// Батч-выборка: неизвестный id молча пропускается.
	found, err := repo.FindAllByID(ctx, []domain.ProductSelection{
		{ID: widget.ID, Qty: 1},
		{ID: gadget.ID, Qty: 1},
		{ID: uuid.NewString(), Qty: 1},
	})
	if err != nil {
		t.Fatalf("find all by id: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}
}

func TestProductRepository_PostgresUpdateQuantity(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	widget := sampleProduct("Widget", 150, 10)
	if err := repo.Create(ctx, widget); err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Остаток заменяется абсолютным значением, не дельтой.
	if err := repo.UpdateQuantity(ctx, []domain.ProductSelection{{ID: widget.ID, Qty: 7}}); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	got, err := repo.FindByName(ctx, "Widget")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if got.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", got.Quantity)
	}
	if !got.UpdatedAt.After(widget.UpdatedAt) {
		t.Fatalf("expected updated_at to advance: %v <= %v", got.UpdatedAt, widget.UpdatedAt)
	}

	// Неизвестный товар откатывает всю транзакцию.
	err = repo.UpdateQuantity(ctx, []domain.ProductSelection{
		{ID: widget.ID, Qty: 1},
		{ID: uuid.NewString(), Qty: 1},
	})
	if !errors.Is(err, domain.ErrProductRecordNotFound) {
		t.Fatalf("expected ErrProductRecordNotFound, got %v", err)
	}

	after, err := repo.FindByName(ctx, "Widget")
	if err != nil {
		t.Fatalf("find after failed update: %v", err)
	}
	if after.Quantity != 7 {
		t.Fatalf("expected quantity unchanged at 7, got %d", after.Quantity)
	}
}

func TestProductRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	if _, err := repo.FindByName(ctx, "missing"); !errors.Is(err, domain.ErrProductRecordNotFound) {
		t.Fatalf("expected ErrProductRecordNotFound, got %v", err)
	}

	widget := sampleProduct("Widget", 150, 10)
	if err := repo.Create(ctx, widget); err != nil {
		t.Fatalf("create product: %v", err)
	}

	duplicateName := sampleProduct("Widget", 200, 1)
	if err := repo.Create(ctx, duplicateName); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord on duplicate name, got %v", err)
	}
}
