package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(opCtx, `
		INSERT INTO products (id, name, price_minor, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, product.ID, product.Name, product.PriceMinor, product.Quantity, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (domain.Product, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(opCtx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE name = $1
	`, name).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductRecordNotFound
		}
		return domain.Product{}, fmt.Errorf("select product by name: %w", err)
	}

	return product, nil
}

// FindAllByID выбирает товары одним запросом. Отсутствующие id не считаются
// ошибкой: вызывающий слой сам решает, как на это реагировать.
func (r *productRepository) FindAllByID(ctx context.Context, selections []domain.ProductSelection) ([]domain.Product, error) {
	if len(selections) == 0 {
		return []domain.Product{}, nil
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids := make([]string, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ID)
	}

	rows, err := r.db.QueryContext(opCtx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// UpdateQuantity заменяет остатки абсолютными значениями в одной транзакции.
func (r *productRepository) UpdateQuantity(ctx context.Context, selections []domain.ProductSelection) error {
	if len(selections) == 0 {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(opCtx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for _, sel := range selections {
		var res sql.Result
		res, err = tx.ExecContext(opCtx, `
			UPDATE products
			SET quantity = $1,
			    updated_at = $2
			WHERE id = $3
		`, sel.Qty, now, sel.ID)
		if err != nil {
			return fmt.Errorf("update product quantity: %w", err)
		}

		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			err = domain.ErrProductRecordNotFound
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit quantity update: %w", err)
	}

	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
