package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(opCtx, `
		INSERT INTO customers (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
	`, customer.ID, customer.Name, customer.Email, customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(opCtx, `
		SELECT id, name, email, created_at
		FROM customers
		WHERE id = $1
	`, id))
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(opCtx, `
		SELECT id, name, email, created_at
		FROM customers
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

func (r *customerRepository) scanOne(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
