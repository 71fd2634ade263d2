package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/croissant676/shopizer/pkg/customer"
)

// CustomerRepository reads customers from PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a customer repository over the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetByNick fetches the customer with the given nick within one store.
func (r *CustomerRepository) GetByNick(ctx context.Context, nick string, storeID int64) (*customer.Customer, error) {
	const query = `
		SELECT id, store_id, nick, first_name, last_name, email, anonymous,
		       billing_country, billing_city, billing_zone, billing_state_province
		FROM customers
		WHERE nick = $1 AND store_id = $2`

	var c customer.Customer
	err := r.pool.QueryRow(ctx, query, nick, storeID).Scan(
		&c.ID, &c.StoreID, &c.Nick, &c.FirstName, &c.LastName, &c.Email, &c.Anonymous,
		&c.Billing.Country, &c.Billing.City, &c.Billing.Zone, &c.Billing.StateProvince,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select customer %q: %w", nick, err)
	}
	return &c, nil
}
