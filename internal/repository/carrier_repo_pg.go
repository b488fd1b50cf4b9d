package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarrierRepository interface {
	Create(ctx context.Context, carrier *domain.Carrier) error
	GetByID(ctx context.Context, id string) (*domain.Carrier, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// Discount and refund schedules are stored as JSONB documents. They are read
// whole by the fare calculator and never updated piecemeal.

type PGCarrierRepository struct {
	db *pgxpool.Pool
}

func NewCarrierRepository(db *pgxpool.Pool) CarrierRepository {
	return &PGCarrierRepository{db: db}
}

func (r *PGCarrierRepository) Create(ctx context.Context, c *domain.Carrier) error {
	discounts, err := json.Marshal(c.Discounts)
	if err != nil {
		return err
	}
	refunds, err := json.Marshal(c.Refunds)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `INSERT INTO carriers (id, name, discounts, refunds)
		VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.Name, discounts, refunds).Scan(&c.CreatedAt)
}

func (r *PGCarrierRepository) GetByID(ctx context.Context, id string) (*domain.Carrier, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, discounts, refunds, created_at FROM carriers WHERE id=$1`, id)
	var (
		c         domain.Carrier
		discounts []byte
		refunds   []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &discounts, &refunds, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(discounts, &c.Discounts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(refunds, &c.Refunds); err != nil {
		return nil, err
	}
	return &c, nil
}

type PGCustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &PGCustomerRepository{db: db}
}

func (r *PGCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.QueryRow(ctx, `INSERT INTO customers (id, name, loyalty)
		VALUES ($1, $2, $3) RETURNING created_at`,
		c.ID, c.Name, c.Loyalty).Scan(&c.CreatedAt)
}

func (r *PGCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, loyalty, created_at FROM customers WHERE id=$1`, id)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Loyalty, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

var (
	_ CarrierRepository  = (*PGCarrierRepository)(nil)
	_ CustomerRepository = (*PGCustomerRepository)(nil)
)
