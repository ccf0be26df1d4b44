package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository reads customer master data synced from the host ERP.
type CustomerRepository interface {
	Get(ctx context.Context, id int) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

// ProjectRepository reads the project master used as an optional filter.
type ProjectRepository interface {
	Get(ctx context.Context, id int) (*Project, error)
}

type pgCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &pgCustomerRepository{pool: pool}
}

func (r *pgCustomerRepository) Get(ctx context.Context, id int) (*Customer, error) {
	var c Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, company_id, code, name, COALESCE(vat, ''), COALESCE(email, ''), created_at
		FROM customers WHERE id = $1
	`, id).Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.VAT, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d not found", id)
		}
		return nil, fmt.Errorf("failed to load customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *pgCustomerRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, code, name, COALESCE(vat, ''), COALESCE(email, ''), created_at
		FROM customers ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.VAT, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

func (r *pgProjectRepository) Get(ctx context.Context, id int) (*Project, error) {
	var p Project
	err := r.pool.QueryRow(ctx,
		"SELECT id, name FROM projects WHERE id = $1", id,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %d not found", id)
		}
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}
	return &p, nil
}
