package postgres

import (
	"context"
	"database/sql"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `INSERT INTO clients (name, address, phone) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, client.Name, client.Address, client.Phone).Scan(&client.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, '') FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address, &c.Phone)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients SET name = $1, address = $2, phone = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, client.Name, client.Address, client.Phone, client.ID)
	return err
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, '') FROM clients ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
