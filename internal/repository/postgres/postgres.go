package postgres

import (
	"database/sql"

	"blueeyes-backoffice/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ClientRepository
	repository.TransactionRepository
	repository.RateRepository
	repository.InventoryRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ClientRepository:      NewClientRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		RateRepository:        NewRateRepository(db),
		InventoryRepository:   NewInventoryRepository(db),
	}
}
