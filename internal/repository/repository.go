package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Inventory  InventoryRepo
	Carts      CartRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Tx         TxRunner
}

// TxRunner executes fn inside one database transaction; the Repository handed
// to fn is bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Inventory:  NewInventoryRepo(db),
		Carts:      NewCartRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Tx:         &gormTxRunner{db: db},
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

type gormTxRunner struct{ db *gorm.DB }

func (t *gormTxRunner) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
