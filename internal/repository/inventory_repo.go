package repository

import (
	"context"
	"errors"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepo interface {
	// GetForUpdate takes a FOR UPDATE lock on the inventory row so concurrent
	// stock checks against the same variant serialize.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ProductSize, error)
	// ListForUpdate locks the given rows in ascending id order. Deterministic
	// lock order prevents deadlocks between two multi-item commits.
	ListForUpdate(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error)
	// Decrement is the final stock guard: the conditional UPDATE refuses to
	// drive quantity negative even if an earlier check raced.
	Decrement(ctx context.Context, id uuid.UUID, qty int64) (bool, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepo(db *gorm.DB) InventoryRepo { return &inventoryRepo{db: db} }

func (r *inventoryRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
	var ps models.ProductSize
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		Preload("Size").
		First(&ps, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ps, err
}

func (r *inventoryRepo) ListForUpdate(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.ProductSize
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *inventoryRepo) Decrement(ctx context.Context, id uuid.UUID, qty int64) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE product_sizes
SET quantity = quantity - @q
WHERE id = @id
  AND quantity >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
