package repository

import (
	"context"
	"errors"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	// GetByPaymentIntent is the idempotency lookup: at most one order exists
	// per verified payment reference.
	GetByPaymentIntent(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	PublicIDExists(ctx context.Context, publicID string) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByPaymentIntent(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ord, "user_id = ? AND payment_intent_id = ?", userID, paymentIntentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) PublicIDExists(ctx context.Context, publicID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("public_id = ?", publicID).
		Count(&cnt).Error
	return cnt > 0, err
}
