package service

import (
	"context"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
)

// CartView is the user's cart with resolved display data.
type CartView struct {
	Cart  *models.Cart
	Items []models.CartItem
}

type CartService interface {
	View(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, productSizeID uuid.UUID, quantity int64) (*models.CartItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int64) (*models.CartItem, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
}
