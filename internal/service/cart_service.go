package service

import (
	"context"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/repository"

	"github.com/google/uuid"
)

type cartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) View(ctx context.Context) (*CartView, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, Items: items}, nil
}

func (s *cartService) AddItem(ctx context.Context, productSizeID uuid.UUID, quantity int64) (*models.CartItem, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	err = s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		ps, err := tx.Inventory.GetForUpdate(ctx, productSizeID)
		if err != nil {
			return err
		}
		if ps == nil {
			return ErrVariantNotFound
		}

		existing, err := tx.Carts.GetItemBySizeForUpdate(ctx, cart.ID, productSizeID)
		if err != nil {
			return err
		}

		var current int64
		if existing != nil {
			current = existing.Quantity
		}
		newQty := current + quantity

		if newQty > ps.Quantity {
			return stockError(ps, newQty)
		}

		if existing != nil {
			if err := tx.Carts.UpdateItemQuantity(ctx, existing.ID, newQty); err != nil {
				return err
			}
			existing.Quantity = newQty
			item = existing
			return nil
		}

		item = &models.CartItem{
			CartID:        cart.ID,
			ProductSizeID: productSizeID,
			Quantity:      quantity,
		}
		return tx.Carts.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Carts.GetItem(ctx, cart.ID, item.ID)
}

func (s *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int64) (*models.CartItem, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		item, err := tx.Carts.GetItemForUpdate(ctx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}

		ps, err := tx.Inventory.GetForUpdate(ctx, item.ProductSizeID)
		if err != nil {
			return err
		}
		if ps == nil {
			return ErrVariantNotFound
		}

		// The check is against the new absolute quantity, not a delta.
		if quantity > ps.Quantity {
			return stockError(ps, quantity)
		}

		return tx.Carts.UpdateItemQuantity(ctx, item.ID, quantity)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Carts.GetItem(ctx, cart.ID, itemID)
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	userID, err := requireAuth(ctx)
	if err != nil {
		return err
	}

	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	affected, err := s.repo.Carts.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func stockError(ps *models.ProductSize, requested int64) *InsufficientStockError {
	e := &InsufficientStockError{
		Available: ps.Quantity,
		Requested: requested,
	}
	if ps.Product != nil {
		e.ProductName = ps.Product.Name
	}
	if ps.Size != nil {
		e.SizeName = ps.Size.Name
	}
	return e
}
