package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func authedCtx(userID uuid.UUID) context.Context {
	return service.WithUserID(context.Background(), userID)
}

func variant(name, size, price string, quantity int64) *models.ProductSize {
	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	sz := &models.Size{ID: uuid.New(), Name: size}
	return &models.ProductSize{
		ID:        uuid.New(),
		ProductID: product.ID,
		SizeID:    sz.ID,
		Quantity:  quantity,
		Product:   product,
		Size:      sz,
	}
}

func TestCartAddItem_Unauthorized(t *testing.T) {
	tr := newTestRepos()
	svc := service.NewCartService(tr.repo)

	_, err := svc.AddItem(context.Background(), uuid.New(), 1)
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	tr := newTestRepos()
	svc := service.NewCartService(tr.repo)

	_, err := svc.AddItem(authedCtx(uuid.New()), uuid.New(), 0)
	if !errors.Is(err, service.ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
}

func TestCartAddItem_VariantNotFound(t *testing.T) {
	tr := newTestRepos()
	svc := service.NewCartService(tr.repo)

	_, err := svc.AddItem(authedCtx(uuid.New()), uuid.New(), 1)
	if !errors.Is(err, service.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if len(tr.carts.CreatedItems) != 0 {
		t.Fatal("no cart item should have been created")
	}
}

func TestCartAddItem_OutOfStock(t *testing.T) {
	tr := newTestRepos()
	ps := variant("Silk Dress", "M", "120.00", 0)
	tr.inventory.GetForUpdateFn = func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
		return ps, nil
	}
	svc := service.NewCartService(tr.repo)

	_, err := svc.AddItem(authedCtx(uuid.New()), ps.ID, 1)

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 0 || stockErr.Requested != 1 {
		t.Fatalf("unexpected stock error: %+v", stockErr)
	}
	if stockErr.ProductName != "Silk Dress" || stockErr.SizeName != "M" {
		t.Fatalf("stock error should name the variant: %+v", stockErr)
	}
	if len(tr.carts.CreatedItems) != 0 {
		t.Fatal("no cart item should have been created")
	}
}

func TestCartAddItem_CreatesLine(t *testing.T) {
	tr := newTestRepos()
	ps := variant("Silk Dress", "M", "120.00", 5)
	tr.inventory.GetForUpdateFn = func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
		return ps, nil
	}
	svc := service.NewCartService(tr.repo)

	item, err := svc.AddItem(authedCtx(uuid.New()), ps.ID, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item == nil {
		t.Fatal("expected a cart item")
	}
	if len(tr.carts.CreatedItems) != 1 {
		t.Fatalf("expected 1 created line, got %d", len(tr.carts.CreatedItems))
	}
	if got := tr.carts.CreatedItems[0].Quantity; got != 2 {
		t.Fatalf("created quantity = %d, want 2", got)
	}
}

func TestCartAddItem_AccumulatesExistingLine(t *testing.T) {
	tr := newTestRepos()
	ps := variant("Silk Dress", "M", "120.00", 5)
	existing := &models.CartItem{ID: uuid.New(), ProductSizeID: ps.ID, Quantity: 2}

	tr.inventory.GetForUpdateFn = func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
		return ps, nil
	}
	tr.carts.GetItemBySizeForUpdateFn = func(ctx context.Context, cartID, productSizeID uuid.UUID) (*models.CartItem, error) {
		return existing, nil
	}
	svc := service.NewCartService(tr.repo)

	if _, err := svc.AddItem(authedCtx(uuid.New()), ps.ID, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := tr.carts.QuantityUpdates[existing.ID]; got != 3 {
		t.Fatalf("line quantity = %d, want 3", got)
	}
	if len(tr.carts.CreatedItems) != 0 {
		t.Fatal("existing line should be updated, not duplicated")
	}
}

func TestCartAddItem_AccumulationChecksCombinedQuantity(t *testing.T) {
	tr := newTestRepos()
	ps := variant("Silk Dress", "M", "120.00", 3)
	existing := &models.CartItem{ID: uuid.New(), ProductSizeID: ps.ID, Quantity: 3}

	tr.inventory.GetForUpdateFn = func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
		return ps, nil
	}
	tr.carts.GetItemBySizeForUpdateFn = func(ctx context.Context, cartID, productSizeID uuid.UUID) (*models.CartItem, error) {
		return existing, nil
	}
	svc := service.NewCartService(tr.repo)

	_, err := svc.AddItem(authedCtx(uuid.New()), ps.ID, 1)

	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 3 || stockErr.Requested != 4 {
		t.Fatalf("unexpected stock error: %+v", stockErr)
	}
	if len(tr.carts.QuantityUpdates) != 0 {
		t.Fatal("quantity must not change on a failed add")
	}
}

func TestCartUpdateItem_AbsoluteQuantityCheck(t *testing.T) {
	tr := newTestRepos()
	ps := variant("Silk Dress", "M", "120.00", 3)
	item := &models.CartItem{ID: uuid.New(), ProductSizeID: ps.ID, Quantity: 1}

	tr.carts.GetItemForUpdateFn = func(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
		return item, nil
	}
	tr.inventory.GetForUpdateFn = func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
		return ps, nil
	}
	svc := service.NewCartService(tr.repo)
	ctx := authedCtx(uuid.New())

	if _, err := svc.UpdateItem(ctx, item.ID, 3); err != nil {
		t.Fatalf("UpdateItem to 3: %v", err)
	}
	if got := tr.carts.QuantityUpdates[item.ID]; got != 3 {
		t.Fatalf("line quantity = %d, want 3", got)
	}

	_, err := svc.UpdateItem(ctx, item.ID, 4)
	var stockErr *service.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 3 || stockErr.Requested != 4 {
		t.Fatalf("unexpected stock error: %+v", stockErr)
	}
}

func TestCartUpdateItem_NotFound(t *testing.T) {
	tr := newTestRepos()
	svc := service.NewCartService(tr.repo)

	_, err := svc.UpdateItem(authedCtx(uuid.New()), uuid.New(), 1)
	if !errors.Is(err, service.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartRemoveItem(t *testing.T) {
	tr := newTestRepos()
	svc := service.NewCartService(tr.repo)
	ctx := authedCtx(uuid.New())

	if err := svc.RemoveItem(ctx, uuid.New()); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	tr.carts.DeleteItemFn = func(ctx context.Context, cartID, itemID uuid.UUID) (int64, error) {
		return 0, nil
	}
	if err := svc.RemoveItem(ctx, uuid.New()); !errors.Is(err, service.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartView(t *testing.T) {
	tr := newTestRepos()
	userID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	items := []models.CartItem{{ID: uuid.New(), CartID: cart.ID, Quantity: 2}}

	tr.carts.GetOrCreateFn = func(ctx context.Context, uid uuid.UUID) (*models.Cart, error) {
		if uid != userID {
			t.Fatalf("unexpected user id %s", uid)
		}
		return cart, nil
	}
	tr.carts.ListItemsFn = func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
		return items, nil
	}
	svc := service.NewCartService(tr.repo)

	view, err := svc.View(authedCtx(userID))
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.Cart.ID != cart.ID || len(view.Items) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}
