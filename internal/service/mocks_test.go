package service_test

import (
	"context"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/repository"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/google/uuid"
)

type decrementCall struct {
	ID  uuid.UUID
	Qty int64
}

type mockInventoryRepo struct {
	GetForUpdateFn  func(ctx context.Context, id uuid.UUID) (*models.ProductSize, error)
	ListForUpdateFn func(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error)
	DecrementFn     func(ctx context.Context, id uuid.UUID, qty int64) (bool, error)

	Decrements []decrementCall
}

func (m *mockInventoryRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return nil, nil
}

func (m *mockInventoryRepo) ListForUpdate(ctx context.Context, ids []uuid.UUID) ([]models.ProductSize, error) {
	if m.ListForUpdateFn != nil {
		return m.ListForUpdateFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockInventoryRepo) Decrement(ctx context.Context, id uuid.UUID, qty int64) (bool, error) {
	m.Decrements = append(m.Decrements, decrementCall{ID: id, Qty: qty})
	if m.DecrementFn != nil {
		return m.DecrementFn(ctx, id, qty)
	}
	return true, nil
}

type mockCartRepo struct {
	GetOrCreateFn            func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListItemsFn              func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	GetItemFn                func(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	GetItemForUpdateFn       func(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	GetItemBySizeForUpdateFn func(ctx context.Context, cartID, productSizeID uuid.UUID) (*models.CartItem, error)
	CreateItemFn             func(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantityFn     func(ctx context.Context, itemID uuid.UUID, qty int64) error
	DeleteItemFn             func(ctx context.Context, cartID, itemID uuid.UUID) (int64, error)
	DeleteItemsFn            func(ctx context.Context, cartID uuid.UUID) (int64, error)

	CreatedItems    []*models.CartItem
	QuantityUpdates map[uuid.UUID]int64
	ClearedCarts    []uuid.UUID
}

func (m *mockCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, userID)
	}
	return &models.Cart{ID: uuid.New(), UserID: userID}, nil
}

func (m *mockCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if m.ListItemsFn != nil {
		return m.ListItemsFn(ctx, cartID)
	}
	return nil, nil
}

func (m *mockCartRepo) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, cartID, itemID)
	}
	return &models.CartItem{ID: itemID, CartID: cartID}, nil
}

func (m *mockCartRepo) GetItemForUpdate(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	if m.GetItemForUpdateFn != nil {
		return m.GetItemForUpdateFn(ctx, cartID, itemID)
	}
	return nil, nil
}

func (m *mockCartRepo) GetItemBySizeForUpdate(ctx context.Context, cartID, productSizeID uuid.UUID) (*models.CartItem, error) {
	if m.GetItemBySizeForUpdateFn != nil {
		return m.GetItemBySizeForUpdateFn(ctx, cartID, productSizeID)
	}
	return nil, nil
}

func (m *mockCartRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	m.CreatedItems = append(m.CreatedItems, item)
	if m.CreateItemFn != nil {
		return m.CreateItemFn(ctx, item)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return nil
}

func (m *mockCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, qty int64) error {
	if m.QuantityUpdates == nil {
		m.QuantityUpdates = make(map[uuid.UUID]int64)
	}
	m.QuantityUpdates[itemID] = qty
	if m.UpdateItemQuantityFn != nil {
		return m.UpdateItemQuantityFn(ctx, itemID, qty)
	}
	return nil
}

func (m *mockCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (int64, error) {
	if m.DeleteItemFn != nil {
		return m.DeleteItemFn(ctx, cartID, itemID)
	}
	return 1, nil
}

func (m *mockCartRepo) DeleteItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	m.ClearedCarts = append(m.ClearedCarts, cartID)
	if m.DeleteItemsFn != nil {
		return m.DeleteItemsFn(ctx, cartID)
	}
	return 0, nil
}

type mockOrderRepo struct {
	CreateFn             func(ctx context.Context, o *models.Order) error
	GetByIDForUserFn     func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetByPaymentIntentFn func(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*models.Order, error)
	ListByUserFn         func(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatusFn       func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	PublicIDExistsFn     func(ctx context.Context, publicID string) (bool, error)

	Created       []*models.Order
	StatusUpdates map[uuid.UUID]models.OrderStatus
}

func (m *mockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	m.Created = append(m.Created, o)
	return nil
}

func (m *mockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFn != nil {
		return m.GetByIDForUserFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockOrderRepo) GetByPaymentIntent(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*models.Order, error) {
	if m.GetByPaymentIntentFn != nil {
		return m.GetByPaymentIntentFn(ctx, userID, paymentIntentID)
	}
	return nil, nil
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.StatusUpdates == nil {
		m.StatusUpdates = make(map[uuid.UUID]models.OrderStatus)
	}
	if m.UpdateStatusFn != nil {
		if err := m.UpdateStatusFn(ctx, id, status); err != nil {
			return err
		}
	}
	m.StatusUpdates[id] = status
	return nil
}

func (m *mockOrderRepo) PublicIDExists(ctx context.Context, publicID string) (bool, error) {
	if m.PublicIDExistsFn != nil {
		return m.PublicIDExistsFn(ctx, publicID)
	}
	return false, nil
}

type mockOrderItemRepo struct {
	BulkCreateFn func(ctx context.Context, items []models.OrderItem) error

	BulkCreated [][]models.OrderItem
}

func (m *mockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	m.BulkCreated = append(m.BulkCreated, items)
	if m.BulkCreateFn != nil {
		return m.BulkCreateFn(ctx, items)
	}
	return nil
}

// passthroughTx runs the closure against the same repository, so transactional
// code paths are testable without a database.
type passthroughTx struct{ repo *repository.Repository }

func (t *passthroughTx) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	return fn(t.repo)
}

type testRepos struct {
	inventory  *mockInventoryRepo
	carts      *mockCartRepo
	orders     *mockOrderRepo
	orderItems *mockOrderItemRepo
	repo       *repository.Repository
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		inventory:  &mockInventoryRepo{},
		carts:      &mockCartRepo{},
		orders:     &mockOrderRepo{},
		orderItems: &mockOrderItemRepo{},
	}
	tr.repo = &repository.Repository{
		Inventory:  tr.inventory,
		Carts:      tr.carts,
		Orders:     tr.orders,
		OrderItems: tr.orderItems,
	}
	tr.repo.Tx = &passthroughTx{repo: tr.repo}
	return tr
}

type mockProcessor struct {
	CreateIntentFn   func(ctx context.Context, in service.CreateIntentInput) (*service.PaymentIntent, error)
	RetrieveIntentFn func(ctx context.Context, id string) (*service.PaymentIntent, error)
	RefundFn         func(ctx context.Context, paymentIntentID string) error

	CreateCalls []service.CreateIntentInput
	RefundCalls []string
}

func (m *mockProcessor) CreateIntent(ctx context.Context, in service.CreateIntentInput) (*service.PaymentIntent, error) {
	m.CreateCalls = append(m.CreateCalls, in)
	if m.CreateIntentFn != nil {
		return m.CreateIntentFn(ctx, in)
	}
	return &service.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (m *mockProcessor) RetrieveIntent(ctx context.Context, id string) (*service.PaymentIntent, error) {
	if m.RetrieveIntentFn != nil {
		return m.RetrieveIntentFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProcessor) Refund(ctx context.Context, paymentIntentID string) error {
	m.RefundCalls = append(m.RefundCalls, paymentIntentID)
	if m.RefundFn != nil {
		return m.RefundFn(ctx, paymentIntentID)
	}
	return nil
}

type mockNotifier struct {
	Confirmed []service.OrderNotification
	Canceled  []service.OrderNotification
	Refunded  []service.OrderNotification

	Err error
}

func (m *mockNotifier) OrderConfirmed(ctx context.Context, n service.OrderNotification) error {
	m.Confirmed = append(m.Confirmed, n)
	return m.Err
}

func (m *mockNotifier) OrderCanceled(ctx context.Context, n service.OrderNotification) error {
	m.Canceled = append(m.Canceled, n)
	return m.Err
}

func (m *mockNotifier) RefundInitiated(ctx context.Context, n service.OrderNotification) error {
	m.Refunded = append(m.Refunded, n)
	return m.Err
}
