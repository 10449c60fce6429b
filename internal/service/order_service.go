package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publicIDAttempts = 7

type orderService struct {
	repo      *repository.Repository
	processor PaymentProcessor
	notifier  Notifier
	cfg       Config
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(repo *repository.Repository, processor PaymentProcessor, notifier Notifier, cfg Config, log *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		processor: processor,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// loadedCart is the user's cart with items and resolved catalog data.
type loadedCart struct {
	cart  *models.Cart
	items []models.CartItem
}

func (s *orderService) loadCart(ctx context.Context, userID uuid.UUID) (*loadedCart, error) {
	cart, err := s.repo.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	return &loadedCart{cart: cart, items: items}, nil
}

// priceCart computes the total from live catalog prices and checks every line
// against the current inventory quantity.
func (s *orderService) priceCart(lc *loadedCart) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range lc.items {
		it := &lc.items[i]
		ps := it.ProductSize
		if ps == nil || ps.Product == nil {
			return decimal.Zero, ErrVariantNotFound
		}
		if ps.Quantity < it.Quantity {
			return decimal.Zero, stockError(ps, it.Quantity)
		}
		total = total.Add(ps.Product.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidTotal
	}
	return total, nil
}

func (s *orderService) CreatePaymentIntent(ctx context.Context, attemptID string) (*PaymentIntentResult, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	attemptID = strings.TrimSpace(attemptID)
	if attemptID == "" {
		return nil, ErrMissingAttemptID
	}

	lc, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.priceCartForIntent(lc)
	if err != nil {
		return nil, err
	}

	amountCents := toCents(total)
	sig := cartSignature(lc.items)
	key := buildIdempotencyKey(userID, lc.cart.ID, amountCents, sig, attemptID)

	email, _ := UserEmailFromContext(ctx)

	intent, err := s.processor.CreateIntent(ctx, CreateIntentInput{
		AmountCents:    amountCents,
		Currency:       s.cfg.Currency,
		IdempotencyKey: key,
		ReceiptEmail:   email,
		Description:    fmt.Sprintf("TRESSE order payment (cart #%s)", lc.cart.ID),
		Metadata: map[string]string{
			"user_id":      userID.String(),
			"cart_id":      lc.cart.ID.String(),
			"amount_cents": fmt.Sprintf("%d", amountCents),
			"cart_sig":     sig,
			"attempt_id":   attemptID,
		},
	})
	if err != nil {
		s.log.Error("payment intent creation failed",
			zap.String("user_id", userID.String()),
			zap.String("cart_id", lc.cart.ID.String()),
			zap.Error(err))
		return nil, ErrPaymentPreparationFailed
	}

	return &PaymentIntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// priceCartForIntent skips the stock check: availability is enforced at cart
// mutation time and re-verified at commit, intent creation only needs a price.
func (s *orderService) priceCartForIntent(lc *loadedCart) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range lc.items {
		it := &lc.items[i]
		if it.ProductSize == nil || it.ProductSize.Product == nil {
			return decimal.Zero, ErrVariantNotFound
		}
		total = total.Add(it.ProductSize.Product.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidTotal
	}
	return total, nil
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, bool, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, false, err
	}

	paymentIntentID := strings.TrimSpace(in.PaymentIntentID)
	if paymentIntentID == "" {
		return nil, false, ErrMissingPaymentReference
	}
	if err := in.Shipping.Validate(); err != nil {
		return nil, false, err
	}

	lc, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	total, err := s.priceCart(lc)
	if err != nil {
		return nil, false, err
	}
	expectedCents := toCents(total)

	intent, err := s.processor.RetrieveIntent(ctx, paymentIntentID)
	if err != nil {
		s.log.Warn("payment intent retrieval failed",
			zap.String("user_id", userID.String()),
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, false, ErrInvalidPaymentReference
	}

	// All verification happens before any mutation. A mismatch leaves
	// inventory and cart untouched.
	if intent.Status != PaymentStatusSucceeded {
		return nil, false, fmt.Errorf("%w (status: %s)", ErrPaymentNotCompleted, intent.Status)
	}
	if intent.AmountReceived != expectedCents {
		return nil, false, ErrAmountMismatch
	}
	if !strings.EqualFold(intent.Currency, s.cfg.Currency) {
		return nil, false, ErrCurrencyMismatch
	}
	if intent.Metadata["user_id"] != userID.String() {
		return nil, false, ErrPaymentOwnershipMismatch
	}

	// Idempotency: a retried commit for an already-consumed reference returns
	// the existing order without touching inventory again.
	existing, err := s.repo.Orders.GetByPaymentIntent(ctx, userID, paymentIntentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	email, _ := UserEmailFromContext(ctx)

	var order *models.Order
	err = s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		// Lock the involved inventory rows (ListForUpdate acquires them in
		// ascending id order), then re-verify quantities under the lock.
		ids := make([]uuid.UUID, 0, len(lc.items))
		for i := range lc.items {
			ids = append(ids, lc.items[i].ProductSizeID)
		}

		locked, err := tx.Inventory.ListForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*models.ProductSize, len(locked))
		for i := range locked {
			byID[locked[i].ID] = &locked[i]
		}
		for i := range lc.items {
			it := &lc.items[i]
			row, ok := byID[it.ProductSizeID]
			if !ok {
				return ErrVariantNotFound
			}
			if row.Quantity < it.Quantity {
				// Report the locked quantity, not the pre-lock snapshot.
				serr := stockError(it.ProductSize, it.Quantity)
				serr.Available = row.Quantity
				return serr
			}
		}

		publicID, err := s.newPublicID(ctx, tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:          userID,
			PublicID:        publicID,
			FullName:        in.Shipping.FullName,
			Address:         in.Shipping.Address,
			City:            in.Shipping.City,
			State:           in.Shipping.State,
			PostalCode:      in.Shipping.PostalCode,
			Country:         in.Shipping.Country,
			PaymentMethod:   in.Shipping.PaymentMethod,
			Email:           email,
			TotalAmount:     total,
			Currency:        s.cfg.Currency,
			PaymentIntentID: paymentIntentID,
			Status:          models.OrderStatusPaid,
			CardBrand:       intent.Card.Brand,
			CardLast4:       intent.Card.Last4,
			CardholderName:  intent.Card.HolderName,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(lc.items))
		for i := range lc.items {
			it := &lc.items[i]
			oi := models.OrderItem{
				OrderID:       order.ID,
				ProductID:     it.ProductSize.ProductID,
				ProductSizeID: it.ProductSizeID,
				ProductName:   it.ProductSize.Product.Name,
				Quantity:      it.Quantity,
				UnitPrice:     it.ProductSize.Product.Price,
			}
			if it.ProductSize.Size != nil {
				oi.SizeName = it.ProductSize.Size.Name
			}
			orderItems = append(orderItems, oi)
		}
		if err := tx.OrderItems.BulkCreate(ctx, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		for i := range lc.items {
			it := &lc.items[i]
			ok, err := tx.Inventory.Decrement(ctx, it.ProductSizeID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent commit raced past the check above; the whole
				// transaction rolls back.
				serr := stockError(it.ProductSize, it.Quantity)
				if row := byID[it.ProductSizeID]; row != nil {
					serr.Available = row.Quantity
				}
				return serr
			}
		}

		if _, err := tx.Carts.DeleteItems(ctx, lc.cart.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Two commits for the same reference raced: the unique index on
		// payment_intent_id decided the winner, return its order.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, lookupErr := s.repo.Orders.GetByPaymentIntent(ctx, userID, paymentIntentID)
			if lookupErr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}

	s.notify(ctx, order, func(n OrderNotification) error { return s.notifier.OrderConfirmed(ctx, n) }, "order confirmation")

	return order, true, nil
}

func (s *orderService) newPublicID(ctx context.Context, tx *repository.Repository) (string, error) {
	for i := 0; i < publicIDAttempts; i++ {
		candidate, err := genPublicID(s.now())
		if err != nil {
			return "", err
		}
		exists, err := tx.Orders.PublicIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique public order id after %d attempts", publicIDAttempts)
}

func (s *orderService) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Orders.ListByUser(ctx, userID)
}

func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusPaid {
		return nil, ErrOrderNotCancelable
	}
	if s.now().Sub(ord.CreatedAt) > s.cfg.CancelWindow {
		return nil, ErrCancelWindowExpired
	}

	err = s.repo.Tx.WithTx(ctx, func(tx *repository.Repository) error {
		if err := s.processor.Refund(ctx, ord.PaymentIntentID); err != nil {
			s.log.Error("refund failed",
				zap.String("user_id", userID.String()),
				zap.String("order_id", ord.ID.String()),
				zap.Error(err))
			return ErrRefundFailed
		}
		return tx.Orders.UpdateStatus(ctx, ord.ID, models.OrderStatusCanceled)
	})
	if err != nil {
		return nil, err
	}
	ord.Status = models.OrderStatusCanceled

	s.notify(ctx, ord, func(n OrderNotification) error { return s.notifier.OrderCanceled(ctx, n) }, "order canceled")
	s.notify(ctx, ord, func(n OrderNotification) error { return s.notifier.RefundInitiated(ctx, n) }, "refund initiated")

	return ord, nil
}

// notify is best-effort: a notification failure is logged and never changes
// the outcome of the already-committed transaction.
func (s *orderService) notify(ctx context.Context, ord *models.Order, send func(OrderNotification) error, kind string) {
	if s.notifier == nil {
		return
	}
	if err := send(buildNotification(ord)); err != nil {
		s.log.Error("notification failed",
			zap.String("kind", kind),
			zap.String("order_id", ord.ID.String()),
			zap.Error(err))
	}
}

func buildNotification(ord *models.Order) OrderNotification {
	items := make([]NotificationItem, 0, len(ord.Items))
	for _, it := range ord.Items {
		items = append(items, NotificationItem{
			ProductName: it.ProductName,
			Size:        it.SizeName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
		})
	}
	return OrderNotification{
		OrderID:     ord.ID,
		PublicID:    ord.PublicID,
		Email:       ord.Email,
		TotalAmount: ord.TotalAmount.StringFixed(2),
		Currency:    ord.Currency,
		Items:       items,
	}
}
