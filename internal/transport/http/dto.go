package http

import (
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/google/uuid"
)

// BaseError is the wire error format.
// Code is machine-oriented (snake_case), Message human-readable.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StockError carries availability numbers so the client can adjust quantity.
type StockError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}

type AddCartItemRequest struct {
	ProductSizeID uuid.UUID `json:"product_size_id" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

type CreateIntentRequest struct {
	AttemptID string `json:"attempt_id" binding:"required"`
}

type CreateOrderRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	FullName        string `json:"full_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"`
	PaymentMethod   string `json:"payment_method"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type CartItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductSizeID uuid.UUID `json:"product_size_id"`
	ProductID     uuid.UUID `json:"product_id,omitempty"`
	ProductName   string    `json:"product_name,omitempty"`
	Size          string    `json:"size,omitempty"`
	UnitPrice     string    `json:"unit_price,omitempty"`
	Quantity      int64     `json:"quantity"`
}

type CartResponse struct {
	ID    uuid.UUID          `json:"id"`
	Items []CartItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
}

type OrderResponse struct {
	ID              uuid.UUID `json:"id"`
	PublicID        string    `json:"public_id"`
	FullName        string    `json:"full_name"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	PostalCode      string    `json:"postal_code"`
	Country         string    `json:"country"`
	PaymentMethod   string    `json:"payment_method"`
	Email           string    `json:"email"`
	TotalAmount     string    `json:"total_amount"`
	Currency        string    `json:"currency"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	CardBrand       string    `json:"card_brand"`
	CardLast4       string    `json:"card_last4"`
	CardholderName  string    `json:"cardholder_name"`
	CreatedAt       time.Time `json:"created_at"`

	Items []OrderItemResponse `json:"items"`
}

func toCartItemResponse(it *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:            it.ID,
		ProductSizeID: it.ProductSizeID,
		Quantity:      it.Quantity,
	}
	if ps := it.ProductSize; ps != nil {
		resp.ProductID = ps.ProductID
		if ps.Product != nil {
			resp.ProductName = ps.Product.Name
			resp.UnitPrice = ps.Product.Price.StringFixed(2)
		}
		if ps.Size != nil {
			resp.Size = ps.Size.Name
		}
	}
	return resp
}

func toCartResponse(view *service.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(view.Items))
	for i := range view.Items {
		items = append(items, toCartItemResponse(&view.Items[i]))
	}
	return CartResponse{ID: view.Cart.ID, Items: items}
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Size:        it.SizeName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		PublicID:        o.PublicID,
		FullName:        o.FullName,
		Address:         o.Address,
		City:            o.City,
		State:           o.State,
		PostalCode:      o.PostalCode,
		Country:         o.Country,
		PaymentMethod:   string(o.PaymentMethod),
		Email:           o.Email,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		Currency:        o.Currency,
		PaymentIntentID: o.PaymentIntentID,
		Status:          string(o.Status),
		CardBrand:       o.CardBrand,
		CardLast4:       o.CardLast4,
		CardholderName:  o.CardholderName,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}
