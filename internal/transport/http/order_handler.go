package http

import (
	"net/http"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/payment"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders        service.OrderService
	webhookSecret string
	log           *zap.Logger
}

func NewOrderHandler(orders service.OrderService, webhookSecret string, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, webhookSecret: webhookSecret, log: log}
}

func (h *OrderHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BaseError{Code: "missing_attempt_id", Message: "attempt_id is required"})
		return
	}

	res, err := h.orders.CreatePaymentIntent(c.Request.Context(), req.AttemptID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, PaymentIntentResponse{
		ClientSecret:    res.ClientSecret,
		PaymentIntentID: res.PaymentIntentID,
	})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, BaseError{Code: "validation_error", Message: "invalid request body"})
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = string(models.PaymentMethodCard)
	}

	order, created, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		PaymentIntentID: req.PaymentIntentID,
		Shipping: service.ShippingDetails{
			FullName:      req.FullName,
			Address:       req.Address,
			City:          req.City,
			State:         req.State,
			PostalCode:    req.PostalCode,
			Country:       req.Country,
			PaymentMethod: models.PaymentMethod(method),
		},
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	// A replayed commit returns the already-created order, not a new one.
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, toOrderResponse(order))
}

func (h *OrderHandler) ListMy(c *gin.Context) {
	orders, err := h.orders.ListMyOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, BaseError{Code: "not_found", Message: "order not found"})
		return
	}

	order, err := h.orders.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Webhook verifies the processor's signature and acknowledges. State is
// driven by the synchronous commit flow, not by webhook events.
func (h *OrderHandler) Webhook(c *gin.Context) {
	if h.webhookSecret == "" {
		h.log.Error("webhook secret is not configured")
		c.JSON(http.StatusInternalServerError, BaseError{Code: "internal_error", Message: "webhook secret not set"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, BaseError{Code: "invalid_webhook", Message: "could not read payload"})
		return
	}

	eventType, err := payment.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.log.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, BaseError{Code: "invalid_webhook", Message: "invalid webhook"})
		return
	}

	h.log.Info("webhook event received", zap.String("type", eventType))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
