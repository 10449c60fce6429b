package http

import (
	"errors"
	"net/http"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError maps service errors onto the wire error format.
// External-service failures surface as a generic message; the specifics stay
// in the logs.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		fields := make([]FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, FieldError{Field: f.Field, Message: f.Message})
		}
		c.JSON(http.StatusBadRequest, BaseError{Code: "validation_error", Message: "validation failed", Fields: fields})
		return
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, StockError{
			Code:      "insufficient_stock",
			Message:   stockErr.Error(),
			Available: stockErr.Available,
			Requested: stockErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, BaseError{Code: "unauthorized", Message: "unauthorized"})
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, BaseError{Code: "not_found", Message: err.Error()})
	case errors.Is(err, service.ErrPaymentOwnershipMismatch):
		c.JSON(http.StatusForbidden, BaseError{Code: "ownership_mismatch", Message: err.Error()})
	case errors.Is(err, service.ErrPaymentPreparationFailed):
		c.JSON(http.StatusInternalServerError, BaseError{Code: "payment_preparation_failed", Message: "Payment could not be prepared."})
	case errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidTotal),
		errors.Is(err, service.ErrMissingAttemptID),
		errors.Is(err, service.ErrMissingPaymentReference),
		errors.Is(err, service.ErrInvalidPaymentReference),
		errors.Is(err, service.ErrPaymentNotCompleted),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrCurrencyMismatch),
		errors.Is(err, service.ErrOrderNotCancelable),
		errors.Is(err, service.ErrCancelWindowExpired),
		errors.Is(err, service.ErrRefundFailed):
		c.JSON(http.StatusBadRequest, BaseError{Code: errorCode(err), Message: err.Error()})
	default:
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, BaseError{Code: "internal_error", Message: "internal error"})
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrQuantityInvalid):
		return "quantity_invalid"
	case errors.Is(err, service.ErrCartEmpty):
		return "cart_empty"
	case errors.Is(err, service.ErrInvalidTotal):
		return "invalid_total"
	case errors.Is(err, service.ErrMissingAttemptID):
		return "missing_attempt_id"
	case errors.Is(err, service.ErrMissingPaymentReference):
		return "missing_payment_reference"
	case errors.Is(err, service.ErrInvalidPaymentReference):
		return "invalid_payment_reference"
	case errors.Is(err, service.ErrPaymentNotCompleted):
		return "payment_not_completed"
	case errors.Is(err, service.ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, service.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, service.ErrOrderNotCancelable):
		return "order_not_cancelable"
	case errors.Is(err, service.ErrCancelWindowExpired):
		return "cancel_window_expired"
	case errors.Is(err, service.ErrRefundFailed):
		return "refund_failed"
	default:
		return "bad_request"
	}
}
