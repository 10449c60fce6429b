package http

import (
	"net/http"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity headers injected by the API gateway after token introspection.
// This service never sees raw credentials.
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
)

// RequireUser rejects requests without a verified user identity and puts the
// user id/email into the request context for the service layer.
func RequireUser(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(headerUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, BaseError{Code: "unauthorized", Message: "missing user identity"})
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid user id header", zap.String("value", raw))
			c.AbortWithStatusJSON(http.StatusUnauthorized, BaseError{Code: "unauthorized", Message: "invalid user identity"})
			return
		}

		ctx := service.WithUserID(c.Request.Context(), userID)
		if email := c.GetHeader(headerUserEmail); email != "" {
			ctx = service.WithUserEmail(ctx, email)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
