package http

import (
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func Router(carts service.CartService, orders service.OrderService, webhookSecret string, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cartHandler := NewCartHandler(carts, log)
	orderHandler := NewOrderHandler(orders, webhookSecret, log)

	// Webhook is signed by the processor, not by a user token.
	r.POST("/orders/webhook", orderHandler.Webhook)

	authed := r.Group("/", RequireUser(log))
	{
		authed.GET("/cart", cartHandler.View)
		authed.POST("/cart/items", cartHandler.AddItem)
		authed.PUT("/cart/items/:id", cartHandler.UpdateItem)
		authed.DELETE("/cart/items/:id", cartHandler.RemoveItem)

		authed.POST("/orders/create-intent", orderHandler.CreateIntent)
		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders/my", orderHandler.ListMy)
		authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	}

	return r
}
