package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/config"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/database"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/logger"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/payment"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/producer"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/repository"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"
	transport "github.com/kseniiaross/TRESSE-Online-Store/internal/transport/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	processor := payment.NewStripeProcessor(cfg.Stripe.SecretKey, log)

	// Notifications go through Kafka; without brokers configured the service
	// runs with notifications disabled.
	var notifier service.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		emailNotifier := producer.NewEmailNotifier(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)
		defer emailNotifier.Close()
		notifier = emailNotifier
	} else {
		log.Warn("KAFKA_BROKERS not set, email notifications disabled")
	}

	checkoutCfg := service.Config{
		Currency:     cfg.Currency,
		CancelWindow: cfg.CancelWindow,
	}

	carts := service.NewCartService(repos)
	orders := service.NewOrderService(repos, processor, notifier, checkoutCfg, log)

	router := transport.Router(carts, orders, cfg.Stripe.WebhookSecret, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
