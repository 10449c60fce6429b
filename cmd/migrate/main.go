package main

import (
	"context"
	"os"

	"github.com/kseniiaross/TRESSE-Online-Store/config"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/database"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/logger"
	"github.com/kseniiaross/TRESSE-Online-Store/internal/migrate"

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

	if err := migrate.MigrateShopDB(context.Background(), db, log, migrate.DefaultMigrateOptions()); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration completed")
}
