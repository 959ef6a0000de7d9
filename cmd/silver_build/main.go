package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"customer_analytics/internal/application/silver"
	"customer_analytics/internal/config"
	"customer_analytics/internal/infrastructure/persistence/csvstore"
	"customer_analytics/pkg/logger"
)

// Rebuilds the full silver layer (orders_silver, rfm, customers_silver) from
// the current bronze snapshot.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	runLog := zlog.WithFields(
		logger.String("stage", "silver_build"),
		logger.String("run_id", uuid.NewString()),
	)

	bronze := csvstore.NewBronzeReader(cfg.Paths.BronzeLayer, cfg.Analytics.BronzeMinRows, runLog)
	store := csvstore.NewSilverStore(cfg.Paths.SilverLayer)

	svc := silver.NewService(bronze, store, runLog)
	if err := svc.Run(context.Background()); err != nil {
		runLog.Fatal("silver build failed", logger.Error(err))
	}
}
