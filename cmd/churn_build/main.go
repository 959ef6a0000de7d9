package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"customer_analytics/internal/application/gold"
	"customer_analytics/internal/config"
	"customer_analytics/internal/domain/repository"
	kafkainfra "customer_analytics/internal/infrastructure/messaging/kafka"
	"customer_analytics/internal/infrastructure/persistence/csvstore"
	"customer_analytics/internal/infrastructure/persistence/postgres"
	"customer_analytics/pkg/logger"
)

// Builds the gold customer_churn_features table from the silver layer, with
// optional warehouse upsert and Kafka publish.
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
		logger.String("stage", "churn_build"),
		logger.String("run_id", uuid.NewString()),
	)

	ctx := context.Background()

	silverStore := csvstore.NewSilverStore(cfg.Paths.SilverLayer)
	goldStore := csvstore.NewGoldStore(cfg.Paths.GoldLayer)

	var warehouse *postgres.FeatureRepository
	if cfg.Warehouse.Enabled {
		pool, err := postgres.NewPool(cfg.DB)
		if err != nil {
			runLog.Fatal("postgres connection failed", logger.Error(err))
		}
		defer pool.Close()
		warehouse = postgres.NewFeatureRepository(pool)
	}

	var publisher *kafkainfra.FeatureProducer
	if cfg.Kafka.Enabled {
		publisher, err = kafkainfra.NewFeatureProducer(cfg.Kafka, runLog)
		if err != nil {
			runLog.Fatal("kafka producer init failed", logger.Error(err))
		}
		defer publisher.Close(ctx)
	}

	// Interface-typed nils must stay nil inside the service.
	svc := buildService(cfg, silverStore, goldStore, warehouse, publisher, runLog)
	if err := svc.Run(ctx); err != nil {
		runLog.Fatal("churn build failed", logger.Error(err))
	}
}

func buildService(
	cfg *config.Config,
	silverStore *csvstore.SilverStore,
	goldStore *csvstore.GoldStore,
	warehouse *postgres.FeatureRepository,
	publisher *kafkainfra.FeatureProducer,
	runLog logger.Logger,
) *gold.Service {
	var wh repository.FeatureWarehouse
	if warehouse != nil {
		wh = warehouse
	}
	var pub gold.Publisher
	if publisher != nil {
		pub = publisher
	}
	return gold.NewService(silverStore, goldStore, wh, pub, cfg.Analytics.ChurnWindowDays, runLog)
}
