package main

import (
	"log"

	"customer_analytics/internal/config"
	ginserver "customer_analytics/internal/infrastructure/http/gin"
	"customer_analytics/internal/infrastructure/persistence/postgres"
	"customer_analytics/internal/interfaces/http/handler"
	"customer_analytics/internal/interfaces/http/router"
	"customer_analytics/pkg/logger"
)

// Serves churn features from the warehouse over HTTP.
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

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	warehouse := postgres.NewFeatureRepository(pool)
	featureHandler := handler.NewFeatureHandler(warehouse)

	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, featureHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	zlog.Info("feature api listening", logger.String("addr", cfg.Server.Address()))
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}
