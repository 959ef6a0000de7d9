package silver

import (
	"context"
	"fmt"

	"customer_analytics/internal/domain/repository"
	"customer_analytics/pkg/logger"
)

// Service runs the bronze-to-silver stage: join, feature derivation, RFM and
// customer summary, then an atomic persist of the three silver tables.
type Service struct {
	bronze repository.BronzeReader
	store  repository.SilverStore
	log    logger.Logger
}

func NewService(bronze repository.BronzeReader, store repository.SilverStore, log logger.Logger) *Service {
	return &Service{bronze: bronze, store: store, log: log}
}

// Run recomputes the full silver layer from the current bronze snapshot.
// Structural failures abort before any table is written, so a failed run
// never leaves a partially rebuilt layer behind.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("loading bronze layer")
	bronze, err := s.bronze.Load(ctx)
	if err != nil {
		return fmt.Errorf("load bronze: %w", err)
	}
	s.log.Info("bronze layer loaded",
		logger.Int("orders", len(bronze.Orders)),
		logger.Int("customers", len(bronze.Customers)),
		logger.Int("order_items", len(bronze.OrderItems)),
		logger.Int("payments", len(bronze.Payments)),
		logger.Int("products", len(bronze.Products)),
		logger.Int("reviews", len(bronze.Reviews)),
	)

	facts := BuildOrderLevel(bronze)
	s.log.Info("order-level dataset built", logger.Int("rows", len(facts)))

	if err := AddFeatures(facts); err != nil {
		return fmt.Errorf("add features: %w", err)
	}

	rfm, err := BuildRFM(facts)
	if err != nil {
		return fmt.Errorf("build rfm: %w", err)
	}
	s.log.Info("rfm computed", logger.Int("customers", len(rfm)))

	summaries := BuildCustomerSummaries(facts)
	s.log.Info("customer summary built", logger.Int("customers", len(summaries)))

	if err := validateSilver(facts, rfm); err != nil {
		return fmt.Errorf("validate silver: %w", err)
	}

	if err := s.store.SaveFactOrders(ctx, facts); err != nil {
		return fmt.Errorf("save orders_silver: %w", err)
	}
	if err := s.store.SaveRFM(ctx, rfm); err != nil {
		return fmt.Errorf("save rfm: %w", err)
	}
	if err := s.store.SaveCustomerSummaries(ctx, summaries); err != nil {
		return fmt.Errorf("save customers_silver: %w", err)
	}

	s.log.Info("silver layer created")
	return nil
}
