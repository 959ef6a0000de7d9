package gold

import (
	"context"
	"fmt"
	"math"
	"time"

	"customer_analytics/internal/domain/analytics"
	"customer_analytics/internal/domain/repository"
	"customer_analytics/pkg/logger"
)

// Publisher pushes one finished feature record to the outside world.
type Publisher interface {
	PublishFeatures(ctx context.Context, features analytics.ChurnFeatures) error
}

// Service runs the gold stage: it consumes the three silver tables, derives
// the churn label and per-customer aggregates, and writes the final modeling
// dataset. Warehouse and publisher sinks are optional and run only after the
// gold table is durably written.
type Service struct {
	silver          repository.SilverStore
	gold            repository.GoldStore
	warehouse       repository.FeatureWarehouse
	publisher       Publisher
	churnWindowDays int
	log             logger.Logger
}

func NewService(
	silver repository.SilverStore,
	gold repository.GoldStore,
	warehouse repository.FeatureWarehouse,
	publisher Publisher,
	churnWindowDays int,
	log logger.Logger,
) *Service {
	return &Service{
		silver:          silver,
		gold:            gold,
		warehouse:       warehouse,
		publisher:       publisher,
		churnWindowDays: churnWindowDays,
		log:             log,
	}
}

func (s *Service) Run(ctx context.Context) error {
	facts, err := s.silver.LoadFactOrders(ctx)
	if err != nil {
		return fmt.Errorf("load orders_silver: %w", err)
	}
	summaries, err := s.silver.LoadCustomerSummaries(ctx)
	if err != nil {
		return fmt.Errorf("load customers_silver: %w", err)
	}
	rfm, err := s.silver.LoadRFM(ctx)
	if err != nil {
		return fmt.Errorf("load rfm: %w", err)
	}

	features, err := BuildChurnFeatures(facts, summaries, rfm, s.churnWindowDays)
	if err != nil {
		return fmt.Errorf("build churn features: %w", err)
	}
	s.log.Info("churn dataset built",
		logger.Int("customers", len(features)),
		logger.Int("churn_window_days", s.churnWindowDays),
	)

	if err := s.gold.SaveChurnFeatures(ctx, features); err != nil {
		return fmt.Errorf("save churn features: %w", err)
	}

	if s.warehouse != nil {
		if err := s.warehouse.UpsertChurnFeatures(ctx, features); err != nil {
			return fmt.Errorf("warehouse upsert: %w", err)
		}
		s.log.Info("features upserted to warehouse", logger.Int("customers", len(features)))
	}

	if s.publisher != nil {
		for i, f := range features {
			if err := s.publisher.PublishFeatures(ctx, f); err != nil {
				return fmt.Errorf("publish features #%d: %w", i, err)
			}
		}
		s.log.Info("features published", logger.Int("customers", len(features)))
	}

	s.log.Info("gold layer created")
	return nil
}

// BuildChurnFeatures recomputes per-customer aggregates directly from the
// silver fact table (deliberately not reusing the summary numbers), labels
// churn against the dataset-wide latest purchase timestamp, and left-joins
// the summary and RFM attributes.
func BuildChurnFeatures(
	facts []analytics.FactOrder,
	summaries []analytics.CustomerSummary,
	rfm []analytics.RFMRecord,
	churnWindowDays int,
) ([]analytics.ChurnFeatures, error) {
	datasetEnd, ok := latestPurchase(facts)
	if !ok {
		return nil, fmt.Errorf("churn: %w: no purchase timestamps", analytics.ErrEmptyTable)
	}

	summaryByID := make(map[string]analytics.CustomerSummary, len(summaries))
	for _, s := range summaries {
		summaryByID[s.CustomerUniqueID] = s
	}
	rfmByID := make(map[string]analytics.RFMRecord, len(rfm))
	for _, r := range rfm {
		rfmByID[r.CustomerUniqueID] = r
	}

	keys, groups := analytics.GroupByCustomer(facts)

	features := make([]analytics.ChurnFeatures, 0, len(keys))
	for _, key := range keys {
		agg := analytics.CustomerOrderStats(groups[key])
		if agg.LastOrder == nil {
			// Without a purchase timestamp there is no recency, so no label.
			continue
		}

		f := analytics.ChurnFeatures{
			CustomerUniqueID: key,
			OrderCount:       agg.OrderCount,
			TotalSpend:       agg.TotalSpend,
			AvgOrderValue:    zeroIfMissing(agg.AvgOrderValue),
			StdOrderValue:    zeroIfMissing(agg.StdOrderValue),
			TotalItems:       agg.TotalItems,
			AvgItemsPerOrder: zeroIfMissing(agg.AvgItemsPerOrder),
			AvgFreightRatio:  zeroIfMissing(agg.AvgFreightRatio),
			AvgDeliveryDays:  zeroIfMissing(agg.AvgDeliveryDays),
			AvgReviewScore:   zeroIfMissing(agg.AvgReviewScore),
		}
		if f.OrderCount == 1 {
			f.SinglePurchaseCustomer = 1
		}

		if s, ok := summaryByID[key]; ok {
			summary := s
			f.Summary = &summary
		}
		if r, ok := rfmByID[key]; ok {
			record := r
			f.RFM = &record
		}

		if daysSince(*agg.LastOrder, datasetEnd) > churnWindowDays {
			f.Churn = 1
		}

		features = append(features, f)
	}

	return features, nil
}

// zeroIfMissing implements the gold fill policy: undefined aggregates (e.g.
// the std of a single order) become 0 for model compatibility, trading away
// the unknown-vs-no-variance distinction.
func zeroIfMissing(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func daysSince(last, datasetEnd time.Time) int {
	return int(math.Floor(datasetEnd.Sub(last).Hours() / 24))
}

func latestPurchase(facts []analytics.FactOrder) (time.Time, bool) {
	var max time.Time
	found := false
	for _, row := range facts {
		if row.PurchaseTimestamp != nil && row.PurchaseTimestamp.After(max) {
			max = *row.PurchaseTimestamp
			found = true
		}
	}
	return max, found
}
