package repository

import (
	"context"

	"customer_analytics/internal/domain/analytics"
)

// BronzeReader loads one immutable snapshot of the six raw tables. Schema and
// minimum-row validation happen here, before any stage runs.
type BronzeReader interface {
	Load(ctx context.Context) (*analytics.Bronze, error)
}

// SilverStore persists and reads back the three silver tables. Writes must be
// atomic: either the full table lands or nothing does.
type SilverStore interface {
	SaveFactOrders(ctx context.Context, rows []analytics.FactOrder) error
	SaveRFM(ctx context.Context, records []analytics.RFMRecord) error
	SaveCustomerSummaries(ctx context.Context, summaries []analytics.CustomerSummary) error

	LoadFactOrders(ctx context.Context) ([]analytics.FactOrder, error)
	LoadRFM(ctx context.Context) ([]analytics.RFMRecord, error)
	LoadCustomerSummaries(ctx context.Context) ([]analytics.CustomerSummary, error)
}

// GoldStore persists the final churn feature table.
type GoldStore interface {
	SaveChurnFeatures(ctx context.Context, features []analytics.ChurnFeatures) error
}

// FeatureWarehouse is the queryable sink behind the feature API.
type FeatureWarehouse interface {
	UpsertChurnFeatures(ctx context.Context, features []analytics.ChurnFeatures) error
	FindChurnFeatures(ctx context.Context, customerUniqueID string) (*analytics.ChurnFeatures, error)
}
