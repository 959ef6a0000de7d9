package csvstore

import (
	"context"
	"path/filepath"

	"customer_analytics/internal/domain/analytics"
)

// GoldStore persists the final churn feature table. Summary and RFM columns
// use a prefix where their names would clash with the recomputed aggregates.
type GoldStore struct {
	dir string
}

func NewGoldStore(dir string) *GoldStore {
	return &GoldStore{dir: dir}
}

var churnHeader = []string{
	"customer_unique_id",
	"order_count", "total_spend", "avg_order_value", "std_order_value",
	"total_items", "avg_items_per_order", "avg_freight_ratio",
	"avg_delivery_days", "avg_review_score", "single_purchase_customer",
	"total_orders", "summary_total_spend", "summary_avg_order_value",
	"first_order", "last_order", "days_active", "orders_per_month",
	"recency", "frequency", "monetary", "R", "F", "M", "RFM_SCORE",
	"churn",
}

func (s *GoldStore) SaveChurnFeatures(ctx context.Context, features []analytics.ChurnFeatures) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(features))
	for _, f := range features {
		row := []string{
			f.CustomerUniqueID,
			formatFloat(float64(f.OrderCount)),
			formatFloat(f.TotalSpend),
			formatFloat(f.AvgOrderValue),
			formatFloat(f.StdOrderValue),
			formatFloat(f.TotalItems),
			formatFloat(f.AvgItemsPerOrder),
			formatFloat(f.AvgFreightRatio),
			formatFloat(f.AvgDeliveryDays),
			formatFloat(f.AvgReviewScore),
			formatFloat(float64(f.SinglePurchaseCustomer)),
		}

		if c := f.Summary; c != nil {
			first := c.FirstOrder
			last := c.LastOrder
			row = append(row,
				formatFloat(float64(c.TotalOrders)),
				formatFloat(c.TotalSpend),
				formatFloatPtr(c.AvgOrderValue),
				formatTimePtr(&first),
				formatTimePtr(&last),
				formatFloat(float64(c.DaysActive)),
				formatFloat(c.OrdersPerMonth),
			)
		} else {
			row = append(row, "", "", "", "", "", "", "")
		}

		if r := f.RFM; r != nil {
			row = append(row,
				formatFloat(float64(r.RecencyDays)),
				formatFloat(float64(r.Frequency)),
				formatFloat(r.Monetary),
				formatFloat(float64(r.R)),
				formatFloat(float64(r.F)),
				formatFloat(float64(r.M)),
				formatFloat(float64(r.Score)),
			)
		} else {
			row = append(row, "", "", "", "", "", "", "")
		}

		row = append(row, formatFloat(float64(f.Churn)))
		rows = append(rows, row)
	}

	return writeTable(filepath.Join(s.dir, "customer_churn_features.csv"), churnHeader, rows)
}
