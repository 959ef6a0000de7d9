package analytics

import (
	"sort"
	"time"

	"customer_analytics/pkg/stats"
)

// OrderStats are per-customer aggregates over fact rows. The summary and
// churn stages both compute overlapping spend statistics; funneling both
// through this single function keeps the two definitions from drifting.
type OrderStats struct {
	OrderCount       int
	TotalSpend       float64
	AvgOrderValue    *float64
	StdOrderValue    *float64
	TotalItems       float64
	AvgItemsPerOrder *float64
	AvgFreightRatio  *float64
	AvgDeliveryDays  *float64
	AvgReviewScore   *float64
	FirstOrder       *time.Time
	LastOrder        *time.Time
}

// GroupByCustomer groups fact rows by customer_unique_id, returning the keys
// in ascending order for deterministic output. Rows whose customer join
// failed have no grouping key and are excluded.
func GroupByCustomer(rows []FactOrder) ([]string, map[string][]FactOrder) {
	groups := make(map[string][]FactOrder)
	for _, row := range rows {
		if row.CustomerUniqueID == "" {
			continue
		}
		groups[row.CustomerUniqueID] = append(groups[row.CustomerUniqueID], row)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

// CustomerOrderStats aggregates one customer's fact rows. Sums skip missing
// inputs (all-missing sums to 0); means and the standard deviation are nil
// when undefined.
func CustomerOrderStats(orders []FactOrder) OrderStats {
	var out OrderStats

	seen := make(map[string]struct{}, len(orders))
	var values, items, ratios, deliveries, scores []float64

	for _, o := range orders {
		if _, ok := seen[o.OrderID]; !ok {
			seen[o.OrderID] = struct{}{}
			out.OrderCount++
		}
		if o.OrderValue != nil {
			values = append(values, *o.OrderValue)
		}
		if o.ItemsCount != nil {
			items = append(items, float64(*o.ItemsCount))
		}
		if o.FreightRatio != nil {
			ratios = append(ratios, *o.FreightRatio)
		}
		if o.DeliveryDays != nil {
			deliveries = append(deliveries, float64(*o.DeliveryDays))
		}
		if o.ReviewScore != nil {
			scores = append(scores, *o.ReviewScore)
		}
		if ts := o.PurchaseTimestamp; ts != nil {
			if out.FirstOrder == nil || ts.Before(*out.FirstOrder) {
				out.FirstOrder = ts
			}
			if out.LastOrder == nil || ts.After(*out.LastOrder) {
				out.LastOrder = ts
			}
		}
	}

	out.TotalSpend = stats.Sum(values)
	out.TotalItems = stats.Sum(items)
	out.AvgOrderValue = meanPtr(values)
	out.AvgItemsPerOrder = meanPtr(items)
	out.AvgFreightRatio = meanPtr(ratios)
	out.AvgDeliveryDays = meanPtr(deliveries)
	out.AvgReviewScore = meanPtr(scores)
	if std, ok := stats.SampleStd(values); ok {
		out.StdOrderValue = &std
	}

	return out
}

func meanPtr(values []float64) *float64 {
	mean, ok := stats.Mean(values)
	if !ok {
		return nil
	}
	return &mean
}
