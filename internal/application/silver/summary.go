package silver

import (
	"customer_analytics/internal/domain/analytics"
)

// BuildCustomerSummaries computes one lifetime-aggregate row per customer.
// Customers with no parseable purchase timestamp are skipped, matching
// BuildRFM, so the two tables always cover the same customers.
func BuildCustomerSummaries(rows []analytics.FactOrder) []analytics.CustomerSummary {
	keys, groups := analytics.GroupByCustomer(rows)

	summaries := make([]analytics.CustomerSummary, 0, len(keys))
	for _, key := range keys {
		agg := analytics.CustomerOrderStats(groups[key])
		if agg.FirstOrder == nil || agg.LastOrder == nil {
			continue
		}

		daysActive := wholeDays(*agg.FirstOrder, *agg.LastOrder)

		// Denominator floor of one month guards single-day-active customers;
		// it understates velocity for genuine repeats inside 30 days.
		months := float64(daysActive) / 30
		if months < 1 {
			months = 1
		}

		summaries = append(summaries, analytics.CustomerSummary{
			CustomerUniqueID: key,
			TotalOrders:      agg.OrderCount,
			TotalSpend:       agg.TotalSpend,
			AvgOrderValue:    agg.AvgOrderValue,
			FirstOrder:       *agg.FirstOrder,
			LastOrder:        *agg.LastOrder,
			DaysActive:       daysActive,
			OrdersPerMonth:   float64(agg.OrderCount) / months,
		})
	}

	return summaries
}
