package avro

import (
	"customer_analytics/internal/domain/analytics"
)

const timestampLayout = "2006-01-02 15:04:05"

// ChurnFeaturesToNative maps a churn feature record to goavro's native
// representation of ChurnFeatureSchema. Union fields use the
// {"type": value} wrapping goavro expects, with nil for absent branches.
func ChurnFeaturesToNative(f analytics.ChurnFeatures) map[string]interface{} {
	native := map[string]interface{}{
		"customer_unique_id":       f.CustomerUniqueID,
		"order_count":              int64(f.OrderCount),
		"total_spend":              f.TotalSpend,
		"avg_order_value":          f.AvgOrderValue,
		"std_order_value":          f.StdOrderValue,
		"total_items":              f.TotalItems,
		"avg_items_per_order":      f.AvgItemsPerOrder,
		"avg_freight_ratio":        f.AvgFreightRatio,
		"avg_delivery_days":        f.AvgDeliveryDays,
		"avg_review_score":         f.AvgReviewScore,
		"single_purchase_customer": int64(f.SinglePurchaseCustomer),
		"churn":                    int64(f.Churn),

		"total_orders":            nil,
		"summary_total_spend":     nil,
		"summary_avg_order_value": nil,
		"first_order":             nil,
		"last_order":              nil,
		"days_active":             nil,
		"orders_per_month":        nil,

		"recency":   nil,
		"frequency": nil,
		"monetary":  nil,
		"r_score":   nil,
		"f_score":   nil,
		"m_score":   nil,
		"rfm_score": nil,
	}

	if c := f.Summary; c != nil {
		native["total_orders"] = unionLong(c.TotalOrders)
		native["summary_total_spend"] = unionDouble(c.TotalSpend)
		if c.AvgOrderValue != nil {
			native["summary_avg_order_value"] = unionDouble(*c.AvgOrderValue)
		}
		native["first_order"] = unionString(c.FirstOrder.Format(timestampLayout))
		native["last_order"] = unionString(c.LastOrder.Format(timestampLayout))
		native["days_active"] = unionLong(c.DaysActive)
		native["orders_per_month"] = unionDouble(c.OrdersPerMonth)
	}

	if r := f.RFM; r != nil {
		native["recency"] = unionLong(r.RecencyDays)
		native["frequency"] = unionLong(r.Frequency)
		native["monetary"] = unionDouble(r.Monetary)
		native["r_score"] = unionLong(r.R)
		native["f_score"] = unionLong(r.F)
		native["m_score"] = unionLong(r.M)
		native["rfm_score"] = unionLong(r.Score)
	}

	return native
}

func unionLong(v int) map[string]interface{} {
	return map[string]interface{}{"long": int64(v)}
}

func unionDouble(v float64) map[string]interface{} {
	return map[string]interface{}{"double": v}
}

func unionString(v string) map[string]interface{} {
	return map[string]interface{}{"string": v}
}
