package silver

import (
	"sort"
	"time"

	"customer_analytics/internal/domain/analytics"
)

// timestampLayouts are tried in order when parsing bronze timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// BuildOrderLevel joins the six bronze tables into the order-level fact
// table. Only delivered orders participate; orders without matching items,
// payments or reviews keep missing aggregates rather than zeros, and an order
// whose customer lookup fails is retained with empty customer fields.
func BuildOrderLevel(bronze *analytics.Bronze) []analytics.FactOrder {
	customers := make(map[string]analytics.Customer, len(bronze.Customers))
	for _, c := range bronze.Customers {
		customers[c.CustomerID] = c
	}

	items := aggregateItems(bronze.OrderItems)
	payments := aggregatePayments(bronze.Payments)
	reviews := aggregateReviews(bronze.Reviews)

	facts := make([]analytics.FactOrder, 0, len(bronze.Orders))
	for _, o := range bronze.Orders {
		if o.Status != analytics.StatusDelivered {
			continue
		}

		row := analytics.FactOrder{
			OrderID:            o.OrderID,
			CustomerID:         o.CustomerID,
			Status:             o.Status,
			PurchaseTimestamp:  parseTimestamp(o.PurchaseTimestamp),
			DeliveredTimestamp: parseTimestamp(o.DeliveredTimestamp),
		}

		if c, ok := customers[o.CustomerID]; ok {
			row.CustomerUniqueID = c.CustomerUniqueID
			row.CustomerZip = c.ZipCodePrefix
			row.CustomerCity = c.City
			row.CustomerState = c.State
		}

		if agg, ok := items[o.OrderID]; ok {
			row.ItemsCount = analytics.Int(agg.count)
			row.TotalPrice = analytics.Float64(agg.totalPrice)
			row.TotalFreight = analytics.Float64(agg.totalFreight)
			if mean, ok := agg.avgPrice(); ok {
				row.AvgItemPrice = analytics.Float64(mean)
			}
		}

		if agg, ok := payments[o.OrderID]; ok {
			row.PaymentValue = analytics.Float64(agg.totalValue)
			row.PaymentType = agg.modalType()
		}

		if agg, ok := reviews[o.OrderID]; ok {
			if mean, ok := agg.meanScore(); ok {
				row.ReviewScore = analytics.Float64(mean)
			}
		}

		facts = append(facts, row)
	}

	return facts
}

// parseTimestamp returns nil for empty or malformed values; per-row parse
// failures propagate as missing, not as stage errors.
func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}

type itemAgg struct {
	count        int
	totalPrice   float64
	totalFreight float64
	priceSum     float64
	priceCount   int
}

func (a itemAgg) avgPrice() (float64, bool) {
	if a.priceCount == 0 {
		return 0, false
	}
	return a.priceSum / float64(a.priceCount), true
}

func aggregateItems(rows []analytics.OrderItem) map[string]itemAgg {
	out := make(map[string]itemAgg)
	for _, it := range rows {
		agg := out[it.OrderID]
		if it.OrderItemID != "" {
			agg.count++
		}
		if it.Price != nil {
			agg.totalPrice += *it.Price
			agg.priceSum += *it.Price
			agg.priceCount++
		}
		if it.FreightValue != nil {
			agg.totalFreight += *it.FreightValue
		}
		out[it.OrderID] = agg
	}
	return out
}

type paymentAgg struct {
	totalValue float64
	typeCounts map[string]int
}

// modalType is the most frequent payment type for the order. Ties break to
// the lexicographically smallest type so the result does not depend on row
// order.
func (a paymentAgg) modalType() string {
	types := make([]string, 0, len(a.typeCounts))
	for t := range a.typeCounts {
		types = append(types, t)
	}
	sort.Strings(types)

	best := ""
	bestCount := 0
	for _, t := range types {
		if a.typeCounts[t] > bestCount {
			best = t
			bestCount = a.typeCounts[t]
		}
	}
	return best
}

func aggregatePayments(rows []analytics.Payment) map[string]paymentAgg {
	out := make(map[string]paymentAgg)
	for _, p := range rows {
		agg, ok := out[p.OrderID]
		if !ok {
			agg = paymentAgg{typeCounts: make(map[string]int)}
		}
		if p.Value != nil {
			agg.totalValue += *p.Value
		}
		if p.Type != "" {
			agg.typeCounts[p.Type]++
		}
		out[p.OrderID] = agg
	}
	return out
}

type reviewAgg struct {
	scoreSum   float64
	scoreCount int
}

func (a reviewAgg) meanScore() (float64, bool) {
	if a.scoreCount == 0 {
		return 0, false
	}
	return a.scoreSum / float64(a.scoreCount), true
}

func aggregateReviews(rows []analytics.Review) map[string]reviewAgg {
	out := make(map[string]reviewAgg)
	for _, r := range rows {
		agg := out[r.OrderID]
		if r.Score != nil {
			agg.scoreSum += *r.Score
			agg.scoreCount++
		}
		out[r.OrderID] = agg
	}
	return out
}
