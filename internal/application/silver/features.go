package silver

import (
	"fmt"
	"math"
	"time"

	"customer_analytics/internal/domain/analytics"
	"customer_analytics/pkg/stats"
)

var valueCategoryLabels = []string{
	analytics.ValueCategoryLow,
	analytics.ValueCategoryMedium,
	analytics.ValueCategoryHigh,
	analytics.ValueCategoryPremium,
}

// AddFeatures derives the calendar, delivery, value and category columns on
// the fact rows in place. It fails only on a structural problem: too few
// populated order values to form quartiles.
func AddFeatures(rows []analytics.FactOrder) error {
	for i := range rows {
		addCalendarFeatures(&rows[i])
		addValueFeatures(&rows[i])
		rows[i].ReviewCategory = reviewCategory(rows[i].ReviewScore)
	}
	return addValueCategories(rows)
}

func addCalendarFeatures(row *analytics.FactOrder) {
	ts := row.PurchaseTimestamp
	if ts != nil {
		row.Year = analytics.Int(ts.Year())
		row.Month = analytics.Int(int(ts.Month()))
		row.Day = analytics.Int(ts.Day())
		// Weekday shifted to Monday=0 .. Sunday=6.
		dow := (int(ts.Weekday()) + 6) % 7
		row.DayOfWeek = analytics.Int(dow)
		row.Hour = analytics.Int(ts.Hour())
		row.Quarter = analytics.Int((int(ts.Month())-1)/3 + 1)
		weekend := 0
		if dow >= 5 {
			weekend = 1
		}
		row.IsWeekend = analytics.Int(weekend)
	}

	if ts != nil && row.DeliveredTimestamp != nil {
		// May be negative on inconsistent data; surfaced as-is.
		row.DeliveryDays = analytics.Int(wholeDays(*ts, *row.DeliveredTimestamp))
	}
}

func addValueFeatures(row *analytics.FactOrder) {
	if row.TotalPrice == nil || row.TotalFreight == nil {
		return
	}
	value := *row.TotalPrice + *row.TotalFreight
	row.OrderValue = analytics.Float64(value)

	// 0/0 is undefined and stays missing rather than becoming 0.
	if value != 0 {
		row.FreightRatio = analytics.Float64(*row.TotalFreight / value)
	}
}

// addValueCategories buckets the populated order values into data-dependent
// quartiles. The edges come from the current run's distribution, so the same
// order can land in a different category on a different dataset.
func addValueCategories(rows []analytics.FactOrder) error {
	var values []float64
	var positions []int
	for i := range rows {
		if rows[i].OrderValue != nil {
			values = append(values, *rows[i].OrderValue)
			positions = append(positions, i)
		}
	}
	if len(values) == 0 {
		return nil
	}

	buckets, _, err := stats.QuantileBuckets(values, len(valueCategoryLabels))
	if err != nil {
		return fmt.Errorf("order value quartiles: %w", err)
	}
	for j, pos := range positions {
		rows[pos].OrderValueCategory = valueCategoryLabels[buckets[j]]
	}
	return nil
}

// reviewCategory applies the fixed (0,2] (2,3] (3,4] (4,5] bins. Scores of
// exactly 0, outside (0,5], or missing are unclassified and stay empty.
func reviewCategory(score *float64) string {
	if score == nil {
		return ""
	}
	s := *score
	switch {
	case s > 0 && s <= 2:
		return analytics.ReviewCategoryPoor
	case s > 2 && s <= 3:
		return analytics.ReviewCategoryFair
	case s > 3 && s <= 4:
		return analytics.ReviewCategoryGood
	case s > 4 && s <= 5:
		return analytics.ReviewCategoryExcellent
	default:
		return ""
	}
}

// wholeDays is the floored whole-day difference from a to b, negative when b
// precedes a.
func wholeDays(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
