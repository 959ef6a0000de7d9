package silver

import (
	"fmt"
	"time"

	"customer_analytics/internal/domain/analytics"
	"customer_analytics/pkg/stats"
)

const rfmBuckets = 5

// BuildRFM computes one recency/frequency/monetary record per customer with
// 1-5 quintile scores. The snapshot anchor is the latest purchase timestamp
// in the fact table plus one day, never the wall clock, so reruns on the same
// input reproduce the same scores.
func BuildRFM(rows []analytics.FactOrder) ([]analytics.RFMRecord, error) {
	snapshot, ok := snapshotDate(rows)
	if !ok {
		return nil, fmt.Errorf("rfm: %w: no purchase timestamps", analytics.ErrEmptyTable)
	}

	keys, groups := analytics.GroupByCustomer(rows)

	records := make([]analytics.RFMRecord, 0, len(keys))
	var recency, frequency, monetary []float64
	for _, key := range keys {
		agg := analytics.CustomerOrderStats(groups[key])
		if agg.LastOrder == nil {
			// No parseable purchase timestamp: recency is undefined, so the
			// customer cannot be scored (and is skipped from the summary too).
			continue
		}
		rec := analytics.RFMRecord{
			CustomerUniqueID: key,
			RecencyDays:      wholeDays(*agg.LastOrder, snapshot),
			Frequency:        agg.OrderCount,
			Monetary:         agg.TotalSpend,
		}
		records = append(records, rec)
		recency = append(recency, float64(rec.RecencyDays))
		frequency = append(frequency, float64(rec.Frequency))
		monetary = append(monetary, rec.Monetary)
	}

	rBuckets, _, err := stats.QuantileBuckets(recency, rfmBuckets)
	if err != nil {
		return nil, fmt.Errorf("recency quintiles: %w", err)
	}
	// Raw frequency is a heavily tied small integer; a direct quantile cut
	// would collapse the bins. Ranking first guarantees five usable buckets.
	fBuckets, _, err := stats.QuantileBuckets(stats.RankFirst(frequency), rfmBuckets)
	if err != nil {
		return nil, fmt.Errorf("frequency quintiles: %w", err)
	}
	mBuckets, _, err := stats.QuantileBuckets(monetary, rfmBuckets)
	if err != nil {
		return nil, fmt.Errorf("monetary quintiles: %w", err)
	}

	for i := range records {
		// Recency scoring is inverted: the most recent bucket scores 5.
		records[i].R = rfmBuckets - rBuckets[i]
		records[i].F = fBuckets[i] + 1
		records[i].M = mBuckets[i] + 1
		records[i].Score = records[i].R + records[i].F + records[i].M
	}

	return records, nil
}

func snapshotDate(rows []analytics.FactOrder) (time.Time, bool) {
	var max time.Time
	found := false
	for _, row := range rows {
		if row.PurchaseTimestamp != nil && row.PurchaseTimestamp.After(max) {
			max = *row.PurchaseTimestamp
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return max.AddDate(0, 0, 1), true
}
