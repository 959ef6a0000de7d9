package avro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer_analytics/internal/domain/analytics"
)

func TestChurnFeaturesRoundtrip_FullRecord(t *testing.T) {
	encoder, err := NewEncoder(ChurnFeatureSchema)
	require.NoError(t, err)

	features := analytics.ChurnFeatures{
		CustomerUniqueID:       "u1",
		OrderCount:             3,
		TotalSpend:             412.5,
		AvgOrderValue:          137.5,
		StdOrderValue:          12.25,
		TotalItems:             5,
		AvgItemsPerOrder:       1.6667,
		AvgFreightRatio:        0.12,
		AvgDeliveryDays:        9.5,
		AvgReviewScore:         4.2,
		SinglePurchaseCustomer: 0,
		Summary: &analytics.CustomerSummary{
			CustomerUniqueID: "u1",
			TotalOrders:      3,
			TotalSpend:       412.5,
			AvgOrderValue:    analytics.Float64(137.5),
			FirstOrder:       time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC),
			LastOrder:        time.Date(2018, 3, 15, 9, 0, 0, 0, time.UTC),
			DaysActive:       72,
			OrdersPerMonth:   1.5,
		},
		RFM: &analytics.RFMRecord{
			CustomerUniqueID: "u1",
			RecencyDays:      12,
			Frequency:        3,
			Monetary:         412.5,
			R:                4,
			F:                3,
			M:                4,
			Score:            11,
		},
		Churn: 0,
	}

	binary, err := encoder.EncodeNative(ChurnFeaturesToNative(features))
	require.NoError(t, err)
	require.NotEmpty(t, binary)

	decoded, err := encoder.DecodeNative(binary)
	require.NoError(t, err)

	record, ok := decoded.(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "u1", record["customer_unique_id"])
	assert.Equal(t, int64(3), record["order_count"])
	assert.Equal(t, 412.5, record["total_spend"])
	assert.Equal(t, int64(0), record["churn"])

	assert.Equal(t, map[string]interface{}{"long": int64(3)}, record["total_orders"])
	assert.Equal(t, map[string]interface{}{"double": 137.5}, record["summary_avg_order_value"])
	assert.Equal(t, map[string]interface{}{"string": "2018-01-01 10:00:00"}, record["first_order"])
	assert.Equal(t, map[string]interface{}{"long": int64(12)}, record["recency"])
	assert.Equal(t, map[string]interface{}{"long": int64(11)}, record["rfm_score"])
}

func TestChurnFeaturesRoundtrip_MinimalRecord(t *testing.T) {
	encoder, err := NewEncoder(ChurnFeatureSchema)
	require.NoError(t, err)

	features := analytics.ChurnFeatures{
		CustomerUniqueID:       "u2",
		OrderCount:             1,
		TotalSpend:             35,
		AvgOrderValue:          35,
		SinglePurchaseCustomer: 1,
		Churn:                  1,
	}

	binary, err := encoder.EncodeNative(ChurnFeaturesToNative(features))
	require.NoError(t, err)

	decoded, err := encoder.DecodeNative(binary)
	require.NoError(t, err)

	record, ok := decoded.(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "u2", record["customer_unique_id"])
	assert.Equal(t, int64(1), record["single_purchase_customer"])
	assert.Equal(t, int64(1), record["churn"])

	// Absent summary and RFM branches decode as null, not zero values.
	assert.Nil(t, record["total_orders"])
	assert.Nil(t, record["first_order"])
	assert.Nil(t, record["recency"])
	assert.Nil(t, record["rfm_score"])
}

func TestChurnFeaturesToNative_SummaryWithoutAvg(t *testing.T) {
	features := analytics.ChurnFeatures{
		CustomerUniqueID: "u3",
		Summary: &analytics.CustomerSummary{
			CustomerUniqueID: "u3",
			TotalOrders:      1,
			FirstOrder:       time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC),
			LastOrder:        time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	native := ChurnFeaturesToNative(features)

	assert.Equal(t, map[string]interface{}{"long": int64(1)}, native["total_orders"])
	assert.Nil(t, native["summary_avg_order_value"])
}
