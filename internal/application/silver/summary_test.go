package silver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer_analytics/internal/domain/analytics"
)

func TestBuildCustomerSummaries_TwoOrderCustomer(t *testing.T) {
	first := time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2018, 1, 31, 10, 0, 0, 0, time.UTC)
	rows := []analytics.FactOrder{
		{OrderID: "o1", CustomerUniqueID: "uA", PurchaseTimestamp: &first, OrderValue: analytics.Float64(100)},
		{OrderID: "o2", CustomerUniqueID: "uA", PurchaseTimestamp: &last, OrderValue: analytics.Float64(50)},
	}

	summaries := BuildCustomerSummaries(rows)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "uA", s.CustomerUniqueID)
	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, 150.0, s.TotalSpend)
	require.NotNil(t, s.AvgOrderValue)
	assert.Equal(t, 75.0, *s.AvgOrderValue)
	assert.Equal(t, first, s.FirstOrder)
	assert.Equal(t, last, s.LastOrder)
	assert.Equal(t, 30, s.DaysActive)
	// 30 days active is exactly one month.
	assert.InDelta(t, 2.0, s.OrdersPerMonth, 1e-9)
}

func TestBuildCustomerSummaries_SingleOrderCustomer(t *testing.T) {
	ts := time.Date(2018, 3, 15, 9, 0, 0, 0, time.UTC)
	rows := []analytics.FactOrder{
		{OrderID: "o1", CustomerUniqueID: "uB", PurchaseTimestamp: &ts, OrderValue: analytics.Float64(80)},
	}

	summaries := BuildCustomerSummaries(rows)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 0, s.DaysActive)
	// Denominator floors at one month instead of dividing by zero.
	assert.InDelta(t, 1.0, s.OrdersPerMonth, 1e-9)
}

func TestBuildCustomerSummaries_FastRepeatUnderstatesVelocity(t *testing.T) {
	first := time.Date(2018, 5, 1, 12, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, 3)
	rows := []analytics.FactOrder{
		{OrderID: "o1", CustomerUniqueID: "uC", PurchaseTimestamp: &first, OrderValue: analytics.Float64(10)},
		{OrderID: "o2", CustomerUniqueID: "uC", PurchaseTimestamp: &last, OrderValue: analytics.Float64(10)},
	}

	summaries := BuildCustomerSummaries(rows)
	require.Len(t, summaries, 1)

	// Two orders in three days still reads as two per month.
	assert.InDelta(t, 2.0, summaries[0].OrdersPerMonth, 1e-9)
}

func TestBuildCustomerSummaries_SortedByCustomer(t *testing.T) {
	ts := time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []analytics.FactOrder{
		{OrderID: "o1", CustomerUniqueID: "u-z", PurchaseTimestamp: &ts},
		{OrderID: "o2", CustomerUniqueID: "u-a", PurchaseTimestamp: &ts},
	}

	summaries := BuildCustomerSummaries(rows)
	require.Len(t, summaries, 2)
	assert.Equal(t, "u-a", summaries[0].CustomerUniqueID)
	assert.Equal(t, "u-z", summaries[1].CustomerUniqueID)
}

func TestBuildCustomerSummaries_SkipsCustomersWithoutTimestamps(t *testing.T) {
	rows := []analytics.FactOrder{
		{OrderID: "o1", CustomerUniqueID: "u1"},
	}

	summaries := BuildCustomerSummaries(rows)
	assert.Empty(t, summaries)
}
