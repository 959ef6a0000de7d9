package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer_analytics/internal/domain/analytics"
)

func TestSilverStore_FactOrdersRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store := NewSilverStore(dir)
	ctx := context.Background()

	purchase := time.Date(2018, 1, 6, 15, 30, 0, 0, time.UTC)
	delivered := time.Date(2018, 1, 10, 9, 0, 0, 0, time.UTC)
	rows := []analytics.FactOrder{
		{
			OrderID:            "o1",
			CustomerID:         "c1",
			Status:             "delivered",
			PurchaseTimestamp:  &purchase,
			DeliveredTimestamp: &delivered,
			CustomerUniqueID:   "u1",
			CustomerCity:       "sao paulo",
			CustomerState:      "SP",
			ItemsCount:         analytics.Int(2),
			TotalPrice:         analytics.Float64(150),
			TotalFreight:       analytics.Float64(15),
			AvgItemPrice:       analytics.Float64(75),
			PaymentValue:       analytics.Float64(165),
			PaymentType:        "credit_card",
			ReviewScore:        analytics.Float64(4.5),
			Year:               analytics.Int(2018),
			Month:              analytics.Int(1),
			Day:                analytics.Int(6),
			DayOfWeek:          analytics.Int(5),
			Hour:               analytics.Int(15),
			Quarter:            analytics.Int(1),
			IsWeekend:          analytics.Int(1),
			DeliveryDays:       analytics.Int(3),
			OrderValue:         analytics.Float64(165),
			FreightRatio:       analytics.Float64(15.0 / 165.0),
			OrderValueCategory: analytics.ValueCategoryHigh,
			ReviewCategory:     analytics.ReviewCategoryExcellent,
		},
		// A row where every derivable field is missing.
		{OrderID: "o2", CustomerID: "c2", Status: "delivered"},
	}

	require.NoError(t, store.SaveFactOrders(ctx, rows))

	loaded, err := store.LoadFactOrders(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, rows[0], loaded[0])

	assert.Equal(t, "o2", loaded[1].OrderID)
	assert.Nil(t, loaded[1].PurchaseTimestamp)
	assert.Nil(t, loaded[1].ItemsCount)
	assert.Nil(t, loaded[1].OrderValue)
	assert.Empty(t, loaded[1].OrderValueCategory)
}

func TestSilverStore_RFMRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store := NewSilverStore(dir)
	ctx := context.Background()

	records := []analytics.RFMRecord{
		{CustomerUniqueID: "u1", RecencyDays: 12, Frequency: 3, Monetary: 412.5, R: 4, F: 3, M: 4, Score: 11},
		{CustomerUniqueID: "u2", RecencyDays: 200, Frequency: 1, Monetary: 35, R: 1, F: 1, M: 1, Score: 3},
	}

	require.NoError(t, store.SaveRFM(ctx, records))

	loaded, err := store.LoadRFM(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestSilverStore_CustomerSummariesRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store := NewSilverStore(dir)
	ctx := context.Background()

	summaries := []analytics.CustomerSummary{
		{
			CustomerUniqueID: "u1",
			TotalOrders:      2,
			TotalSpend:       150,
			AvgOrderValue:    analytics.Float64(75),
			FirstOrder:       time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC),
			LastOrder:        time.Date(2018, 1, 31, 10, 0, 0, 0, time.UTC),
			DaysActive:       30,
			OrdersPerMonth:   2,
		},
	}

	require.NoError(t, store.SaveCustomerSummaries(ctx, summaries))

	loaded, err := store.LoadCustomerSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, summaries, loaded)
}

func TestSilverStore_WriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewSilverStore(dir)

	require.NoError(t, store.SaveRFM(context.Background(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rfm.csv", entries[0].Name())
}

func TestSilverStore_LoadRejectsWrongSchema(t *testing.T) {
	dir := t.TempDir()
	store := NewSilverStore(dir)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "rfm.csv"),
		[]byte("customer_unique_id,recency\nu1,3\n"),
		0o644,
	))

	_, err := store.LoadRFM(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, analytics.ErrMissingColumn)
}

func TestGoldStore_SaveChurnFeatures(t *testing.T) {
	dir := t.TempDir()
	store := NewGoldStore(dir)

	features := []analytics.ChurnFeatures{
		{
			CustomerUniqueID: "u1",
			OrderCount:       2,
			TotalSpend:       150,
			AvgOrderValue:    75,
			TotalItems:       3,
			Churn:            1,
			RFM:              &analytics.RFMRecord{CustomerUniqueID: "u1", RecencyDays: 95, Score: 6},
		},
	}

	require.NoError(t, store.SaveChurnFeatures(context.Background(), features))

	raw, err := os.ReadFile(filepath.Join(dir, "customer_churn_features.csv"))
	require.NoError(t, err)

	lines := splitLines(t, raw)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "customer_unique_id,order_count")
	assert.Contains(t, lines[0], "summary_total_spend")
	// Missing summary block lands as empty cells, not zeros.
	assert.Contains(t, lines[1], "u1,2,150,75,0,3")
	assert.Contains(t, lines[1], ",,,,,,,95,")
}

func splitLines(t *testing.T, raw []byte) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}
