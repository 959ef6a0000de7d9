package csvstore

import (
	"context"
	"path/filepath"

	"customer_analytics/internal/domain/analytics"
)

// SilverStore persists the three silver tables as CSV files and reads them
// back for the gold stage.
type SilverStore struct {
	dir string
}

func NewSilverStore(dir string) *SilverStore {
	return &SilverStore{dir: dir}
}

var factHeader = []string{
	"order_id", "customer_id", "order_status",
	"order_purchase_timestamp", "order_delivered_customer_date",
	"customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state",
	"items_count", "total_price", "total_freight", "avg_item_price",
	"payment_value", "payment_type", "review_score",
	"year", "month", "day", "day_of_week", "hour", "quarter", "is_weekend",
	"delivery_days", "order_value", "freight_ratio",
	"order_value_category", "review_category",
}

func (s *SilverStore) SaveFactOrders(ctx context.Context, rows []analytics.FactOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.OrderID, r.CustomerID, r.Status,
			formatTimePtr(r.PurchaseTimestamp), formatTimePtr(r.DeliveredTimestamp),
			r.CustomerUniqueID, r.CustomerZip, r.CustomerCity, r.CustomerState,
			formatIntPtr(r.ItemsCount), formatFloatPtr(r.TotalPrice),
			formatFloatPtr(r.TotalFreight), formatFloatPtr(r.AvgItemPrice),
			formatFloatPtr(r.PaymentValue), r.PaymentType, formatFloatPtr(r.ReviewScore),
			formatIntPtr(r.Year), formatIntPtr(r.Month), formatIntPtr(r.Day),
			formatIntPtr(r.DayOfWeek), formatIntPtr(r.Hour), formatIntPtr(r.Quarter),
			formatIntPtr(r.IsWeekend),
			formatIntPtr(r.DeliveryDays), formatFloatPtr(r.OrderValue), formatFloatPtr(r.FreightRatio),
			r.OrderValueCategory, r.ReviewCategory,
		})
	}
	return writeTable(filepath.Join(s.dir, "orders_silver.csv"), factHeader, records)
}

func (s *SilverStore) LoadFactOrders(ctx context.Context) ([]analytics.FactOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(filepath.Join(s.dir, "orders_silver.csv"), factHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]analytics.FactOrder, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, analytics.FactOrder{
			OrderID:            t.get(row, "order_id"),
			CustomerID:         t.get(row, "customer_id"),
			Status:             t.get(row, "order_status"),
			PurchaseTimestamp:  parseTimePtr(t.get(row, "order_purchase_timestamp")),
			DeliveredTimestamp: parseTimePtr(t.get(row, "order_delivered_customer_date")),
			CustomerUniqueID:   t.get(row, "customer_unique_id"),
			CustomerZip:        t.get(row, "customer_zip_code_prefix"),
			CustomerCity:       t.get(row, "customer_city"),
			CustomerState:      t.get(row, "customer_state"),
			ItemsCount:         parseIntPtr(t.get(row, "items_count")),
			TotalPrice:         parseFloatPtr(t.get(row, "total_price")),
			TotalFreight:       parseFloatPtr(t.get(row, "total_freight")),
			AvgItemPrice:       parseFloatPtr(t.get(row, "avg_item_price")),
			PaymentValue:       parseFloatPtr(t.get(row, "payment_value")),
			PaymentType:        t.get(row, "payment_type"),
			ReviewScore:        parseFloatPtr(t.get(row, "review_score")),
			Year:               parseIntPtr(t.get(row, "year")),
			Month:              parseIntPtr(t.get(row, "month")),
			Day:                parseIntPtr(t.get(row, "day")),
			DayOfWeek:          parseIntPtr(t.get(row, "day_of_week")),
			Hour:               parseIntPtr(t.get(row, "hour")),
			Quarter:            parseIntPtr(t.get(row, "quarter")),
			IsWeekend:          parseIntPtr(t.get(row, "is_weekend")),
			DeliveryDays:       parseIntPtr(t.get(row, "delivery_days")),
			OrderValue:         parseFloatPtr(t.get(row, "order_value")),
			FreightRatio:       parseFloatPtr(t.get(row, "freight_ratio")),
			OrderValueCategory: t.get(row, "order_value_category"),
			ReviewCategory:     t.get(row, "review_category"),
		})
	}
	return rows, nil
}

var rfmHeader = []string{
	"customer_unique_id", "recency", "frequency", "monetary", "R", "F", "M", "RFM_SCORE",
}

func (s *SilverStore) SaveRFM(ctx context.Context, records []analytics.RFMRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.CustomerUniqueID,
			formatFloat(float64(r.RecencyDays)),
			formatFloat(float64(r.Frequency)),
			formatFloat(r.Monetary),
			formatFloat(float64(r.R)),
			formatFloat(float64(r.F)),
			formatFloat(float64(r.M)),
			formatFloat(float64(r.Score)),
		})
	}
	return writeTable(filepath.Join(s.dir, "rfm.csv"), rfmHeader, rows)
}

func (s *SilverStore) LoadRFM(ctx context.Context) ([]analytics.RFMRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(filepath.Join(s.dir, "rfm.csv"), rfmHeader)
	if err != nil {
		return nil, err
	}

	records := make([]analytics.RFMRecord, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, analytics.RFMRecord{
			CustomerUniqueID: t.get(row, "customer_unique_id"),
			RecencyDays:      parseInt(t.get(row, "recency")),
			Frequency:        parseInt(t.get(row, "frequency")),
			Monetary:         parseFloat(t.get(row, "monetary")),
			R:                parseInt(t.get(row, "R")),
			F:                parseInt(t.get(row, "F")),
			M:                parseInt(t.get(row, "M")),
			Score:            parseInt(t.get(row, "RFM_SCORE")),
		})
	}
	return records, nil
}

var summaryHeader = []string{
	"customer_unique_id", "total_orders", "total_spend", "avg_order_value",
	"first_order", "last_order", "days_active", "orders_per_month",
}

func (s *SilverStore) SaveCustomerSummaries(ctx context.Context, summaries []analytics.CustomerSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(summaries))
	for _, c := range summaries {
		first := c.FirstOrder
		last := c.LastOrder
		rows = append(rows, []string{
			c.CustomerUniqueID,
			formatFloat(float64(c.TotalOrders)),
			formatFloat(c.TotalSpend),
			formatFloatPtr(c.AvgOrderValue),
			formatTimePtr(&first),
			formatTimePtr(&last),
			formatFloat(float64(c.DaysActive)),
			formatFloat(c.OrdersPerMonth),
		})
	}
	return writeTable(filepath.Join(s.dir, "customers_silver.csv"), summaryHeader, rows)
}

func (s *SilverStore) LoadCustomerSummaries(ctx context.Context) ([]analytics.CustomerSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(filepath.Join(s.dir, "customers_silver.csv"), summaryHeader)
	if err != nil {
		return nil, err
	}

	summaries := make([]analytics.CustomerSummary, 0, len(t.rows))
	for _, row := range t.rows {
		summaries = append(summaries, analytics.CustomerSummary{
			CustomerUniqueID: t.get(row, "customer_unique_id"),
			TotalOrders:      parseInt(t.get(row, "total_orders")),
			TotalSpend:       parseFloat(t.get(row, "total_spend")),
			AvgOrderValue:    parseFloatPtr(t.get(row, "avg_order_value")),
			FirstOrder:       parseTime(t.get(row, "first_order")),
			LastOrder:        parseTime(t.get(row, "last_order")),
			DaysActive:       parseInt(t.get(row, "days_active")),
			OrdersPerMonth:   parseFloat(t.get(row, "orders_per_month")),
		})
	}
	return summaries, nil
}
