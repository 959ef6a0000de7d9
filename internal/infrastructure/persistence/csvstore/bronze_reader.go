package csvstore

import (
	"context"
	"fmt"
	"path/filepath"

	"customer_analytics/internal/domain/analytics"
	"customer_analytics/pkg/logger"
)

// BronzeReader loads the six raw tables from CSV files in the bronze layer
// directory. Required columns and per-table minimum row counts are validated
// here; either failing aborts the stage before any transformation runs.
type BronzeReader struct {
	dir     string
	minRows int
	log     logger.Logger
}

func NewBronzeReader(dir string, minRows int, log logger.Logger) *BronzeReader {
	return &BronzeReader{dir: dir, minRows: minRows, log: log}
}

func (r *BronzeReader) Load(ctx context.Context) (*analytics.Bronze, error) {
	bronze := &analytics.Bronze{}

	orders, err := r.loadTable(ctx, "orders.csv", []string{
		"order_id", "customer_id", "order_status",
		"order_purchase_timestamp", "order_delivered_customer_date",
	})
	if err != nil {
		return nil, err
	}
	for _, row := range orders.rows {
		bronze.Orders = append(bronze.Orders, analytics.Order{
			OrderID:            orders.get(row, "order_id"),
			CustomerID:         orders.get(row, "customer_id"),
			Status:             orders.get(row, "order_status"),
			PurchaseTimestamp:  orders.get(row, "order_purchase_timestamp"),
			DeliveredTimestamp: orders.get(row, "order_delivered_customer_date"),
		})
	}

	customers, err := r.loadTable(ctx, "customers.csv", []string{"customer_id", "customer_unique_id"})
	if err != nil {
		return nil, err
	}
	for _, row := range customers.rows {
		bronze.Customers = append(bronze.Customers, analytics.Customer{
			CustomerID:       customers.get(row, "customer_id"),
			CustomerUniqueID: customers.get(row, "customer_unique_id"),
			ZipCodePrefix:    customers.get(row, "customer_zip_code_prefix"),
			City:             customers.get(row, "customer_city"),
			State:            customers.get(row, "customer_state"),
		})
	}

	items, err := r.loadTable(ctx, "order_items.csv", []string{
		"order_id", "order_item_id", "price", "freight_value",
	})
	if err != nil {
		return nil, err
	}
	for _, row := range items.rows {
		bronze.OrderItems = append(bronze.OrderItems, analytics.OrderItem{
			OrderID:      items.get(row, "order_id"),
			OrderItemID:  items.get(row, "order_item_id"),
			Price:        parseFloatPtr(items.get(row, "price")),
			FreightValue: parseFloatPtr(items.get(row, "freight_value")),
		})
	}

	payments, err := r.loadTable(ctx, "payments.csv", []string{
		"order_id", "payment_value", "payment_type",
	})
	if err != nil {
		return nil, err
	}
	for _, row := range payments.rows {
		bronze.Payments = append(bronze.Payments, analytics.Payment{
			OrderID: payments.get(row, "order_id"),
			Value:   parseFloatPtr(payments.get(row, "payment_value")),
			Type:    payments.get(row, "payment_type"),
		})
	}

	products, err := r.loadTable(ctx, "products.csv", []string{"product_id"})
	if err != nil {
		return nil, err
	}
	for _, row := range products.rows {
		bronze.Products = append(bronze.Products, analytics.Product{
			ProductID:    products.get(row, "product_id"),
			CategoryName: products.get(row, "product_category_name"),
		})
	}

	reviews, err := r.loadTable(ctx, "reviews.csv", []string{"order_id", "review_score"})
	if err != nil {
		return nil, err
	}
	for _, row := range reviews.rows {
		bronze.Reviews = append(bronze.Reviews, analytics.Review{
			OrderID: reviews.get(row, "order_id"),
			Score:   parseFloatPtr(reviews.get(row, "review_score")),
		})
	}

	return bronze, nil
}

func (r *BronzeReader) loadTable(ctx context.Context, file string, required []string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(filepath.Join(r.dir, file), required)
	if err != nil {
		return nil, err
	}
	if len(t.rows) < r.minRows {
		return nil, fmt.Errorf("%s: %w: got %d, want at least %d",
			t.name, analytics.ErrTooFewRows, len(t.rows), r.minRows)
	}

	r.log.Debug("bronze table loaded", logger.String("table", t.name), logger.Int("rows", len(t.rows)))
	return t, nil
}
