package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"customer_analytics/internal/domain/analytics"
)

// FeatureRepository is the queryable warehouse for gold churn features,
// serving the read-only feature API.
type FeatureRepository struct {
	pool *pgxpool.Pool
}

func NewFeatureRepository(pool *pgxpool.Pool) *FeatureRepository {
	return &FeatureRepository{pool: pool}
}

func (r *FeatureRepository) UpsertChurnFeatures(ctx context.Context, features []analytics.ChurnFeatures) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	const query = `
		INSERT INTO customer_churn_features (
			customer_unique_id, order_count, total_spend, avg_order_value,
			std_order_value, total_items, avg_items_per_order, avg_freight_ratio,
			avg_delivery_days, avg_review_score, single_purchase_customer,
			total_orders, summary_total_spend, summary_avg_order_value,
			first_order, last_order, days_active, orders_per_month,
			recency, frequency, monetary, r_score, f_score, m_score, rfm_score,
			churn, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		ON CONFLICT (customer_unique_id) DO UPDATE
		SET order_count = EXCLUDED.order_count,
			total_spend = EXCLUDED.total_spend,
			avg_order_value = EXCLUDED.avg_order_value,
			std_order_value = EXCLUDED.std_order_value,
			total_items = EXCLUDED.total_items,
			avg_items_per_order = EXCLUDED.avg_items_per_order,
			avg_freight_ratio = EXCLUDED.avg_freight_ratio,
			avg_delivery_days = EXCLUDED.avg_delivery_days,
			avg_review_score = EXCLUDED.avg_review_score,
			single_purchase_customer = EXCLUDED.single_purchase_customer,
			total_orders = EXCLUDED.total_orders,
			summary_total_spend = EXCLUDED.summary_total_spend,
			summary_avg_order_value = EXCLUDED.summary_avg_order_value,
			first_order = EXCLUDED.first_order,
			last_order = EXCLUDED.last_order,
			days_active = EXCLUDED.days_active,
			orders_per_month = EXCLUDED.orders_per_month,
			recency = EXCLUDED.recency,
			frequency = EXCLUDED.frequency,
			monetary = EXCLUDED.monetary,
			r_score = EXCLUDED.r_score,
			f_score = EXCLUDED.f_score,
			m_score = EXCLUDED.m_score,
			rfm_score = EXCLUDED.rfm_score,
			churn = EXCLUDED.churn,
			updated_at = EXCLUDED.updated_at;
	`

	now := time.Now().UTC()
	for _, f := range features {
		var (
			totalOrders, daysActive                *int
			summaryTotalSpend, summaryAvgValue     *float64
			firstOrder, lastOrder                  *time.Time
			ordersPerMonth                         *float64
			recency, frequency, rs, fs, ms, score  *int
			monetary                               *float64
		)
		if c := f.Summary; c != nil {
			totalOrders = &c.TotalOrders
			summaryTotalSpend = &c.TotalSpend
			summaryAvgValue = c.AvgOrderValue
			firstOrder = &c.FirstOrder
			lastOrder = &c.LastOrder
			daysActive = &c.DaysActive
			ordersPerMonth = &c.OrdersPerMonth
		}
		if rec := f.RFM; rec != nil {
			recency = &rec.RecencyDays
			frequency = &rec.Frequency
			monetary = &rec.Monetary
			rs = &rec.R
			fs = &rec.F
			ms = &rec.M
			score = &rec.Score
		}

		_, err := r.pool.Exec(ctx, query,
			f.CustomerUniqueID, f.OrderCount, f.TotalSpend, f.AvgOrderValue,
			f.StdOrderValue, f.TotalItems, f.AvgItemsPerOrder, f.AvgFreightRatio,
			f.AvgDeliveryDays, f.AvgReviewScore, f.SinglePurchaseCustomer,
			totalOrders, summaryTotalSpend, summaryAvgValue,
			firstOrder, lastOrder, daysActive, ordersPerMonth,
			recency, frequency, monetary, rs, fs, ms, score,
			f.Churn, now,
		)
		if err != nil {
			return fmt.Errorf("upsert features for %s: %w", f.CustomerUniqueID, err)
		}
	}

	return nil
}

func (r *FeatureRepository) FindChurnFeatures(ctx context.Context, customerUniqueID string) (*analytics.ChurnFeatures, error) {
	const query = `
		SELECT customer_unique_id, order_count, total_spend, avg_order_value,
			std_order_value, total_items, avg_items_per_order, avg_freight_ratio,
			avg_delivery_days, avg_review_score, single_purchase_customer,
			total_orders, summary_total_spend, summary_avg_order_value,
			first_order, last_order, days_active, orders_per_month,
			recency, frequency, monetary, r_score, f_score, m_score, rfm_score,
			churn
		FROM customer_churn_features
		WHERE customer_unique_id = $1;
	`

	var (
		f                                     analytics.ChurnFeatures
		totalOrders, daysActive               *int
		summaryTotalSpend, summaryAvgValue    *float64
		firstOrder, lastOrder                 *time.Time
		ordersPerMonth                        *float64
		recency, frequency, rs, fs, ms, score *int
		monetary                              *float64
	)
	err := r.pool.QueryRow(ctx, query, customerUniqueID).Scan(
		&f.CustomerUniqueID, &f.OrderCount, &f.TotalSpend, &f.AvgOrderValue,
		&f.StdOrderValue, &f.TotalItems, &f.AvgItemsPerOrder, &f.AvgFreightRatio,
		&f.AvgDeliveryDays, &f.AvgReviewScore, &f.SinglePurchaseCustomer,
		&totalOrders, &summaryTotalSpend, &summaryAvgValue,
		&firstOrder, &lastOrder, &daysActive, &ordersPerMonth,
		&recency, &frequency, &monetary, &rs, &fs, &ms, &score,
		&f.Churn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if totalOrders != nil && firstOrder != nil && lastOrder != nil {
		f.Summary = &analytics.CustomerSummary{
			CustomerUniqueID: f.CustomerUniqueID,
			TotalOrders:      *totalOrders,
			TotalSpend:       derefFloat(summaryTotalSpend),
			AvgOrderValue:    summaryAvgValue,
			FirstOrder:       *firstOrder,
			LastOrder:        *lastOrder,
			DaysActive:       derefInt(daysActive),
			OrdersPerMonth:   derefFloat(ordersPerMonth),
		}
	}
	if recency != nil && score != nil {
		f.RFM = &analytics.RFMRecord{
			CustomerUniqueID: f.CustomerUniqueID,
			RecencyDays:      *recency,
			Frequency:        derefInt(frequency),
			Monetary:         derefFloat(monetary),
			R:                derefInt(rs),
			F:                derefInt(fs),
			M:                derefInt(ms),
			Score:            *score,
		}
	}

	return &f, nil
}

func (r *FeatureRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS customer_churn_features (
			customer_unique_id TEXT PRIMARY KEY,
			order_count INT NOT NULL,
			total_spend DOUBLE PRECISION NOT NULL,
			avg_order_value DOUBLE PRECISION NOT NULL,
			std_order_value DOUBLE PRECISION NOT NULL,
			total_items DOUBLE PRECISION NOT NULL,
			avg_items_per_order DOUBLE PRECISION NOT NULL,
			avg_freight_ratio DOUBLE PRECISION NOT NULL,
			avg_delivery_days DOUBLE PRECISION NOT NULL,
			avg_review_score DOUBLE PRECISION NOT NULL,
			single_purchase_customer INT NOT NULL,
			total_orders INT,
			summary_total_spend DOUBLE PRECISION,
			summary_avg_order_value DOUBLE PRECISION,
			first_order TIMESTAMPTZ,
			last_order TIMESTAMPTZ,
			days_active INT,
			orders_per_month DOUBLE PRECISION,
			recency INT,
			frequency INT,
			monetary DOUBLE PRECISION,
			r_score INT,
			f_score INT,
			m_score INT,
			rfm_score INT,
			churn INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
