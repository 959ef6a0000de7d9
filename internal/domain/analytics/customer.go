package analytics

import "time"

// CustomerSummary is one customer's lifetime aggregates over delivered orders.
type CustomerSummary struct {
	CustomerUniqueID string
	TotalOrders      int
	TotalSpend       float64
	AvgOrderValue    *float64
	FirstOrder       time.Time
	LastOrder        time.Time
	DaysActive       int
	OrdersPerMonth   float64
}

// ChurnFeatures is the gold modeling row: per-customer order aggregates
// recomputed from the silver fact table, the customer summary and RFM record
// (left-joined, may be nil on definitional drift), and the churn label.
// Missing aggregate means/stds are filled to 0 by policy.
type ChurnFeatures struct {
	CustomerUniqueID string

	OrderCount             int
	TotalSpend             float64
	AvgOrderValue          float64
	StdOrderValue          float64
	TotalItems             float64
	AvgItemsPerOrder       float64
	AvgFreightRatio        float64
	AvgDeliveryDays        float64
	AvgReviewScore         float64
	SinglePurchaseCustomer int

	Summary *CustomerSummary
	RFM     *RFMRecord

	Churn int
}
