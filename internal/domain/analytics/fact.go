package analytics

import "time"

// FactOrder is one row of the order-level fact table: a delivered order joined
// with its customer and the per-order aggregates of items, payments and
// reviews, plus the derived features. Pointer fields are missing when the
// source rows were absent or a computation was undefined; they are never
// silently zero.
type FactOrder struct {
	OrderID    string
	CustomerID string
	Status     string

	PurchaseTimestamp  *time.Time
	DeliveredTimestamp *time.Time

	CustomerUniqueID string
	CustomerZip      string
	CustomerCity     string
	CustomerState    string

	ItemsCount   *int
	TotalPrice   *float64
	TotalFreight *float64
	AvgItemPrice *float64

	PaymentValue *float64
	PaymentType  string

	ReviewScore *float64

	// Calendar decomposition of the purchase timestamp. DayOfWeek follows the
	// Monday=0 .. Sunday=6 convention; IsWeekend is 1 for Saturday/Sunday.
	Year      *int
	Month     *int
	Day       *int
	DayOfWeek *int
	Hour      *int
	Quarter   *int
	IsWeekend *int

	DeliveryDays *int

	OrderValue   *float64
	FreightRatio *float64

	OrderValueCategory string
	ReviewCategory     string
}

// Order value category labels, ascending by value quartile.
const (
	ValueCategoryLow     = "Low"
	ValueCategoryMedium  = "Medium"
	ValueCategoryHigh    = "High"
	ValueCategoryPremium = "Premium"
)

// Review category labels for the fixed (0,2] (2,3] (3,4] (4,5] bins.
const (
	ReviewCategoryPoor      = "Poor"
	ReviewCategoryFair      = "Fair"
	ReviewCategoryGood      = "Good"
	ReviewCategoryExcellent = "Excellent"
)
