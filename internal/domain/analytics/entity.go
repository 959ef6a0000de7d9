package analytics

// Bronze layer rows. Timestamps stay as raw strings here; the silver stage
// parses them so that malformed values can propagate as missing instead of
// failing the load.

type Order struct {
	OrderID            string
	CustomerID         string
	Status             string
	PurchaseTimestamp  string
	DeliveredTimestamp string
}

type Customer struct {
	CustomerID       string
	CustomerUniqueID string
	ZipCodePrefix    string
	City             string
	State            string
}

type OrderItem struct {
	OrderID      string
	OrderItemID  string
	Price        *float64
	FreightValue *float64
}

type Payment struct {
	OrderID string
	Value   *float64
	Type    string
}

type Review struct {
	OrderID string
	Score   *float64
}

type Product struct {
	ProductID    string
	CategoryName string
}

// Bronze holds one immutable snapshot of all six raw tables.
type Bronze struct {
	Orders     []Order
	Customers  []Customer
	OrderItems []OrderItem
	Payments   []Payment
	Products   []Product
	Reviews    []Review
}

// StatusDelivered is the only order status that participates in the silver
// layer and everything downstream.
const StatusDelivered = "delivered"
