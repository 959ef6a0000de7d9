package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"customer_analytics/internal/domain/repository"
)

// FeatureHandler serves churn feature lookups from the warehouse.
type FeatureHandler struct {
	warehouse repository.FeatureWarehouse
}

func NewFeatureHandler(warehouse repository.FeatureWarehouse) *FeatureHandler {
	return &FeatureHandler{warehouse: warehouse}
}

func (h *FeatureHandler) GetCustomerFeatures(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer id is required"})
		return
	}

	features, err := h.warehouse.FindChurnFeatures(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if features == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	resp := gin.H{
		"customer_unique_id":       features.CustomerUniqueID,
		"order_count":              features.OrderCount,
		"total_spend":              features.TotalSpend,
		"avg_order_value":          features.AvgOrderValue,
		"std_order_value":          features.StdOrderValue,
		"total_items":              features.TotalItems,
		"avg_items_per_order":      features.AvgItemsPerOrder,
		"avg_freight_ratio":        features.AvgFreightRatio,
		"avg_delivery_days":        features.AvgDeliveryDays,
		"avg_review_score":         features.AvgReviewScore,
		"single_purchase_customer": features.SinglePurchaseCustomer,
		"churn":                    features.Churn,
	}
	if s := features.Summary; s != nil {
		resp["total_orders"] = s.TotalOrders
		resp["days_active"] = s.DaysActive
		resp["orders_per_month"] = s.OrdersPerMonth
		resp["first_order"] = s.FirstOrder
		resp["last_order"] = s.LastOrder
	}
	if r := features.RFM; r != nil {
		resp["rfm"] = gin.H{
			"recency":   r.RecencyDays,
			"frequency": r.Frequency,
			"monetary":  r.Monetary,
			"R":         r.R,
			"F":         r.F,
			"M":         r.M,
			"RFM_SCORE": r.Score,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FeatureHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
