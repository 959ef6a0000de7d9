package router

import (
	"github.com/gin-gonic/gin"

	"customer_analytics/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, featureHandler *handler.FeatureHandler) {
	r.GET("/healthz", featureHandler.Health)

	api := r.Group("/api")
	{
		api.GET("/customers/:id/features", featureHandler.GetCustomerFeatures)
	}
}
