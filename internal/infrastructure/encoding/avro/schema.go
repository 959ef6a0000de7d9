package avro

// ChurnFeatureSchema is the Avro schema for published churn feature records.
// Summary and RFM attributes come from left joins and may be absent, so those
// fields are nullable unions. Timestamps travel as formatted strings.
const ChurnFeatureSchema = `{
	"type": "record",
	"name": "CustomerChurnFeatures",
	"namespace": "com.analytics.customer",
	"fields": [
		{"name": "customer_unique_id", "type": "string"},

		{"name": "order_count", "type": "long"},
		{"name": "total_spend", "type": "double"},
		{"name": "avg_order_value", "type": "double"},
		{"name": "std_order_value", "type": "double"},
		{"name": "total_items", "type": "double"},
		{"name": "avg_items_per_order", "type": "double"},
		{"name": "avg_freight_ratio", "type": "double"},
		{"name": "avg_delivery_days", "type": "double"},
		{"name": "avg_review_score", "type": "double"},
		{"name": "single_purchase_customer", "type": "long"},

		{"name": "total_orders", "type": ["null", "long"], "default": null},
		{"name": "summary_total_spend", "type": ["null", "double"], "default": null},
		{"name": "summary_avg_order_value", "type": ["null", "double"], "default": null},
		{"name": "first_order", "type": ["null", "string"], "default": null},
		{"name": "last_order", "type": ["null", "string"], "default": null},
		{"name": "days_active", "type": ["null", "long"], "default": null},
		{"name": "orders_per_month", "type": ["null", "double"], "default": null},

		{"name": "recency", "type": ["null", "long"], "default": null},
		{"name": "frequency", "type": ["null", "long"], "default": null},
		{"name": "monetary", "type": ["null", "double"], "default": null},
		{"name": "r_score", "type": ["null", "long"], "default": null},
		{"name": "f_score", "type": ["null", "long"], "default": null},
		{"name": "m_score", "type": ["null", "long"], "default": null},
		{"name": "rfm_score", "type": ["null", "long"], "default": null},

		{"name": "churn", "type": "long"}
	]
}`
