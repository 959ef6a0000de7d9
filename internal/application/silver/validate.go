package silver

import (
	"fmt"

	"customer_analytics/internal/domain/analytics"
)

// validateSilver checks the produced tables against their invariants before
// anything is persisted. A violation here is a build bug, not bad input data.
func validateSilver(facts []analytics.FactOrder, rfm []analytics.RFMRecord) error {
	for _, row := range facts {
		if row.Status != analytics.StatusDelivered {
			return fmt.Errorf("%w: order %s has status %q", analytics.ErrInvariantViolated, row.OrderID, row.Status)
		}
		if row.OrderValue != nil && *row.OrderValue < 0 {
			return fmt.Errorf("%w: order %s has negative order_value %v", analytics.ErrInvariantViolated, row.OrderID, *row.OrderValue)
		}
	}

	for _, rec := range rfm {
		if rec.Score != rec.R+rec.F+rec.M {
			return fmt.Errorf("%w: customer %s RFM_SCORE %d != R+F+M", analytics.ErrInvariantViolated, rec.CustomerUniqueID, rec.Score)
		}
		if rec.Score < 3 || rec.Score > 15 {
			return fmt.Errorf("%w: customer %s RFM_SCORE %d outside [3,15]", analytics.ErrInvariantViolated, rec.CustomerUniqueID, rec.Score)
		}
	}

	return nil
}
