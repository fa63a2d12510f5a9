package purchase

import (
	"time"

	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// DeriveStatus projects the lifecycle label shown to the dashboard from an
// order's raw status strings and its shipment stamps. Delivery wins over
// shipment, shipment wins over everything the raw statuses say. The
// projection is recomputed on every read and never persisted.
func DeriveStatus(orderStatus enums.OrderStatus, paymentStatus enums.PaymentStatus, shippedAt, deliveredAt *time.Time) enums.DerivedStatus {
	switch {
	case deliveredAt != nil && !deliveredAt.IsZero():
		return enums.DerivedStatusDelivered
	case shippedAt != nil && !shippedAt.IsZero():
		return enums.DerivedStatusShipped
	case orderStatus == enums.OrderStatusProcessing || paymentStatus == enums.PaymentStatusPaid:
		return enums.DerivedStatusProcessing
	default:
		return enums.DerivedStatusPending
	}
}
