package enums

// DerivedStatus is the read-time lifecycle label projected from an order's
// raw status strings and timestamp bundle. It is never persisted.
type DerivedStatus string

const (
	DerivedStatusPending    DerivedStatus = "pending"
	DerivedStatusProcessing DerivedStatus = "processing"
	DerivedStatusShipped    DerivedStatus = "shipped"
	DerivedStatusDelivered  DerivedStatus = "delivered"
)

// String implements fmt.Stringer.
func (s DerivedStatus) String() string {
	return string(s)
}
