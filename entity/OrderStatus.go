package entity

// OrderStatus moves forward only:
// Pending → Cooking → Cooked → PickedUp → Delivered.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered:
		return true
	}
	return false
}

// Prev returns the status an order must currently hold for s to be a legal
// next step. Pending is initial and has no predecessor.
func (s OrderStatus) Prev() (OrderStatus, bool) {
	switch s {
	case StatusCooking:
		return StatusPending, true
	case StatusCooked:
		return StatusCooking, true
	case StatusPickedUp:
		return StatusCooked, true
	case StatusDelivered:
		return StatusPickedUp, true
	}
	return "", false
}
