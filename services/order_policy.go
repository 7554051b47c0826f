package services

import (
	"github.com/GEDDY90/wadoo-backend/entity"
)

// OrderPolicy is the single place deciding who may see an order and which
// target statuses each role may set. Both predicates are pure; callers turn
// false into an authorization failure.
type OrderPolicy struct{}

// transitionRights maps each role to the target statuses it may aim for.
// Clients are a read-only party. Which step is legal from the order's
// current state is enforced separately, by the guarded status update.
var transitionRights = map[entity.Role][]entity.OrderStatus{
	entity.RoleOwner:    {entity.StatusCooking, entity.StatusCooked},
	entity.RoleDelivery: {entity.StatusPickedUp, entity.StatusDelivered},
}

// CanView is true for exactly the order's customer, its assigned driver, and
// the owner of its restaurant.
func (OrderPolicy) CanView(user *entity.User, order *entity.Order) bool {
	switch user.Role {
	case entity.RoleClient:
		return order.CustomerID != nil && *order.CustomerID == user.ID
	case entity.RoleDelivery:
		return order.DriverID != nil && *order.DriverID == user.ID
	case entity.RoleOwner:
		return order.Restaurant.OwnerID == user.ID
	}
	return false
}

func (OrderPolicy) CanTransition(role entity.Role, target entity.OrderStatus) bool {
	for _, s := range transitionRights[role] {
		if s == target {
			return true
		}
	}
	return false
}
