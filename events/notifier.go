package events

import (
	"github.com/GEDDY90/wadoo-backend/entity"
)

// Topics announced by the order service.
const (
	TopicPendingOrders = "orders.pending"
	TopicCookedOrders  = "orders.cooked"
	TopicOrderUpdates  = "orders.updates"
)

// Publisher is the one capability the order service depends on. Publishing is
// fire-and-forget from the service's point of view: a failed publish is
// logged by the caller, never rolled into the order mutation.
type Publisher interface {
	Publish(topic string, payload any) error
}

type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// PendingOrder announces a freshly created order to the owning restaurant's
// owner. OwnerID lets subscribers filter without loading the restaurant.
type PendingOrder struct {
	Order   *entity.Order `json:"order"`
	OwnerID uint          `json:"ownerId"`
}

// CookedOrder announces an order ready for pickup; any delivery driver may
// react to it.
type CookedOrder struct {
	Order *entity.Order `json:"order"`
}

// OrderUpdate carries the mutated order snapshot after every successful
// transition or driver assignment.
type OrderUpdate struct {
	Order *entity.Order `json:"order"`
}
