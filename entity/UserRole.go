package entity

// Role is fixed at registration; there is no role-change path.
type Role string

const (
	RoleClient   Role = "client"
	RoleOwner    Role = "owner"
	RoleDelivery Role = "delivery"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}
