package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

func userWithRole(id uint, role entity.Role) *entity.User {
	return &entity.User{Model: gorm.Model{ID: id}, Role: role}
}

func TestCanView(t *testing.T) {
	customerID, driverID := uint(1), uint(2)
	order := &entity.Order{
		CustomerID: &customerID,
		DriverID:   &driverID,
		Restaurant: entity.Restaurant{OwnerID: 3},
	}

	var policy OrderPolicy

	tests := []struct {
		name string
		user *entity.User
		want bool
	}{
		{"own customer", userWithRole(1, entity.RoleClient), true},
		{"other customer", userWithRole(9, entity.RoleClient), false},
		{"assigned driver", userWithRole(2, entity.RoleDelivery), true},
		{"other driver", userWithRole(9, entity.RoleDelivery), false},
		{"restaurant owner", userWithRole(3, entity.RoleOwner), true},
		{"other owner", userWithRole(9, entity.RoleOwner), false},
		{"unknown role", userWithRole(1, "admin"), false},
		// same id, wrong role: the relation must match the role
		{"customer id with owner role", userWithRole(1, entity.RoleOwner), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanView(tt.user, order))
		})
	}
}

func TestCanViewUnsetRelations(t *testing.T) {
	var policy OrderPolicy
	order := &entity.Order{Restaurant: entity.Restaurant{OwnerID: 3}}

	assert.False(t, policy.CanView(userWithRole(1, entity.RoleClient), order))
	assert.False(t, policy.CanView(userWithRole(2, entity.RoleDelivery), order))
}

func TestCanTransition(t *testing.T) {
	var policy OrderPolicy
	all := []entity.OrderStatus{
		entity.StatusPending, entity.StatusCooking, entity.StatusCooked,
		entity.StatusPickedUp, entity.StatusDelivered,
	}

	allowed := map[entity.Role]map[entity.OrderStatus]bool{
		entity.RoleClient: {},
		entity.RoleOwner: {
			entity.StatusCooking: true,
			entity.StatusCooked:  true,
		},
		entity.RoleDelivery: {
			entity.StatusPickedUp:  true,
			entity.StatusDelivered: true,
		},
		"admin": {},
	}

	for role, wants := range allowed {
		for _, status := range all {
			got := policy.CanTransition(role, status)
			assert.Equalf(t, wants[status], got, "role %s → %s", role, status)
		}
	}
}
