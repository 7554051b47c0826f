package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GEDDY90/wadoo-backend/entity"
)

func burger() *entity.Dish {
	return &entity.Dish{
		Name:  "House Burger",
		Price: 10,
		Options: []entity.DishOption{
			{Name: "Spicy", Extra: 2},
			{Name: "Size", Choices: []entity.DishChoice{
				{Name: "Regular"},
				{Name: "Large", Extra: 3},
			}},
			{Name: "Combo", Extra: 5, Choices: []entity.DishChoice{
				{Name: "With Drink", Extra: 1},
			}},
		},
	}
}

func TestLinePrice(t *testing.T) {
	tests := []struct {
		name       string
		selections []entity.ItemOption
		want       int64
	}{
		{"no selections", nil, 10},
		{"flat extra", []entity.ItemOption{{Name: "Spicy"}}, 12},
		{"choice extra", []entity.ItemOption{{Name: "Size", Choice: "Large"}}, 13},
		{"choice without extra", []entity.ItemOption{{Name: "Size", Choice: "Regular"}}, 10},
		{"unknown option ignored", []entity.ItemOption{{Name: "Gluten Free"}}, 10},
		{"unknown choice ignored", []entity.ItemOption{{Name: "Size", Choice: "Huge"}}, 10},
		{"case sensitive match", []entity.ItemOption{{Name: "spicy"}}, 10},
		// when an option defines both, the flat extra wins and the choice
		// list is never consulted
		{"flat extra dominates choices", []entity.ItemOption{{Name: "Combo", Choice: "With Drink"}}, 15},
		{"everything combined", []entity.ItemOption{
			{Name: "Spicy"},
			{Name: "Size", Choice: "Large"},
		}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinePrice(burger(), tt.selections))
		})
	}
}

func TestLinePriceDeterministic(t *testing.T) {
	dish := burger()
	sel := []entity.ItemOption{{Name: "Spicy"}, {Name: "Size", Choice: "Large"}}

	first := LinePrice(dish, sel)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, LinePrice(dish, sel))
	}
}
