package services

import (
	"github.com/GEDDY90/wadoo-backend/entity"
)

// LinePrice computes the effective price of one order line: the dish base
// price plus the surcharge of every matched selection. Matching is by exact
// option name; a selection that matches nothing contributes nothing.
//
// When an option defines both a flat Extra and a choice list, the flat Extra
// wins and the choices are never consulted. Extra == 0 means no flat
// surcharge.
func LinePrice(dish *entity.Dish, selections []entity.ItemOption) int64 {
	price := dish.Price
	for _, sel := range selections {
		opt, ok := findOption(dish.Options, sel.Name)
		if !ok {
			continue
		}
		if opt.Extra != 0 {
			price += opt.Extra
			continue
		}
		for _, ch := range opt.Choices {
			if ch.Name == sel.Choice {
				price += ch.Extra
				break
			}
		}
	}
	return price
}

func findOption(opts []entity.DishOption, name string) (entity.DishOption, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o, true
		}
	}
	return entity.DishOption{}, false
}
