package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

// SeedDemo loads one account per role plus a restaurant with priced dishes,
// enough to click through the whole order lifecycle locally. Runs only when
// SEED_DEMO=true and only once.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("seed: users exist, skipping demo data")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := entity.User{Email: "owner@wadoo.dev", Password: string(hash), Name: "Demo Owner", Role: entity.RoleOwner}
	client := entity.User{Email: "client@wadoo.dev", Password: string(hash), Name: "Demo Client", Role: entity.RoleClient}
	driver := entity.User{Email: "driver@wadoo.dev", Password: string(hash), Name: "Demo Driver", Role: entity.RoleDelivery}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []*entity.User{&owner, &client, &driver} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		cat := entity.Category{Name: "Fast Food", Slug: "fast-food"}
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}

		rest := entity.Restaurant{
			Name:       "Demo Diner",
			Address:    "1 Demo Street",
			OwnerID:    owner.ID,
			CategoryID: &cat.ID,
		}
		if err := tx.Create(&rest).Error; err != nil {
			return err
		}

		dishes := []entity.Dish{
			{
				Name: "House Burger", Price: 10, RestaurantID: rest.ID,
				Options: []entity.DishOption{
					{Name: "Spicy", Extra: 2},
					{Name: "Size", Choices: []entity.DishChoice{
						{Name: "Regular"},
						{Name: "Large", Extra: 3},
					}},
				},
			},
			{Name: "Fries", Price: 4, RestaurantID: rest.ID},
		}
		for i := range dishes {
			if err := tx.Create(&dishes[i]).Error; err != nil {
				return err
			}
		}

		log.Println("seed: demo data loaded")
		return nil
	})
}
