package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/repository"
)

type DishService struct {
	Repo     *repository.DishRepository
	RestRepo *repository.RestaurantRepository
}

func NewDishService(repo *repository.DishRepository, restRepo *repository.RestaurantRepository) *DishService {
	return &DishService{Repo: repo, RestRepo: restRepo}
}

type DishIn struct {
	Name        string              `json:"name" binding:"required"`
	Price       int64               `json:"price" binding:"required,min=0"`
	Photo       string              `json:"photo"`
	Description string              `json:"description"`
	Options     []entity.DishOption `json:"options"`
}

func (s *DishService) Create(ctx context.Context, owner *entity.User, restID uint, in *DishIn) (*entity.Dish, error) {
	ok, err := s.RestRepo.IsOwnedBy(ctx, restID, owner.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAllowed
	}

	dish := &entity.Dish{
		Name:         in.Name,
		Price:        in.Price,
		Photo:        in.Photo,
		Description:  in.Description,
		RestaurantID: restID,
		Options:      in.Options,
	}
	if err := s.Repo.Create(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Edit(ctx context.Context, owner *entity.User, dishID uint, in *DishIn) (*entity.Dish, error) {
	dish, err := s.mustOwnDish(ctx, owner, dishID)
	if err != nil {
		return nil, err
	}

	dish.Name = in.Name
	dish.Price = in.Price
	dish.Photo = in.Photo
	dish.Description = in.Description
	dish.Options = in.Options
	if err := s.Repo.Update(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Delete(ctx context.Context, owner *entity.User, dishID uint) error {
	if _, err := s.mustOwnDish(ctx, owner, dishID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, dishID)
}

func (s *DishService) ListByRestaurant(ctx context.Context, restID uint) ([]entity.Dish, error) {
	return s.Repo.ListByRestaurant(ctx, restID)
}

func (s *DishService) mustOwnDish(ctx context.Context, owner *entity.User, dishID uint) (*entity.Dish, error) {
	dish, err := s.Repo.GetWithRestaurant(ctx, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	if dish.Restaurant.OwnerID != owner.ID {
		return nil, ErrNotAllowed
	}
	return dish, nil
}
