package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/repository"
)

type RestaurantService struct {
	Repo    *repository.RestaurantRepository
	CatRepo *repository.CategoryRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository, catRepo *repository.CategoryRepository) *RestaurantService {
	return &RestaurantService{Repo: repo, CatRepo: catRepo}
}

// ----- DTOs from Controller -----

type RestaurantIn struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	CoverImg     string `json:"coverImg"`
	CategoryName string `json:"categoryName"`
}

type RestaurantPage struct {
	Items []entity.Restaurant `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
}

// ----- Owner CRUD -----

func (s *RestaurantService) Create(ctx context.Context, owner *entity.User, in *RestaurantIn) (*entity.Restaurant, error) {
	rest := &entity.Restaurant{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		CoverImg:    in.CoverImg,
		OwnerID:     owner.ID,
	}
	if in.CategoryName != "" {
		cat, err := s.CatRepo.GetOrCreate(ctx, in.CategoryName)
		if err != nil {
			return nil, err
		}
		rest.CategoryID = &cat.ID
	}
	if err := s.Repo.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// Edit updates a restaurant the user owns; only the fields present in the
// request change.
func (s *RestaurantService) Edit(ctx context.Context, owner *entity.User, restID uint, in *RestaurantIn) error {
	if err := s.mustOwn(ctx, restID, owner.ID); err != nil {
		return err
	}

	updates := map[string]any{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Address != "" {
		updates["address"] = in.Address
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.CoverImg != "" {
		updates["cover_img"] = in.CoverImg
	}
	if in.CategoryName != "" {
		cat, err := s.CatRepo.GetOrCreate(ctx, in.CategoryName)
		if err != nil {
			return err
		}
		updates["category_id"] = cat.ID
	}
	if len(updates) == 0 {
		return nil
	}
	return s.Repo.Update(ctx, restID, updates)
}

func (s *RestaurantService) Delete(ctx context.Context, owner *entity.User, restID uint) error {
	if err := s.mustOwn(ctx, restID, owner.ID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, restID)
}

func (s *RestaurantService) Mine(ctx context.Context, owner *entity.User) ([]entity.Restaurant, error) {
	return s.Repo.ListByOwner(ctx, owner.ID)
}

// ----- Public reads -----

func (s *RestaurantService) List(ctx context.Context, page, limit int) (*RestaurantPage, error) {
	items, total, err := s.Repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &RestaurantPage{Items: items, Total: total, Page: page}, nil
}

func (s *RestaurantService) Search(ctx context.Context, query string, page, limit int) (*RestaurantPage, error) {
	items, total, err := s.Repo.Search(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}
	return &RestaurantPage{Items: items, Total: total, Page: page}, nil
}

func (s *RestaurantService) Detail(ctx context.Context, restID uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.GetDetail(ctx, restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Categories(ctx context.Context) ([]entity.Category, error) {
	return s.CatRepo.List(ctx)
}

type CategoryDetail struct {
	Category    *entity.Category    `json:"category"`
	Restaurants []entity.Restaurant `json:"restaurants"`
	Total       int64               `json:"total"`
}

func (s *RestaurantService) CategoryBySlug(ctx context.Context, slug string, page, limit int) (*CategoryDetail, error) {
	cat, err := s.CatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	total, err := s.CatRepo.CountRestaurants(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	rests, err := s.CatRepo.ListRestaurants(ctx, cat.ID, page, limit)
	if err != nil {
		return nil, err
	}
	return &CategoryDetail{Category: cat, Restaurants: rests, Total: total}, nil
}

func (s *RestaurantService) mustOwn(ctx context.Context, restID, userID uint) error {
	rest, err := s.Repo.GetByID(ctx, restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	if rest.OwnerID != userID {
		return ErrNotAllowed
	}
	return nil
}
