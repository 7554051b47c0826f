package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/repository"
)

// promotionWindow is how long one payment keeps a restaurant promoted.
const promotionWindow = 7 * 24 * time.Hour

type PaymentService struct {
	DB       *gorm.DB
	Repo     *repository.PaymentRepository
	RestRepo *repository.RestaurantRepository
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, restRepo *repository.RestaurantRepository) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, RestRepo: restRepo}
}

// Create records an owner's promotion payment and marks the restaurant
// promoted for the next window, atomically.
func (s *PaymentService) Create(ctx context.Context, owner *entity.User, transactionID string, restID uint) (*entity.Payment, error) {
	rest, err := s.RestRepo.GetByID(ctx, restID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if rest.OwnerID != owner.ID {
		return nil, ErrNotAllowed
	}

	payment := &entity.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  rest.ID,
	}
	until := time.Now().Add(promotionWindow)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, payment); err != nil {
			return err
		}
		return s.RestRepo.Promote(tx, rest.ID, until)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) List(ctx context.Context, user *entity.User) ([]entity.Payment, error) {
	return s.Repo.ListByUser(ctx, user.ID)
}

// ExpirePromotions un-promotes restaurants whose paid window has passed.
func (s *PaymentService) ExpirePromotions(ctx context.Context) error {
	n, err := s.RestRepo.ExpirePromotions(ctx, time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("promotion sweep: expired %d restaurant(s)", n)
	}
	return nil
}

// RunPromotionSweeper calls ExpirePromotions on every tick until ctx ends.
func (s *PaymentService) RunPromotionSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.ExpirePromotions(ctx); err != nil {
				log.Printf("promotion sweep: %v", err)
			}
		}
	}
}
