package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/events"
	"github.com/GEDDY90/wadoo-backend/repository"
)

// OrderService orchestrates order creation, the status lifecycle, driver
// pickup and retrieval. The publisher is injected so tests can record what
// gets announced.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	DishRepo *repository.DishRepository
	RestRepo *repository.RestaurantRepository
	Policy   OrderPolicy
	Pub      events.Publisher
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	dishRepo *repository.DishRepository,
	restRepo *repository.RestaurantRepository,
	pub events.Publisher,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, DishRepo: dishRepo, RestRepo: restRepo, Pub: pub}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	DishID  uint                `json:"dishId" binding:"required"`
	Options []entity.ItemOption `json:"options"`
}
type CreateOrderReq struct {
	RestaurantID uint          `json:"restaurantId" binding:"required"`
	Items        []OrderItemIn `json:"items" binding:"required,min=1"`
}

type CreateOrderRes struct {
	ID    uint  `json:"id"`
	Total int64 `json:"total"`
}

// ----- Create -----

// Create validates the referenced restaurant and dishes, prices every line,
// and writes the order and its items as one transaction. The pending-order
// event goes out only after the commit.
func (s *OrderService) Create(ctx context.Context, customer *entity.User, req *CreateOrderReq) (*CreateOrderRes, error) {
	rest, err := s.RestRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	// resolve and price every line before any write; one missing dish aborts
	// the whole order
	var total int64
	lines := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		dish, err := s.DishRepo.GetByID(ctx, it.DishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDishNotFound
			}
			return nil, err
		}
		total += LinePrice(dish, it.Options)
		lines = append(lines, entity.OrderItem{DishID: dish.ID, Options: it.Options})
	}

	order := entity.Order{
		CustomerID:   &customer.ID,
		RestaurantID: rest.ID,
		Total:        total,
		Status:       entity.StatusPending,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
			if err := s.Repo.CreateItem(tx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = lines

	s.publish(events.TopicPendingOrders, events.PendingOrder{Order: &order, OwnerID: rest.OwnerID})

	return &CreateOrderRes{ID: order.ID, Total: order.Total}, nil
}

// ----- Lifecycle -----

// Edit moves the order to a new status. The actor must be able to see the
// order, the role must be entitled to the target status, and the step must
// be the legal next one from the current state; the last check rides on the
// guarded update so concurrent edits cannot both win.
func (s *OrderService) Edit(ctx context.Context, user *entity.User, orderID uint, status entity.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidTransition
	}

	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !s.Policy.CanView(user, order) {
		return ErrNotAllowed
	}
	if !s.Policy.CanTransition(user.Role, status) {
		return ErrNotAllowed
	}

	prev, ok := status.Prev()
	if !ok {
		// Pending has no predecessor; nothing transitions back into it
		return ErrInvalidTransition
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.UpdateStatusGuard(tx, order.ID, prev, status)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.Status = status
	if user.Role == entity.RoleOwner && status == entity.StatusCooked {
		s.publish(events.TopicCookedOrders, events.CookedOrder{Order: order})
	}
	s.publish(events.TopicOrderUpdates, events.OrderUpdate{Order: order})
	return nil
}

// ----- Retrieval -----

// List returns the orders the user is party to: their own for clients, their
// deliveries for drivers, every order across owned restaurants for owners.
func (s *OrderService) List(ctx context.Context, user *entity.User, status *entity.OrderStatus) ([]entity.Order, error) {
	switch user.Role {
	case entity.RoleClient:
		return s.Repo.ListByCustomer(ctx, user.ID, status)
	case entity.RoleDelivery:
		return s.Repo.ListByDriver(ctx, user.ID, status)
	case entity.RoleOwner:
		ids, err := s.RestRepo.IDsByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return s.Repo.ListByRestaurants(ctx, ids, status)
	}
	return nil, ErrNotAllowed
}

func (s *OrderService) Get(ctx context.Context, user *entity.User, orderID uint) (*entity.Order, error) {
	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !s.Policy.CanView(user, order) {
		return nil, ErrNotAllowed
	}
	return order, nil
}

// ----- Pickup -----

// Take claims the order for a driver. The claim is a single guarded write on
// driver_id IS NULL, so of two racing drivers exactly one wins and the other
// gets ErrOrderTaken. There is no release or reassignment.
func (s *OrderService) Take(ctx context.Context, driver *entity.User, orderID uint) error {
	order, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.DriverID != nil {
		return ErrOrderTaken
	}

	var claimed int64
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.AssignDriverGuard(tx, order.ID, driver.ID)
		if err != nil {
			return err
		}
		claimed = n
		return nil
	})
	if err != nil {
		return err
	}
	if claimed == 0 {
		return ErrOrderTaken
	}

	order.DriverID = &driver.ID
	order.Driver = driver
	s.publish(events.TopicOrderUpdates, events.OrderUpdate{Order: order})
	return nil
}

// publish is fire-and-forget: a notifier failure is logged and never undoes
// the committed order mutation.
func (s *OrderService) publish(topic string, payload any) {
	if err := s.Pub.Publish(topic, payload); err != nil {
		log.Printf("publish %s: %v", topic, err)
	}
}
