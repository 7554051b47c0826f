package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/configs"
	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/events"
	"github.com/GEDDY90/wadoo-backend/repository"
)

// recordingPublisher stands in for the notifier so tests can assert what was
// announced.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events.Event{Topic: topic, Payload: payload})
	return nil
}

func (p *recordingPublisher) byTopic(topic string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, ev := range p.events {
		if ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// shared-cache in-memory DB, unique per test; one connection keeps
	// sqlite's locking out of the way
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, configs.Migrate(db))
	return db
}

func newOrderService(t *testing.T) (*OrderService, *recordingPublisher, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewDishRepository(db),
		repository.NewRestaurantRepository(db),
		pub,
	)
	return svc, pub, db
}

func seedUser(t *testing.T, db *gorm.DB, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Role: role, Password: "x"}
	// pointer value keeps emails unique within a test DB
	u.Email = fmt.Sprintf("%s-%p@test.dev", role, u)
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, ownerID uint) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: "Demo Diner", OwnerID: ownerID}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedDish(t *testing.T, db *gorm.DB, restID uint, price int64, opts []entity.DishOption) *entity.Dish {
	t.Helper()
	d := &entity.Dish{Name: "Dish", Price: price, RestaurantID: restID, Options: opts}
	require.NoError(t, db.Create(d).Error)
	return d
}

func TestOrderLifecycleHappyPath(t *testing.T) {
	svc, pub, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	driver := seedUser(t, db, entity.RoleDelivery)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, []entity.DishOption{{Name: "Spicy", Extra: 2}})

	out, err := svc.Create(ctx, client, &CreateOrderReq{
		RestaurantID: rest.ID,
		Items:        []OrderItemIn{{DishID: dish.ID, Options: []entity.ItemOption{{Name: "Spicy"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Total)

	order, err := svc.Get(ctx, client, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, order.Status)
	require.Len(t, order.Items, 1)

	// the new pending order was announced to the restaurant owner
	pending := pub.byTopic(events.TopicPendingOrders)
	require.Len(t, pending, 1)
	assert.Equal(t, owner.ID, pending[0].Payload.(events.PendingOrder).OwnerID)

	require.NoError(t, svc.Edit(ctx, owner, out.ID, entity.StatusCooking))
	require.NoError(t, svc.Edit(ctx, owner, out.ID, entity.StatusCooked))
	assert.Len(t, pub.byTopic(events.TopicCookedOrders), 1)

	require.NoError(t, svc.Take(ctx, driver, out.ID))
	require.NoError(t, svc.Edit(ctx, driver, out.ID, entity.StatusPickedUp))
	require.NoError(t, svc.Edit(ctx, driver, out.ID, entity.StatusDelivered))

	order, err = svc.Get(ctx, driver, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, order.Status)
	require.NotNil(t, order.DriverID)
	assert.Equal(t, driver.ID, *order.DriverID)

	// four status changes plus the driver claim
	assert.Len(t, pub.byTopic(events.TopicOrderUpdates), 5)
}

func TestCreateOrderTotalInvariant(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	burger := seedDish(t, db, rest.ID, 10, []entity.DishOption{
		{Name: "Size", Choices: []entity.DishChoice{{Name: "Large", Extra: 3}}},
	})
	fries := seedDish(t, db, rest.ID, 4, nil)

	items := []OrderItemIn{
		{DishID: burger.ID, Options: []entity.ItemOption{{Name: "Size", Choice: "Large"}}},
		{DishID: fries.ID},
		{DishID: fries.ID, Options: []entity.ItemOption{{Name: "Nonexistent"}}},
	}
	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: items})
	require.NoError(t, err)

	// 13 + 4 + 4
	assert.Equal(t, int64(21), out.Total)

	order, err := svc.Get(ctx, client, out.ID)
	require.NoError(t, err)
	var sum int64
	for _, it := range order.Items {
		var dish entity.Dish
		require.NoError(t, db.First(&dish, it.DishID).Error)
		sum += LinePrice(&dish, it.Options)
	}
	assert.Equal(t, order.Total, sum)
}

func TestCreateOrderRestaurantMissing(t *testing.T) {
	svc, pub, db := newOrderService(t)

	client := seedUser(t, db, entity.RoleClient)
	_, err := svc.Create(context.Background(), client, &CreateOrderReq{
		RestaurantID: 999,
		Items:        []OrderItemIn{{DishID: 1}},
	})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Empty(t, pub.events)
}

func TestCreateOrderDishMissingIsAtomic(t *testing.T) {
	svc, pub, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	_, err := svc.Create(ctx, client, &CreateOrderReq{
		RestaurantID: rest.ID,
		Items:        []OrderItemIn{{DishID: dish.ID}, {DishID: 999}},
	})
	assert.ErrorIs(t, err, ErrDishNotFound)

	// nothing from the failed attempt is visible
	var orders, items int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Empty(t, pub.events)
}

func TestEditOrderClientReadOnly(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	// even on their own order, a client may never change status
	err = svc.Edit(ctx, client, out.ID, entity.StatusCooking)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestEditOrderRoleAndVisibility(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	strangerOwner := seedUser(t, db, entity.RoleOwner)
	driver := seedUser(t, db, entity.RoleDelivery)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	// an owner of a different restaurant cannot even see the order
	assert.ErrorIs(t, svc.Edit(ctx, strangerOwner, out.ID, entity.StatusCooking), ErrNotAllowed)

	// an unassigned driver cannot see it either
	assert.ErrorIs(t, svc.Edit(ctx, driver, out.ID, entity.StatusPickedUp), ErrNotAllowed)

	// the owner may not aim for delivery-side statuses
	assert.ErrorIs(t, svc.Edit(ctx, owner, out.ID, entity.StatusDelivered), ErrNotAllowed)

	assert.ErrorIs(t, svc.Edit(ctx, owner, out.ID, "Burnt"), ErrInvalidTransition)

	assert.ErrorIs(t, svc.Edit(ctx, owner, 999, entity.StatusCooking), ErrOrderNotFound)
}

func TestEditOrderEnforcesAdjacency(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	// Cooked straight from Pending skips Cooking
	assert.ErrorIs(t, svc.Edit(ctx, owner, out.ID, entity.StatusCooked), ErrInvalidTransition)

	require.NoError(t, svc.Edit(ctx, owner, out.ID, entity.StatusCooking))

	// no going backward
	assert.ErrorIs(t, svc.Edit(ctx, owner, out.ID, entity.StatusCooking), ErrInvalidTransition)
}

func TestTakeOrder(t *testing.T) {
	svc, pub, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	first := seedUser(t, db, entity.RoleDelivery)
	second := seedUser(t, db, entity.RoleDelivery)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Take(ctx, first, 999), ErrOrderNotFound)

	require.NoError(t, svc.Take(ctx, first, out.ID))
	assert.ErrorIs(t, svc.Take(ctx, second, out.ID), ErrOrderTaken)

	order, err := svc.Get(ctx, first, out.ID)
	require.NoError(t, err)
	require.NotNil(t, order.DriverID)
	assert.Equal(t, first.ID, *order.DriverID)

	// only the winner's claim was announced
	assert.Len(t, pub.byTopic(events.TopicOrderUpdates), 1)
}

func TestTakeOrderConcurrentDrivers(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	drivers := []*entity.User{
		seedUser(t, db, entity.RoleDelivery),
		seedUser(t, db, entity.RoleDelivery),
	}

	errs := make([]error, len(drivers))
	var wg sync.WaitGroup
	for i, d := range drivers {
		wg.Add(1)
		go func(i int, d *entity.User) {
			defer wg.Done()
			errs[i] = svc.Take(ctx, d, out.ID)
		}(i, d)
	}
	wg.Wait()

	// exactly one winner, the loser sees the conflict
	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case err == ErrOrderTaken:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
}

func TestListOrders(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	otherOwner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	driver := seedUser(t, db, entity.RoleDelivery)

	restA := seedRestaurant(t, db, owner.ID)
	restB := seedRestaurant(t, db, owner.ID)
	restOther := seedRestaurant(t, db, otherOwner.ID)
	dishA := seedDish(t, db, restA.ID, 10, nil)
	dishB := seedDish(t, db, restB.ID, 7, nil)
	dishOther := seedDish(t, db, restOther.ID, 5, nil)

	a, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: restA.ID, Items: []OrderItemIn{{DishID: dishA.ID}}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, client, &CreateOrderReq{RestaurantID: restB.ID, Items: []OrderItemIn{{DishID: dishB.ID}}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, client, &CreateOrderReq{RestaurantID: restOther.ID, Items: []OrderItemIn{{DishID: dishOther.ID}}})
	require.NoError(t, err)

	// owner sees the union across every owned restaurant
	got, err := svc.List(ctx, owner, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// client sees all three of their orders
	got, err = svc.List(ctx, client, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// driver has no deliveries yet; empty list is a valid success
	got, err = svc.List(ctx, driver, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.Edit(ctx, owner, a.ID, entity.StatusCooking))

	cooking := entity.StatusCooking
	got, err = svc.List(ctx, owner, &cooking)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	require.NoError(t, svc.Take(ctx, driver, a.ID))
	got, err = svc.List(ctx, driver, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetOrderVisibility(t *testing.T) {
	svc, _, db := newOrderService(t)
	ctx := context.Background()

	owner := seedUser(t, db, entity.RoleOwner)
	client := seedUser(t, db, entity.RoleClient)
	stranger := seedUser(t, db, entity.RoleClient)
	rest := seedRestaurant(t, db, owner.ID)
	dish := seedDish(t, db, rest.ID, 10, nil)

	out, err := svc.Create(ctx, client, &CreateOrderReq{RestaurantID: rest.ID, Items: []OrderItemIn{{DishID: dish.ID}}})
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, out.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = svc.Get(ctx, client, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	order, err := svc.Get(ctx, owner, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, order.ID)
}
