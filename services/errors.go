package services

import "errors"

// Business-rule failures are expected outcomes: services return these
// sentinels and controllers translate them, they are never panicked or
// wrapped into generic 500s.
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrNotAllowed        = errors.New("not allowed")
	ErrOrderTaken        = errors.New("order already taken")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)
