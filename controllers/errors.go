package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
)

// fail maps the service error taxonomy onto the response envelope. Anything
// outside the taxonomy is an infrastructure failure and comes back generic.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrDishNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAllowed):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOrderTaken),
		errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBadCredentials):
		resp.Unauthorized(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
