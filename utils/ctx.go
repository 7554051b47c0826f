package utils

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
		if s, ok := v.(string); ok {
			return entity.Role(s)
		}
	}
	return ""
}

// CurrentUser rebuilds the acting identity from JWT claims. ID and Role are
// all the policy layer needs; the row itself is not loaded.
func CurrentUser(c *gin.Context) *entity.User {
	return &entity.User{
		Model: gorm.Model{ID: CurrentUserID(c)},
		Role:  CurrentRole(c),
	}
}
