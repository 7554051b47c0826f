package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/utils"
)

type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     entity.Role `json:"role" binding:"omitempty,oneof=client owner delivery"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func userJSON(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, userJSON(user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userJSON(user)})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.Profile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}
