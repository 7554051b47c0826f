package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type CreatePaymentReq struct {
	TransactionID string `json:"transactionId" binding:"required"`
	RestaurantID  uint   `json:"restaurantId" binding:"required"`
}

// POST /payments  (owner only)
func (pc *PaymentController) Create(c *gin.Context) {
	var req CreatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	payment, err := pc.Payments.Create(c.Request.Context(), utils.CurrentUser(c), req.TransactionID, req.RestaurantID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, payment)
}

// GET /payments
func (pc *PaymentController) List(c *gin.Context) {
	payments, err := pc.Payments.List(c.Request.Context(), utils.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": payments})
}
