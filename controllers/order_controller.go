package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /orders  (client only)
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.Create(c.Request.Context(), utils.CurrentUser(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders?status=Cooking
func (oc *OrderController) List(c *gin.Context) {
	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown status")
			return
		}
		status = &st
	}

	orders, err := oc.Orders.List(c.Request.Context(), utils.CurrentUser(c), status)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	order, err := oc.Orders.Get(c.Request.Context(), utils.CurrentUser(c), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

type EditOrderReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// PATCH /orders/:id/status
func (oc *OrderController) EditStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req EditOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.Edit(c.Request.Context(), utils.CurrentUser(c), uint(id), req.Status); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": uint(id), "status": req.Status})
}

// POST /orders/:id/take  (delivery only)
func (oc *OrderController) Take(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	if err := oc.Orders.Take(c.Request.Context(), utils.CurrentUser(c), uint(id)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": uint(id)})
}
