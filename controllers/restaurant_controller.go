package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/utils"
)

type RestaurantController struct {
	Rests  *services.RestaurantService
	Dishes *services.DishService
}

func NewRestaurantController(rests *services.RestaurantService, dishes *services.DishService) *RestaurantController {
	return &RestaurantController{Rests: rests, Dishes: dishes}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	return page, limit
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ===== Public =====

// GET /restaurants
func (rc *RestaurantController) List(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := rc.Rests.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/search?q=
func (rc *RestaurantController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp.BadRequest(c, "q is required")
		return
	}
	page, limit := pageParams(c)
	out, err := rc.Rests.Search(c.Request.Context(), q, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rest, err := rc.Rests.Detail(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rest)
}

// GET /categories
func (rc *RestaurantController) Categories(c *gin.Context) {
	cats, err := rc.Rests.Categories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": cats})
}

// GET /categories/:slug
func (rc *RestaurantController) CategoryBySlug(c *gin.Context) {
	page, limit := pageParams(c)
	out, err := rc.Rests.CategoryBySlug(c.Request.Context(), c.Param("slug"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// ===== Owner =====

// POST /owner/restaurants
func (rc *RestaurantController) Create(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Rests.Create(c.Request.Context(), utils.CurrentUser(c), &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, rest)
}

// PATCH /owner/restaurants/:id
func (rc *RestaurantController) Edit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := rc.Rests.Edit(c.Request.Context(), utils.CurrentUser(c), id, &in); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}

// DELETE /owner/restaurants/:id
func (rc *RestaurantController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Rests.Delete(c.Request.Context(), utils.CurrentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}

// GET /owner/restaurants
func (rc *RestaurantController) Mine(c *gin.Context) {
	rests, err := rc.Rests.Mine(c.Request.Context(), utils.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rests})
}

// ===== Owner dishes =====

// POST /owner/restaurants/:id/dishes
func (rc *RestaurantController) CreateDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.DishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	dish, err := rc.Dishes.Create(c.Request.Context(), utils.CurrentUser(c), id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, dish)
}

// PATCH /owner/dishes/:id
func (rc *RestaurantController) EditDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.DishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	dish, err := rc.Dishes.Edit(c.Request.Context(), utils.CurrentUser(c), id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, dish)
}

// DELETE /owner/dishes/:id
func (rc *RestaurantController) DeleteDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Dishes.Delete(c.Request.Context(), utils.CurrentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
