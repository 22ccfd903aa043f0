package handler

import (
	"strconv"

	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// Create POST /api/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	rec, err := h.recipes.Create(req, UserID(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, rec)
}

// List GET /api/recipes?product_type=&active=
func (h *RecipeHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"
	items, err := h.recipes.List(c.Query("product_type"), activeOnly)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": items, "count": len(items)})
}

// Get GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	rec, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, rec)
}

// Update PUT /api/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	var req service.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	rec, err := h.recipes.Update(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, rec)
}

// Delete DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.recipes.Delete(c.Param("id")); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "Recipe deleted"})
}

// CheckStock GET /api/recipes/:id/check-stock?batch_size=
func (h *RecipeHandler) CheckStock(c *gin.Context) {
	batchSize, _ := strconv.Atoi(c.DefaultQuery("batch_size", "1"))
	check, err := h.recipes.CheckStock(c.Param("id"), batchSize)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, check)
}
