package handler

import (
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	materials *service.MaterialService
}

func NewMaterialHandler(materials *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

// Create POST /api/materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	m, err := h.materials.Create(req)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, m)
}

// List GET /api/materials?type=
func (h *MaterialHandler) List(c *gin.Context) {
	list, err := h.materials.List(c.Query("type"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{
		"items":       list.Items,
		"count":       len(list.Items),
		"total_value": list.TotalValue,
	})
}

// ListByType GET /api/materials/type/:type
func (h *MaterialHandler) ListByType(c *gin.Context) {
	list, err := h.materials.List(c.Param("type"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{
		"items":       list.Items,
		"count":       len(list.Items),
		"total_value": list.TotalValue,
	})
}

// Get GET /api/materials/:id
func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.materials.Get(c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, m)
}

// Update PUT /api/materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	m, err := h.materials.Update(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, m)
}

// Delete DELETE /api/materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materials.Delete(c.Param("id")); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "Material deleted"})
}

// Restock POST /api/materials/:id/restock
func (h *MaterialHandler) Restock(c *gin.Context) {
	var req service.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Valid quantity is required")
		return
	}
	m, err := h.materials.Restock(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, m)
}

// Use POST /api/materials/use
func (h *MaterialHandler) Use(c *gin.Context) {
	var req service.UseMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Material code and quantity are required")
		return
	}
	result, err := h.materials.Use(req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, result)
}

// LowStock GET /api/materials/low-stock
func (h *MaterialHandler) LowStock(c *gin.Context) {
	list, err := h.materials.LowStock()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{
		"items":   list.Items,
		"count":   len(list.Items),
		"warning": list.Warning,
	})
}

// Stats GET /api/materials/stats
func (h *MaterialHandler) Stats(c *gin.Context) {
	stats, err := h.materials.Stats()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, stats)
}
