package handler

import (
	"strconv"

	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	p, err := h.products.Create(req, UserID(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, p)
}

// List GET /api/products?status=&category=&page=&limit=
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	params := repository.ProductListParams{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}
	items, total, err := h.products.List(params)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ListByStatus GET /api/products/status/:status
func (h *ProductHandler) ListByStatus(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, total, err := h.products.List(repository.ProductListParams{
		Status: c.Param("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": items, "total": total})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	detail, err := h.products.Get(c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, detail)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	p, err := h.products.Update(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, p)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus PATCH /api/products/:id/status
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Status is required")
		return
	}
	p, err := h.products.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, p)
}

type batchStatusRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Status string   `json:"status" binding:"required"`
}

// BatchUpdateStatus POST /api/products/batch-status
func (h *ProductHandler) BatchUpdateStatus(c *gin.Context) {
	var req batchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Product ids and status are required")
		return
	}
	updated, err := h.products.BatchUpdateStatus(req.IDs, req.Status)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"updated": updated})
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "Product deleted"})
}

// Stats GET /api/products/stats
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.products.Stats()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, stats)
}
