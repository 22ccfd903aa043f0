package handler

import (
	"strconv"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	production *service.ProductionService
	reports    *service.ReportService
}

func NewProductionHandler(production *service.ProductionService, reports *service.ReportService) *ProductionHandler {
	return &ProductionHandler{production: production, reports: reports}
}

// Submit POST /api/production
func (h *ProductionHandler) Submit(c *gin.Context) {
	var req service.SubmitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	log, err := h.production.Submit(UserID(c), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, log)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List GET /api/production?from=&to=&shift=&operator_id=&page=&size=
func (h *ProductionHandler) List(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	params := repository.LogListParams{
		From:       from,
		To:         to,
		Shift:      c.Query("shift"),
		OperatorID: c.Query("operator_id"),
		Page:       page,
		Size:       size,
	}
	items, total, err := h.production.List(params)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// Search GET /api/production/search?q=&limit=
func (h *ProductionHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.production.Search(c.Query("q"), limit)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": items, "count": len(items)})
}

// Stats GET /api/production/stats
func (h *ProductionHandler) Stats(c *gin.Context) {
	stats, err := h.production.Stats()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, stats)
}

// Daily GET /api/production/daily?date=
func (h *ProductionHandler) Daily(c *gin.Context) {
	day := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}
	summary, err := h.reports.Daily(day)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, summary)
}

// Performance GET /api/production/performance
func (h *ProductionHandler) Performance(c *gin.Context) {
	perf, err := h.reports.WeeklyPerformance()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, perf)
}

// Get GET /api/production/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	log, err := h.production.Get(c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, log)
}

// Update PUT /api/production/:id
func (h *ProductionHandler) Update(c *gin.Context) {
	var req service.UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	log, err := h.production.Update(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, log)
}

// Delete DELETE /api/production/:id
func (h *ProductionHandler) Delete(c *gin.Context) {
	if err := h.production.Delete(c.Param("id")); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "Production log deleted"})
}
