package handler

import (
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func refDate(c *gin.Context) (time.Time, bool) {
	if q := c.Query("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return time.Time{}, false
		}
		return t, true
	}
	return time.Now(), true
}

// Daily GET /api/reports/daily?date=
func (h *ReportHandler) Daily(c *gin.Context) {
	day, ok := refDate(c)
	if !ok {
		return
	}
	summary, err := h.reports.Daily(day)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, summary)
}

// Weekly GET /api/reports/weekly?date=
func (h *ReportHandler) Weekly(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		return
	}
	summary, err := h.reports.Weekly(ref)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, summary)
}

// Monthly GET /api/reports/monthly?date=
func (h *ReportHandler) Monthly(c *gin.Context) {
	ref, ok := refDate(c)
	if !ok {
		return
	}
	summary, err := h.reports.Monthly(ref)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, summary)
}

// MaterialConsumption GET /api/reports/materials?from=&to=
func (h *ReportHandler) MaterialConsumption(c *gin.Context) {
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
	report, err := h.reports.MaterialConsumptionReport(from, to)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, report)
}

// Productivity GET /api/reports/productivity?from=&to=
func (h *ReportHandler) Productivity(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if from, err := parseDate(c.Query("from")); err != nil {
		BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	} else if from != nil {
		start = *from
	}
	if to, err := parseDate(c.Query("to")); err != nil {
		BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	} else if to != nil {
		end = *to
	}
	report, err := h.reports.Productivity(start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, report)
}
