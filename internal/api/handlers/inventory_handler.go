package handlers

import (
	"net/http"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/export"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) GetDimensions(c *gin.Context) {
	var warnings []domain.ValidationWarning
	date := queryDate(c, "date", &warnings)

	dims, err := h.service.Dimensions(c.Request.Context(), date)
	if err != nil {
		respondError(c, "failed to fetch inventory dimensions", err)
		return
	}
	c.JSON(http.StatusOK, withWarnings(gin.H{
		"reference_date":  dims.ReferenceDate,
		"reference_dates": dims.ReferenceDates,
		"categories":      dims.Categories,
		"brands":          dims.Brands,
		"locations":       dims.Locations,
	}, warnings))
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	f, warnings := parseInventoryFilter(c)
	items, total, viewWarnings, err := h.service.Items(c.Request.Context(), f, parsePage(c))
	if err != nil {
		respondError(c, "failed to fetch inventory items", err)
		return
	}

	c.JSON(http.StatusOK, withWarnings(gin.H{
		"items": items,
		"total": total,
	}, viewWarnings, warnings))
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	f, warnings := parseInventoryFilter(c)
	summary, err := h.service.Summary(c.Request.Context(), f)
	if err != nil {
		respondError(c, "failed to fetch inventory summary", err)
		return
	}

	out := *summary
	if len(warnings) > 0 {
		out.Warnings = append(append([]domain.ValidationWarning{}, summary.Warnings...), warnings...)
	}
	c.JSON(http.StatusOK, out)
}

func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	f, warnings := parseInventoryFilter(c)
	alerts, viewWarnings, err := h.service.Alerts(c.Request.Context(), f)
	if err != nil {
		respondError(c, "failed to fetch inventory alerts", err)
		return
	}

	c.JSON(http.StatusOK, withWarnings(gin.H{
		"items": alerts,
		"total": len(alerts),
	}, viewWarnings, warnings))
}

func (h *InventoryHandler) GetBreakdown(c *gin.Context) {
	f, warnings := parseInventoryFilter(c)
	limit := queryInt(c, "limit", analytics.DefaultChartLimit)

	breakdown, err := h.service.Breakdown(c.Request.Context(), f, limit)
	if err != nil {
		respondError(c, "failed to fetch inventory breakdown", err)
		return
	}
	if len(warnings) > 0 {
		breakdown.Warnings = append(breakdown.Warnings, warnings...)
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *InventoryHandler) Export(c *gin.Context) {
	f, warnings := parseInventoryFilter(c)
	res, data, err := h.service.Export(c.Request.Context(), f)
	if err != nil {
		respondError(c, "failed to export inventory", err)
		return
	}
	respondExport(c, res, data, warnings)
}

// respondExport sends the CSV as an attachment, or its metadata with format=json
func respondExport(c *gin.Context, res *export.Result, data []byte, warnings []domain.ValidationWarning) {
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, withWarnings(gin.H{"export": res}, warnings))
		return
	}
	if res.URL != "" {
		c.Header("X-Export-URL", res.URL)
	}
	c.Header("Content-Disposition", `attachment; filename="`+res.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}
