package handlers

import (
	"net/http"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) GetDimensions(c *gin.Context) {
	dims, err := h.service.Dimensions(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch sales dimensions", err)
		return
	}
	c.JSON(http.StatusOK, dims)
}

func (h *SalesHandler) GetItems(c *gin.Context) {
	f, warnings := parseSalesFilter(c)
	items, total, viewWarnings, err := h.service.Items(c.Request.Context(), f, parsePage(c))
	if err != nil {
		respondError(c, "failed to fetch sales items", err)
		return
	}

	c.JSON(http.StatusOK, withWarnings(gin.H{
		"items": items,
		"total": total,
	}, viewWarnings, warnings))
}

func (h *SalesHandler) GetSummary(c *gin.Context) {
	f, warnings := parseSalesFilter(c)
	summary, err := h.service.Summary(c.Request.Context(), f, queryInt(c, "top", analytics.DefaultTopN))
	if err != nil {
		respondError(c, "failed to fetch sales summary", err)
		return
	}

	out := *summary
	if len(warnings) > 0 {
		out.Warnings = append(append([]domain.ValidationWarning{}, summary.Warnings...), warnings...)
	}
	c.JSON(http.StatusOK, out)
}

func (h *SalesHandler) GetTop(c *gin.Context) {
	f, warnings := parseSalesFilter(c)
	top, viewWarnings, err := h.service.Top(c.Request.Context(), f, queryInt(c, "top", analytics.DefaultTopN))
	if err != nil {
		respondError(c, "failed to fetch top products", err)
		return
	}
	c.JSON(http.StatusOK, withWarnings(gin.H{"items": top}, viewWarnings, warnings))
}

func (h *SalesHandler) GetTimeSeries(c *gin.Context) {
	f, warnings := parseSalesFilter(c)
	series, viewWarnings, err := h.service.TimeSeries(c.Request.Context(), f)
	if err != nil {
		respondError(c, "failed to fetch sales time series", err)
		return
	}
	c.JSON(http.StatusOK, withWarnings(gin.H{"items": series}, viewWarnings, warnings))
}

func (h *SalesHandler) Export(c *gin.Context) {
	f, warnings := parseSalesFilter(c)
	res, data, err := h.service.Export(c.Request.Context(), f)
	if err != nil {
		respondError(c, "failed to export sales", err)
		return
	}
	respondExport(c, res, data, warnings)
}
