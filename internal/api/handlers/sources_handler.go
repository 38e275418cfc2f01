package handlers

import (
	"context"
	"net/http"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SourceReporter is implemented by the dashboard services
type SourceReporter interface {
	Source(ctx context.Context) service.SourceStatus
	Reload(ctx context.Context) error
}

type SourcesHandler struct {
	reporters []SourceReporter
}

func NewSourcesHandler(reporters ...SourceReporter) *SourcesHandler {
	return &SourcesHandler{reporters: reporters}
}

// GetSources reports the resolver decision of every pipeline
func (h *SourcesHandler) GetSources(c *gin.Context) {
	out := make([]service.SourceStatus, 0, len(h.reporters))
	for _, r := range h.reporters {
		out = append(out, r.Source(c.Request.Context()))
	}
	c.JSON(http.StatusOK, gin.H{"sources": out})
}

// Reload drops memoized datasets and cached summaries
func (h *SourcesHandler) Reload(c *gin.Context) {
	for _, r := range h.reporters {
		if err := r.Reload(c.Request.Context()); err != nil {
			log.Warn().Err(err).Msg("sources: reload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload", "details": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
