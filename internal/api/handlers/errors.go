package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps load failures to HTTP statuses. Missing sources carry the
// resolver diagnostics so that the caller can see where files were looked for.
func respondError(c *gin.Context, message string, err error) {
	var notFound *domain.FileNotFoundError
	var parseErr *domain.ParseError

	switch {
	case errors.As(err, &notFound):
		log.Warn().Err(err).Msg(message)
		c.JSON(http.StatusNotFound, gin.H{
			"error":       message,
			"details":     err.Error(),
			"working_dir": notFound.WorkingDir,
			"searched":    notFound.Searched,
			"aliases":     notFound.Aliases,
			"listing":     notFound.Listing,
		})
	case errors.As(err, &parseErr):
		log.Warn().Err(err).Msg(message)
		body := gin.H{"error": message, "details": err.Error(), "file": parseErr.File}
		if parseErr.Column != "" {
			body["column"] = parseErr.Column
		}
		if parseErr.Line > 0 {
			body["line"] = parseErr.Line
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	default:
		log.Error().Err(err).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

func withWarnings(body gin.H, lists ...[]domain.ValidationWarning) gin.H {
	var all []domain.ValidationWarning
	for _, l := range lists {
		all = append(all, l...)
	}
	if len(all) == 0 {
		all = []domain.ValidationWarning{}
	}
	body["warnings"] = all
	return body
}
