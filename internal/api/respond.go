package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// writeError translates a service error into a JSON error response.
// The sentinel taxonomy maps to status codes; anything else is a 500
// surfaced with the underlying message.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrTooManyRequests):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
