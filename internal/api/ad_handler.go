package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// AdHandler handles advertisement endpoints
type AdHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdHandler creates a new AdHandler
func NewAdHandler(services *service.Services, log zerolog.Logger) *AdHandler {
	return &AdHandler{
		services: services,
		log:      log.With().Str("handler", "ad").Logger(),
	}
}

// ListActive handles GET /advertisements
func (h *AdHandler) ListActive(c *gin.Context) {
	ads, err := h.services.Ad.Active(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if ads == nil {
		ads = []*models.Advertisement{}
	}
	c.JSON(http.StatusOK, gin.H{"advertisements": ads})
}

// Click handles POST /advertisements/:id/click. Counter errors are
// swallowed so this always answers 200.
func (h *AdHandler) Click(c *gin.Context) {
	h.services.Ad.Click(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
