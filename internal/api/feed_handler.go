package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// FeedHandler serves the generated RSS feed and sitemap
type FeedHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(services *service.Services, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		services: services,
		log:      log.With().Str("handler", "feed").Logger(),
	}
}

// RSS handles GET /feed.xml
func (h *FeedHandler) RSS(c *gin.Context) {
	rss, err := h.services.Feed.RSS(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// Sitemap handles GET /sitemap.xml
func (h *FeedHandler) Sitemap(c *gin.Context) {
	sitemap, err := h.services.Feed.Sitemap(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", sitemap)
}
