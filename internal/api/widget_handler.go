package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// WidgetHandler handles weather and stock widget endpoints
type WidgetHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewWidgetHandler creates a new WidgetHandler
func NewWidgetHandler(services *service.Services, log zerolog.Logger) *WidgetHandler {
	return &WidgetHandler{
		services: services,
		log:      log.With().Str("handler", "widget").Logger(),
	}
}

// Weather handles GET /widgets/weather
func (h *WidgetHandler) Weather(c *gin.Context) {
	report, err := h.services.Widget.Weather(c.Request.Context(), c.Query("city"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Stocks handles GET /widgets/stocks
func (h *WidgetHandler) Stocks(c *gin.Context) {
	var symbols []string
	for _, symbol := range strings.Split(c.Query("symbols"), ",") {
		if symbol = strings.TrimSpace(symbol); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	quotes, err := h.services.Widget.Stocks(c.Request.Context(), symbols)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}
