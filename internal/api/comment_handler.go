package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// SubmitComment handles POST /comments
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	var sub models.CommentSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	receipt, err := h.services.Comment.Submit(c.Request.Context(), &sub, c.ClientIP())
	if receipt != nil {
		setRateLimitHeaders(c, receipt.Quota)
	}
	if err != nil {
		if errors.Is(err, service.ErrTooManyRequests) && receipt != nil {
			c.Header("Retry-After", strconv.Itoa(int(receipt.Quota.RetryAfter.Seconds())))
		}
		writeError(c, h.log, err)
		return
	}

	// Honeypot submissions come back without an ID; the response is
	// indistinguishable from success so bots learn nothing.
	if receipt.ID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"id":         receipt.ID,
		"created_at": receipt.CreatedAt,
	})
}

// ListArticleComments handles GET /comments/:slug
func (h *CommentHandler) ListArticleComments(c *gin.Context) {
	comments, err := h.services.Comment.ListApproved(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ListModerationQueue handles GET /moderation/comments
func (h *CommentHandler) ListModerationQueue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := models.CommentFilter{
		Status: models.CommentStatus(c.Query("status")),
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}

	comments, err := h.services.Comment.List(c.Request.Context(), filter, identityFrom(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ModerateComment handles POST /comments/moderation
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	var req struct {
		ID     string `json:"id"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and action are required"})
		return
	}

	status, err := h.services.Comment.Moderate(c.Request.Context(), req.ID, models.CommentAction(req.Action), identityFrom(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}

// setRateLimitHeaders reports the submitter's remaining quota
func setRateLimitHeaders(c *gin.Context, quota models.RateQuota) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(quota.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))
}
