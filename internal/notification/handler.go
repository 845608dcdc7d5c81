// File: internal/notification/handler.go
package notification

import (
	"net/http"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	service Service
}

// NewHandler creates a new notification handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers notification routes. The paths mirror the
// marketplace frontend's expectations, including the bare count endpoint.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/notifications", h.List)
		protected.POST("/notification/:id/read", h.MarkRead)
		protected.POST("/notification/:id/unread", h.MarkUnread)
		protected.POST("/notification/:id/delete", h.Delete)
		protected.GET("/api/unread_notification_count", h.UnreadCount)
	}
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	notifications, pagination, err := h.service.List(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondPaginated(c, "Notifications retrieved successfully.", notifications, pagination)
}

func (h *Handler) MarkRead(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Notification marked as read.", nil)
}

func (h *Handler) MarkUnread(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	if err := h.service.MarkUnread(c.Request.Context(), actor, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Notification marked as unread.", nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Notification deleted.", nil)
}

// UnreadCount returns the unread badge count as a bare {"count": n} object.
func (h *Handler) UnreadCount(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: count})
}
