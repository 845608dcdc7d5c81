// File: internal/comment/handler.go
package comment

import (
	"errors"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for comments.
type Handler struct {
	service Service
}

// NewHandler creates a new comment handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers comment routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	router.GET("/tutorial/:id/comments", h.ListByTutorial)

	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/add-comment/:tutorialId", h.AddComment)
		protected.POST("/add-reply/:commentId", h.AddReply)
		protected.POST("/delete-comment/:id", h.Delete)
	}
}

func (h *Handler) AddComment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = c.Error(common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			_ = c.Error(common.ErrBadRequest.WithDetails("Invalid request payload: " + err.Error()))
		}
		return
	}

	resp, err := h.service.AddComment(c.Request.Context(), actor, c.Param("tutorialId"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "Comment added successfully.", resp)
}

func (h *Handler) AddReply(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = c.Error(common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			_ = c.Error(common.ErrBadRequest.WithDetails("Invalid request payload: " + err.Error()))
		}
		return
	}

	resp, err := h.service.AddReply(c.Request.Context(), actor, c.Param("commentId"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "Reply added successfully.", resp)
}

func (h *Handler) ListByTutorial(c *gin.Context) {
	comments, err := h.service.ListByTutorial(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Comments retrieved successfully.", comments)
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
	common.RespondOK(c, "Comment deleted successfully.", nil)
}
