// File: internal/tutorial/handler.go
package tutorial

import (
	"errors"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for tutorials.
type Handler struct {
	service Service
}

// NewHandler creates a new tutorial handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers tutorial routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	router.GET("/tutorials", h.List)
	router.GET("/tutorials/slug/:slug", h.GetBySlug)
	router.GET("/tutorial/:id", h.GetByID)

	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/tutorials", h.Create)
		protected.DELETE("/tutorial/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
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

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "Tutorial posted successfully.", resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Tutorial retrieved successfully.", resp)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	resp, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Tutorial retrieved successfully.", resp)
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	tutorials, pagination, err := h.service.List(c.Request.Context(), c.Query("category"), c.Query("tag"), page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondPaginated(c, "Tutorials retrieved successfully.", tutorials, pagination)
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
	common.RespondOK(c, "Tutorial deleted successfully.", nil)
}
