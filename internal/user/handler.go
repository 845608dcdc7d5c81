// File: internal/user/handler.go
package user

import (
	"errors"
	"net/http"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for users.
type Handler struct {
	service Service
}

// NewHandler creates a new user handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers user routes with the given router group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/register-facilitator", h.CreateFacilitator)
		protected.GET("/me", h.GetMe)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = c.Error(common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			_ = c.Error(common.ErrBadRequest.WithDetails("Invalid request payload: " + err.Error()))
		}
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "User registered successfully.", resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = c.Error(common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			_ = c.Error(common.ErrBadRequest.WithDetails("Invalid request payload: " + err.Error()))
		}
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Login successful.", resp)
}

func (h *Handler) CreateFacilitator(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	var req CreateFacilitatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			_ = c.Error(common.NewValidationAPIError(common.FormatValidationErrors(validationErrs)))
		} else {
			_ = c.Error(common.ErrBadRequest.WithDetails("Invalid request payload: " + err.Error()))
		}
		return
	}

	resp, err := h.service.CreateFacilitator(c.Request.Context(), actor, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "Facilitator account created successfully.", resp)
}

func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor.ID.String())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, common.SuccessResponse{Status: "success", Data: resp})
}
