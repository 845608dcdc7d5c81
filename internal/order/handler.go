// File: internal/order/handler.go
package order

import (
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service Service
}

// NewHandler creates a new order handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers order routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/place-order/:productId", h.Place)
		protected.GET("/seller/orders", h.ListSellerOrders)
		protected.POST("/order/:id/accept", h.Accept)
		protected.POST("/order/:id/reject", h.Reject)
	}
}

func (h *Handler) Place(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	resp, err := h.service.Place(c.Request.Context(), actor, c.Param("productId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondCreated(c, "Order placed successfully.", resp)
}

func (h *Handler) Accept(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	resp, err := h.service.Accept(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Order accepted.", resp)
}

func (h *Handler) Reject(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondOK(c, "Order rejected.", resp)
}

func (h *Handler) ListSellerOrders(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		_ = c.Error(common.ErrUnauthorized)
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	orders, pagination, err := h.service.ListSellerOrders(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondPaginated(c, "Orders retrieved successfully.", orders, pagination)
}
