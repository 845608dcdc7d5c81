// File: internal/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/product"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the order business logic interface.
type Service interface {
	Place(ctx context.Context, actor auth.Actor, productID string) (*Response, error)
	Accept(ctx context.Context, actor auth.Actor, orderID string) (*Response, error)
	Reject(ctx context.Context, actor auth.Actor, orderID string) (*Response, error)
	ListSellerOrders(ctx context.Context, actor auth.Actor, page, pageSize int) ([]Response, *common.Pagination, error)
}

type service struct {
	db            *gorm.DB
	repo          Repository
	products      product.Repository
	notifications notification.Service
	guard         *auth.Guard
	logger        *zap.Logger
}

// NewService creates a new order service.
func NewService(db *gorm.DB, repo Repository, products product.Repository, notifications notification.Service, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		db:            db,
		repo:          repo,
		products:      products,
		notifications: notifications,
		guard:         guard,
		logger:        logger.Named("OrderService"),
	}
}

// Place creates a pending order for the product and notifies its seller.
// The order and the notification commit in one transaction. A buyer can hold
// at most one pending order per product; the partial unique index backs the
// check, so concurrent duplicates surface as a key conflict and map to the
// same 409.
func (s *service) Place(ctx context.Context, actor auth.Actor, productID string) (*Response, error) {
	pid, err := common.ParseUUID(productID, "product ID")
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	if p.SellerID == actor.ID {
		return nil, common.ErrConflict.WithDetails("You cannot place an order for your own product.")
	}

	pending, err := s.repo.HasPending(ctx, pid, actor.ID)
	if err != nil {
		s.logger.Error("Failed to check pending orders", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to place order.")
	}
	if pending {
		return nil, common.ErrConflict.WithDetails("You already have a pending order for this product.")
	}

	o := &Order{
		ProductID: pid,
		BuyerID:   actor.ID,
		SellerID:  p.SellerID,
		Status:    StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, o); err != nil {
			return err
		}
		orderID := o.ID
		return s.notifications.NotifyTx(ctx, tx, &notification.Notification{
			UserID:  p.SellerID,
			Message: fmt.Sprintf("%s placed an order for your product '%s'.", actor.Name, p.Name),
			OrderID: &orderID,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrConflict.WithDetails("You already have a pending order for this product.")
		}
		s.logger.Error("Failed to place order",
			zap.String("productID", productID),
			zap.String("buyerID", actor.ID.String()),
			zap.Error(err),
		)
		return nil, common.ErrInternalServer.WithDetails("Failed to place order.")
	}

	s.logger.Info("Order placed",
		zap.String("orderID", o.ID.String()),
		zap.String("productID", productID),
		zap.String("buyerID", actor.ID.String()),
	)
	o.Product = p
	resp := o.ToResponse()
	return &resp, nil
}

// Accept marks a pending order accepted and notifies the buyer.
func (s *service) Accept(ctx context.Context, actor auth.Actor, orderID string) (*Response, error) {
	return s.decide(ctx, actor, orderID, StatusAccepted)
}

// Reject marks a pending order rejected and notifies the buyer.
func (s *service) Reject(ctx context.Context, actor auth.Actor, orderID string) (*Response, error) {
	return s.decide(ctx, actor, orderID, StatusRejected)
}

// decide performs the accept/reject transition. Only the product's seller
// may decide, and only once: the conditional update leaves a decided order
// untouched and the caller gets a conflict instead of a silent overwrite.
func (s *service) decide(ctx context.Context, actor auth.Actor, orderID string, status Status) (*Response, error) {
	oid, err := common.ParseUUID(orderID, "order ID")
	if err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if !s.guard.Can(actor, auth.ActionManageOrder, o.SellerID) {
		return nil, common.ErrForbidden.WithDetails("Only the product's seller can manage this order.")
	}

	var verdict string
	if status == StatusAccepted {
		verdict = "accepted"
	} else {
		verdict = "rejected"
	}

	productName := "a product"
	if o.Product != nil {
		productName = o.Product.Name
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := s.repo.WithTx(tx).UpdateStatusIfPending(ctx, oid, status)
		if err != nil {
			return err
		}
		if !updated {
			return common.ErrConflict.WithDetails(fmt.Sprintf("Order is no longer pending and cannot be %s.", verdict))
		}
		orderRef := o.ID
		return s.notifications.NotifyTx(ctx, tx, &notification.Notification{
			UserID:  o.BuyerID,
			Message: fmt.Sprintf("Your order for '%s' has been %s!", productName, verdict),
			OrderID: &orderRef,
		})
	})
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to update order status",
			zap.String("orderID", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, common.ErrInternalServer.WithDetails("Failed to update order.")
	}

	s.logger.Info("Order decided",
		zap.String("orderID", orderID),
		zap.String("status", string(status)),
		zap.String("sellerID", actor.ID.String()),
	)
	o.Status = status
	resp := o.ToResponse()
	return &resp, nil
}

// ListSellerOrders returns orders placed against the actor's products.
func (s *service) ListSellerOrders(ctx context.Context, actor auth.Actor, page, pageSize int) ([]Response, *common.Pagination, error) {
	offset := (page - 1) * pageSize
	orders, total, err := s.repo.ListBySeller(ctx, actor.ID, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list seller orders", zap.String("sellerID", actor.ID.String()), zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to retrieve orders.")
	}

	responses := make([]Response, 0, len(orders))
	for i := range orders {
		responses = append(responses, orders[i].ToResponse())
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}
