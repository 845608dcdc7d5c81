// File: internal/product/service.go
package product

import (
	"context"
	"fmt"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderPurger removes orders tied to a product inside an existing transaction.
// Implemented by the order repository; declared here to keep the dependency
// pointing from order to product.
type OrderPurger interface {
	PurgeByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

// Service defines the product business logic interface.
type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, page, pageSize int) ([]Response, *common.Pagination, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type service struct {
	db            *gorm.DB
	repo          Repository
	users         user.Repository
	orders        OrderPurger
	notifications notification.Service
	guard         *auth.Guard
	logger        *zap.Logger
}

// NewService creates a new product service.
func NewService(db *gorm.DB, repo Repository, users user.Repository, orders OrderPurger, notifications notification.Service, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		db:            db,
		repo:          repo,
		users:         users,
		orders:        orders,
		notifications: notifications,
		guard:         guard,
		logger:        logger.Named("ProductService"),
	}
}

// Create lists a new product owned by the acting user. Any authenticated
// account may sell. Every admin is notified of the new listing, in the same
// transaction as the insert.
func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Response, error) {
	p := &Product{
		SellerID:      actor.ID,
		Name:          req.Name,
		Description:   req.Description,
		ImageFilename: req.ImageFilename,
		ContactLink:   req.ContactLink,
		Price:         req.Price,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.notifyAdmins(ctx, tx, actor, fmt.Sprintf("%s uploaded a new product: '%s'.", actor.Name, p.Name))
	})
	if err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create product.")
	}

	s.logger.Info("Product created",
		zap.String("productID", p.ID.String()),
		zap.String("sellerID", actor.ID.String()),
	)
	resp := p.ToResponse()
	return &resp, nil
}

// notifyAdmins fans a message out to every admin account except the actor.
// The whole admin set is targeted, not just the first admin found.
func (s *service) notifyAdmins(ctx context.Context, tx *gorm.DB, actor auth.Actor, message string) error {
	admins, err := s.users.WithTx(tx).FindAdmins(ctx)
	if err != nil {
		return err
	}
	var batch []notification.Notification
	for i := range admins {
		if admins[i].ID == actor.ID {
			continue
		}
		batch = append(batch, notification.Notification{
			UserID:  admins[i].ID,
			Message: message,
		})
	}
	return s.notifications.NotifyBatchTx(ctx, tx, batch)
}

// GetByID returns the product with the given ID.
func (s *service) GetByID(ctx context.Context, id string) (*Response, error) {
	productID, err := common.ParseUUID(id, "product ID")
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse()
	return &resp, nil
}

// List returns a page of products, newest first.
func (s *service) List(ctx context.Context, page, pageSize int) ([]Response, *common.Pagination, error) {
	offset := (page - 1) * pageSize
	products, total, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to list products.")
	}

	responses := make([]Response, 0, len(products))
	for i := range products {
		responses = append(responses, products[i].ToResponse())
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// Delete removes a product together with its orders. Admin only. The seller
// is notified inside the same transaction as the removal.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	productID, err := common.ParseUUID(id, "product ID")
	if err != nil {
		return err
	}

	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if !s.guard.Can(actor, auth.ActionDeleteContent, p.SellerID) {
		return common.ErrForbidden.WithDetails("Only admins can delete products.")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.PurgeByProduct(ctx, tx, productID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Delete(ctx, productID); err != nil {
			return err
		}
		return s.notifications.NotifyTx(ctx, tx, &notification.Notification{
			UserID:  p.SellerID,
			Message: fmt.Sprintf("Your product '%s' was removed by an administrator.", p.Name),
		})
	})
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete product", zap.String("productID", id), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to delete product.")
	}

	s.logger.Info("Product deleted",
		zap.String("productID", id),
		zap.String("adminID", actor.ID.String()),
	)
	return nil
}
