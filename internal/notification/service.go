// File: internal/notification/service.go
package notification

import (
	"context"
	"time"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the notification business logic interface. NotifyTx and
// NotifyBatchTx are called by other services inside their own transactions,
// so a notification is only ever committed together with the event that
// caused it.
type Service interface {
	NotifyTx(ctx context.Context, tx *gorm.DB, n *Notification) error
	NotifyBatchTx(ctx context.Context, tx *gorm.DB, ns []Notification) error
	List(ctx context.Context, actor auth.Actor, page, pageSize int) ([]Response, *common.Pagination, error)
	UnreadCount(ctx context.Context, actor auth.Actor) (int64, error)
	MarkRead(ctx context.Context, actor auth.Actor, id string) error
	MarkUnread(ctx context.Context, actor auth.Actor, id string) error
	Delete(ctx context.Context, actor auth.Actor, id string) error
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo   Repository
	guard  *auth.Guard
	logger *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		guard:  guard,
		logger: logger.Named("NotificationService"),
	}
}

// NotifyTx records a notification as part of the caller's transaction.
func (s *service) NotifyTx(ctx context.Context, tx *gorm.DB, n *Notification) error {
	return s.repo.WithTx(tx).Create(ctx, n)
}

// NotifyBatchTx records a set of notifications as part of the caller's
// transaction. Used for fan-out to multiple recipients, e.g. all admins.
func (s *service) NotifyBatchTx(ctx context.Context, tx *gorm.DB, ns []Notification) error {
	return s.repo.WithTx(tx).CreateBatch(ctx, ns)
}

// List returns a page of the actor's notifications, newest first.
func (s *service) List(ctx context.Context, actor auth.Actor, page, pageSize int) ([]Response, *common.Pagination, error) {
	offset := (page - 1) * pageSize
	notifications, total, err := s.repo.ListByUser(ctx, actor.ID, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.String("userID", actor.ID.String()), zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to retrieve notifications.")
	}

	responses := make([]Response, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// UnreadCount returns the number of unread notifications for the actor.
func (s *service) UnreadCount(ctx context.Context, actor auth.Actor) (int64, error) {
	count, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.String("userID", actor.ID.String()), zap.Error(err))
		return 0, common.ErrInternalServer.WithDetails("Failed to count unread notifications.")
	}
	return count, nil
}

// MarkRead marks the notification as read. Marking an already-read
// notification is a no-op, not an error.
func (s *service) MarkRead(ctx context.Context, actor auth.Actor, id string) error {
	return s.setRead(ctx, actor, id, true)
}

// MarkUnread marks the notification as unread. Idempotent like MarkRead.
func (s *service) MarkUnread(ctx context.Context, actor auth.Actor, id string) error {
	return s.setRead(ctx, actor, id, false)
}

func (s *service) setRead(ctx context.Context, actor auth.Actor, id string, isRead bool) error {
	n, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if n.IsRead == isRead {
		return nil
	}
	if err := s.repo.SetRead(ctx, n.ID, isRead); err != nil {
		s.logger.Error("Failed to update notification read state", zap.String("notificationID", id), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to update notification.")
	}
	return nil
}

// Delete removes the actor's notification.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	n, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, n.ID); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete notification", zap.String("notificationID", id), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to delete notification.")
	}
	return nil
}

// PurgeOlderThan deletes read notifications older than the retention window.
// Called by the retention job; unread notifications are never purged.
func (s *service) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to purge old notifications", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("Purged old notifications",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return deleted, nil
}

// authorize loads the notification and enforces strict ownership. Admins get
// no bypass here: notification state belongs to its recipient alone.
func (s *service) authorize(ctx context.Context, actor auth.Actor, id string) (*Notification, error) {
	notificationID, err := common.ParseUUID(id, "notification ID")
	if err != nil {
		return nil, err
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to load notification", zap.String("notificationID", id), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to load notification.")
	}

	if !s.guard.Can(actor, auth.ActionManageNotification, n.UserID) {
		return nil, common.ErrForbidden.WithDetails("You can only manage your own notifications.")
	}
	return n, nil
}
