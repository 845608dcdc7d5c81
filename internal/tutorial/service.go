// File: internal/tutorial/service.go
package tutorial

import (
	"context"
	"fmt"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/platform/crypto"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentPurger removes a tutorial's comment thread, and the notifications
// referencing it, inside an existing transaction. Implemented by the comment
// repository; declared here to keep the dependency pointing from comment to
// tutorial.
type CommentPurger interface {
	PurgeByTutorial(ctx context.Context, tx *gorm.DB, tutorialID uuid.UUID) error
}

// Service defines the tutorial business logic interface.
type Service interface {
	Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	GetBySlug(ctx context.Context, slugValue string) (*Response, error)
	List(ctx context.Context, category, tag string, page, pageSize int) ([]Response, *common.Pagination, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type service struct {
	db            *gorm.DB
	repo          Repository
	users         user.Repository
	comments      CommentPurger
	notifications notification.Service
	guard         *auth.Guard
	logger        *zap.Logger
}

// NewService creates a new tutorial service.
func NewService(db *gorm.DB, repo Repository, users user.Repository, comments CommentPurger, notifications notification.Service, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		db:            db,
		repo:          repo,
		users:         users,
		comments:      comments,
		notifications: notifications,
		guard:         guard,
		logger:        logger.Named("TutorialService"),
	}
}

// Create posts a new tutorial owned by the acting facilitator.
func (s *service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Response, error) {
	if !s.guard.Can(actor, auth.ActionUploadTutorial, actor.ID) {
		return nil, common.ErrForbidden.WithDetails("Only facilitators can post tutorials.")
	}

	hasFile := req.FilePath != ""
	hasLink := req.YoutubeLink != ""
	if hasFile == hasLink {
		return nil, common.NewValidationAPIError(map[string]string{
			"content": "Provide exactly one of filePath or youtubeLink.",
		})
	}

	tutorialSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		s.logger.Error("Failed to generate tutorial slug", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create tutorial.")
	}

	t := &Tutorial{
		AuthorID:    actor.ID,
		Title:       req.Title,
		Slug:        tutorialSlug,
		Category:    req.Category,
		Description: req.Description,
		FilePath:    req.FilePath,
		YoutubeLink: req.YoutubeLink,
		Tags:        req.Tags,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
			return err
		}
		return s.notifyAdmins(ctx, tx, actor, fmt.Sprintf("%s uploaded a new tutorial: '%s'.", actor.Name, t.Title))
	})
	if err != nil {
		s.logger.Error("Failed to create tutorial", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to create tutorial.")
	}

	s.logger.Info("Tutorial created",
		zap.String("tutorialID", t.ID.String()),
		zap.String("slug", t.Slug),
		zap.String("authorID", actor.ID.String()),
	)
	resp := t.ToResponse()
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

// uniqueSlug derives a URL slug from the title, appending a short random
// suffix when the plain slug is already taken.
func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	exists, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	suffix, err := crypto.GenerateSlugSuffix(4)
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

// GetByID returns the tutorial with the given ID.
func (s *service) GetByID(ctx context.Context, id string) (*Response, error) {
	tutorialID, err := common.ParseUUID(id, "tutorial ID")
	if err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, tutorialID)
	if err != nil {
		return nil, err
	}
	resp := t.ToResponse()
	return &resp, nil
}

// GetBySlug returns the tutorial with the given slug.
func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Response, error) {
	t, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	resp := t.ToResponse()
	return &resp, nil
}

// List returns a page of tutorials, optionally filtered by category or tag.
func (s *service) List(ctx context.Context, category, tag string, page, pageSize int) ([]Response, *common.Pagination, error) {
	offset := (page - 1) * pageSize
	tutorials, total, err := s.repo.List(ctx, category, tag, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list tutorials", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to list tutorials.")
	}

	responses := make([]Response, 0, len(tutorials))
	for i := range tutorials {
		responses = append(responses, tutorials[i].ToResponse())
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// Delete removes a tutorial together with its entire comment thread. Admin
// only.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	tutorialID, err := common.ParseUUID(id, "tutorial ID")
	if err != nil {
		return err
	}

	t, err := s.repo.FindByID(ctx, tutorialID)
	if err != nil {
		return err
	}

	if !s.guard.Can(actor, auth.ActionDeleteContent, t.AuthorID) {
		return common.ErrForbidden.WithDetails("Only admins can delete tutorials.")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.comments.PurgeByTutorial(ctx, tx, tutorialID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, tutorialID)
	})
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete tutorial", zap.String("tutorialID", id), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to delete tutorial.")
	}

	s.logger.Info("Tutorial deleted",
		zap.String("tutorialID", id),
		zap.String("adminID", actor.ID.String()),
	)
	return nil
}
