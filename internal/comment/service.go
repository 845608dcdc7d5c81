// File: internal/comment/service.go
package comment

import (
	"context"
	"fmt"
	"strings"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/tutorial"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the comment business logic interface.
type Service interface {
	AddComment(ctx context.Context, actor auth.Actor, tutorialID string, req CreateRequest) (*Response, error)
	AddReply(ctx context.Context, actor auth.Actor, commentID string, req CreateRequest) (*Response, error)
	ListByTutorial(ctx context.Context, tutorialID string) ([]Response, error)
	Delete(ctx context.Context, actor auth.Actor, commentID string) error
}

type service struct {
	db            *gorm.DB
	repo          Repository
	tutorials     tutorial.Repository
	notifications notification.Service
	guard         *auth.Guard
	logger        *zap.Logger
}

// NewService creates a new comment service.
func NewService(db *gorm.DB, repo Repository, tutorials tutorial.Repository, notifications notification.Service, guard *auth.Guard, logger *zap.Logger) Service {
	return &service{
		db:            db,
		repo:          repo,
		tutorials:     tutorials,
		notifications: notifications,
		guard:         guard,
		logger:        logger.Named("CommentService"),
	}
}

// AddComment posts a top-level comment on a tutorial and notifies the
// tutorial's author. The comment and the notification commit together or not
// at all.
func (s *service) AddComment(ctx context.Context, actor auth.Actor, tutorialID string, req CreateRequest) (*Response, error) {
	tid, err := common.ParseUUID(tutorialID, "tutorial ID")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.NewValidationAPIError("Comment content cannot be empty.")
	}

	t, err := s.tutorials.FindByID(ctx, tid)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		TutorialID: t.ID,
		AuthorID:   actor.ID,
		Content:    content,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
			return err
		}
		if t.AuthorID == actor.ID {
			return nil
		}
		commentID := c.ID
		return s.notifications.NotifyTx(ctx, tx, &notification.Notification{
			UserID:    t.AuthorID,
			Message:   fmt.Sprintf("%s commented on your tutorial '%s'.", actor.Name, t.Title),
			CommentID: &commentID,
		})
	})
	if err != nil {
		s.logger.Error("Failed to add comment", zap.String("tutorialID", tutorialID), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to add comment.")
	}

	s.logger.Info("Comment added",
		zap.String("commentID", c.ID.String()),
		zap.String("tutorialID", tutorialID),
	)
	resp := c.ToResponse()
	resp.AuthorName = actor.Name
	return &resp, nil
}

// AddReply posts a reply to an existing comment. Replies stay one level
// deep: replying to a reply attaches the new comment to the top-level
// ancestor, while the notification still goes to the author of the comment
// actually addressed.
func (s *service) AddReply(ctx context.Context, actor auth.Actor, commentID string, req CreateRequest) (*Response, error) {
	cid, err := common.ParseUUID(commentID, "comment ID")
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.NewValidationAPIError("Reply content cannot be empty.")
	}

	target, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	t, err := s.tutorials.FindByID(ctx, target.TutorialID)
	if err != nil {
		return nil, err
	}

	parentID := target.ID
	if target.ParentID != nil {
		parentID = *target.ParentID
	}

	reply := &Comment{
		TutorialID: target.TutorialID,
		AuthorID:   actor.ID,
		ParentID:   &parentID,
		Content:    content,
	}

	posterName := "the facilitator"
	if t.Author != nil {
		posterName = t.Author.Name
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, reply); err != nil {
			return err
		}
		if target.AuthorID == actor.ID {
			return nil
		}
		replyID := reply.ID
		return s.notifications.NotifyTx(ctx, tx, &notification.Notification{
			UserID:    target.AuthorID,
			Message:   fmt.Sprintf("%s replied to your comment on tutorial posted by %s.", actor.Name, posterName),
			CommentID: &replyID,
		})
	})
	if err != nil {
		s.logger.Error("Failed to add reply", zap.String("commentID", commentID), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to add reply.")
	}

	s.logger.Info("Reply added",
		zap.String("replyID", reply.ID.String()),
		zap.String("parentID", parentID.String()),
	)
	resp := reply.ToResponse()
	resp.AuthorName = actor.Name
	return &resp, nil
}

// ListByTutorial returns the tutorial's thread as top-level comments with
// their replies nested, both oldest first.
func (s *service) ListByTutorial(ctx context.Context, tutorialID string) ([]Response, error) {
	tid, err := common.ParseUUID(tutorialID, "tutorial ID")
	if err != nil {
		return nil, err
	}

	if _, err := s.tutorials.FindByID(ctx, tid); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByTutorial(ctx, tid)
	if err != nil {
		s.logger.Error("Failed to list comments", zap.String("tutorialID", tutorialID), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Failed to retrieve comments.")
	}

	byParent := make(map[uuid.UUID][]Response)
	var topLevel []Response
	for i := range comments {
		resp := comments[i].ToResponse()
		if comments[i].ParentID == nil {
			topLevel = append(topLevel, resp)
		} else {
			byParent[*comments[i].ParentID] = append(byParent[*comments[i].ParentID], resp)
		}
	}
	for i := range topLevel {
		topLevel[i].Replies = byParent[topLevel[i].ID]
	}
	if topLevel == nil {
		topLevel = []Response{}
	}
	return topLevel, nil
}

// Delete removes a comment and every comment beneath it in one transaction.
// Admin only. The walk is transitive so threads deeper than one level, if
// any predate the flattening rule, are still removed completely.
func (s *service) Delete(ctx context.Context, actor auth.Actor, commentID string) error {
	cid, err := common.ParseUUID(commentID, "comment ID")
	if err != nil {
		return err
	}

	c, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return err
	}

	if !s.guard.Can(actor, auth.ActionDeleteContent, c.AuthorID) {
		return common.ErrForbidden.WithDetails("Only admins can delete comments.")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		subtree := []uuid.UUID{cid}
		frontier := []uuid.UUID{cid}
		for len(frontier) > 0 {
			children, err := txRepo.FindChildIDs(ctx, frontier)
			if err != nil {
				return err
			}
			subtree = append(subtree, children...)
			frontier = children
		}

		return txRepo.DeleteByIDs(ctx, subtree)
	})
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete comment subtree", zap.String("commentID", commentID), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to delete comment.")
	}

	s.logger.Info("Comment subtree deleted",
		zap.String("commentID", commentID),
		zap.String("adminID", actor.ID.String()),
	)
	return nil
}
