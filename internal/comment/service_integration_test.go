// File: internal/comment/service_integration_test.go
package comment

import (
	"context"
	"fmt"
	"testing"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/tutorial"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	comments  Service
	notifRepo notification.Repository
	poster    *user.User
	learner   *user.User
	other     *user.User
	tutorial  *tutorial.Tutorial
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&tutorial.Tutorial{},
		&Comment{},
		&notification.Notification{},
	))

	guard := auth.NewGuard()
	logger := zap.NewNop()

	notifRepo := notification.NewGormRepository(db)
	notifSvc := notification.NewService(notifRepo, guard, logger)
	commentRepo := NewGormRepository(db)
	tutorialRepo := tutorial.NewGormRepository(db)
	commentSvc := NewService(db, commentRepo, tutorialRepo, notifSvc, guard, logger)

	poster := &user.User{Name: "Fiona Facilitator", Email: "fiona@example.com", PasswordHash: "x", Role: user.RoleFacilitator}
	learner := &user.User{Name: "Liam Learner", Email: "liam@example.com", PasswordHash: "x", Role: user.RoleLearner}
	other := &user.User{Name: "Olive Other", Email: "olive@example.com", PasswordHash: "x", Role: user.RoleLearner}
	require.NoError(t, db.Create(poster).Error)
	require.NoError(t, db.Create(learner).Error)
	require.NoError(t, db.Create(other).Error)

	tut := &tutorial.Tutorial{
		AuthorID:    poster.ID,
		Title:       "Knife Sharpening",
		Slug:        "knife-sharpening",
		YoutubeLink: "https://youtube.com/watch?v=abc",
	}
	require.NoError(t, db.Create(tut).Error)

	return &testEnv{
		db:        db,
		comments:  commentSvc,
		notifRepo: notifRepo,
		poster:    poster,
		learner:   learner,
		other:     other,
		tutorial:  tut,
	}
}

func actorFor(u *user.User) auth.Actor {
	return auth.Actor{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

func TestAddComment_NotifiesTutorialAuthor(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	resp, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "Great walkthrough!"})
	require.NoError(t, err)
	assert.Nil(t, resp.ParentID)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.poster.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Liam Learner commented on your tutorial 'Knife Sharpening'.", notifications[0].Message)
	require.NotNil(t, notifications[0].CommentID)
	assert.Equal(t, resp.ID, *notifications[0].CommentID)
}

func TestAddComment_BlankContentRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "   \n\t"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestAddComment_OwnTutorialSkipsNotification(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.comments.AddComment(ctx, actorFor(env.poster), env.tutorial.ID.String(), CreateRequest{Content: "A correction to step 3."})
	require.NoError(t, err)

	count, err := env.notifRepo.CountUnread(ctx, env.poster.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAddReply_NotifiesCommentAuthor(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	top, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "Which stone grit?"})
	require.NoError(t, err)

	reply, err := env.comments.AddReply(ctx, actorFor(env.other), top.ID.String(), CreateRequest{Content: "1000 then 6000."})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.learner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Olive Other replied to your comment on tutorial posted by Fiona Facilitator.", notifications[0].Message)
	require.NotNil(t, notifications[0].CommentID)
	assert.Equal(t, reply.ID, *notifications[0].CommentID)
}

func TestAddReply_ToReplyFlattensToTopLevel(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	top, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "Which stone grit?"})
	require.NoError(t, err)
	reply, err := env.comments.AddReply(ctx, actorFor(env.other), top.ID.String(), CreateRequest{Content: "1000 then 6000."})
	require.NoError(t, err)

	// Replying to the reply attaches to the top-level comment, but the
	// notification goes to the reply's author.
	second, err := env.comments.AddReply(ctx, actorFor(env.learner), reply.ID.String(), CreateRequest{Content: "Thanks!"})
	require.NoError(t, err)
	require.NotNil(t, second.ParentID)
	assert.Equal(t, top.ID, *second.ParentID)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.other.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Liam Learner replied to your comment on tutorial posted by Fiona Facilitator.", notifications[0].Message)
}

func TestListByTutorial_NestsReplies(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	first, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "First!"})
	require.NoError(t, err)
	second, err := env.comments.AddComment(ctx, actorFor(env.other), env.tutorial.ID.String(), CreateRequest{Content: "Second."})
	require.NoError(t, err)
	_, err = env.comments.AddReply(ctx, actorFor(env.other), first.ID.String(), CreateRequest{Content: "A reply."})
	require.NoError(t, err)

	thread, err := env.comments.ListByTutorial(ctx, env.tutorial.ID.String())
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, first.ID, thread[0].ID)
	assert.Equal(t, second.ID, thread[1].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "A reply.", thread[0].Replies[0].Content)
	assert.Empty(t, thread[1].Replies)
}

func TestDelete_RemovesSubtreeAndItsNotifications(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	top, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "Which stone grit?"})
	require.NoError(t, err)
	_, err = env.comments.AddReply(ctx, actorFor(env.other), top.ID.String(), CreateRequest{Content: "1000 then 6000."})
	require.NoError(t, err)
	keep, err := env.comments.AddComment(ctx, actorFor(env.other), env.tutorial.ID.String(), CreateRequest{Content: "Unrelated."})
	require.NoError(t, err)

	admin := auth.Actor{ID: uuid.New(), Name: "Root", Role: "admin"}
	require.NoError(t, env.comments.Delete(ctx, admin, top.ID.String()))

	thread, err := env.comments.ListByTutorial(ctx, env.tutorial.ID.String())
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, keep.ID, thread[0].ID)

	// Notifications pointing into the deleted subtree are gone too; the one
	// for the surviving comment remains.
	var orphaned int64
	require.NoError(t, env.db.Model(&notification.Notification{}).
		Where("comment_id IS NOT NULL AND comment_id NOT IN (?)",
			env.db.Model(&Comment{}).Select("id")).
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestDelete_ForbiddenForNonAdmin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	top, err := env.comments.AddComment(ctx, actorFor(env.learner), env.tutorial.ID.String(), CreateRequest{Content: "Mine."})
	require.NoError(t, err)

	// Not even the comment's own author may delete it.
	err = env.comments.Delete(ctx, actorFor(env.learner), top.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))
}

func TestAddComment_UnknownTutorial(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.comments.AddComment(context.Background(), actorFor(env.learner), uuid.NewString(), CreateRequest{Content: "Hello?"})
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrNotFound))
}
