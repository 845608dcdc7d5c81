// File: internal/notification/service_test.go
package notification

import (
	"context"
	"testing"
	"time"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) WithTx(tx *gorm.DB) Repository {
	return m
}

func (m *mockRepository) Create(ctx context.Context, n *Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockRepository) CreateBatch(ctx context.Context, ns []Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Notification, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	var ns []Notification
	if v, ok := args.Get(0).([]Notification); ok {
		ns = v
	}
	return ns, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) SetRead(ctx context.Context, id uuid.UUID, isRead bool) error {
	args := m.Called(ctx, id, isRead)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Tests ---

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewGuard(), zap.NewNop())
}

func TestMarkRead_IsIdempotent(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	owner := auth.Actor{ID: uuid.New(), Role: "learner"}
	n := &Notification{UserID: owner.ID, Message: "hello", IsRead: true}
	n.ID = uuid.New()

	repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

	// Already read: service must not touch the repository.
	err := svc.MarkRead(context.Background(), owner, n.ID.String())
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SetRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead_TransitionsUnread(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	owner := auth.Actor{ID: uuid.New(), Role: "learner"}
	n := &Notification{UserID: owner.ID, Message: "hello", IsRead: false}
	n.ID = uuid.New()

	repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)
	repo.On("SetRead", mock.Anything, n.ID, true).Return(nil)

	err := svc.MarkRead(context.Background(), owner, n.ID.String())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkUnread_IsIdempotent(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	owner := auth.Actor{ID: uuid.New(), Role: "learner"}
	n := &Notification{UserID: owner.ID, Message: "hello", IsRead: false}
	n.ID = uuid.New()

	repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

	err := svc.MarkUnread(context.Background(), owner, n.ID.String())
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SetRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestManage_ForbiddenForNonOwner(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	owner := uuid.New()
	n := &Notification{UserID: owner, Message: "hello"}
	n.ID = uuid.New()

	repo.On("FindByID", mock.Anything, n.ID).Return(n, nil)

	stranger := auth.Actor{ID: uuid.New(), Role: "learner"}
	err := svc.MarkRead(context.Background(), stranger, n.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))

	// Admins get no bypass on someone else's notifications.
	admin := auth.Actor{ID: uuid.New(), Role: "admin"}
	err = svc.Delete(context.Background(), admin, n.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestManage_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, common.ErrNotFound.WithDetails("Notification not found."))

	actor := auth.Actor{ID: uuid.New(), Role: "learner"}
	err := svc.MarkRead(context.Background(), actor, missing.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrNotFound))
}

func TestManage_InvalidID(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	actor := auth.Actor{ID: uuid.New(), Role: "learner"}
	err := svc.MarkRead(context.Background(), actor, "not-a-uuid")
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrBadRequest))
}

func TestUnreadCount(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	actor := auth.Actor{ID: uuid.New(), Role: "learner"}
	repo.On("CountUnread", mock.Anything, actor.ID).Return(int64(7), nil)

	count, err := svc.UnreadCount(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestPurgeOlderThan_UsesRetentionCutoff(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("DeleteOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-30 * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(3), nil)

	deleted, err := svc.PurgeOlderThan(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	repo.AssertExpectations(t)
}
