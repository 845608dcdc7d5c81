// File: internal/product/service_integration_test.go
package product

import (
	"context"
	"fmt"
	"testing"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubOrderPurger struct {
	purged []uuid.UUID
}

func (s *stubOrderPurger) PurgeByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	s.purged = append(s.purged, productID)
	return nil
}

type testEnv struct {
	db        *gorm.DB
	products  Service
	purger    *stubOrderPurger
	notifRepo notification.Repository
	seller    *user.User
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(&user.User{}, &Product{}, &notification.Notification{}))

	guard := auth.NewGuard()
	logger := zap.NewNop()

	notifRepo := notification.NewGormRepository(db)
	notifSvc := notification.NewService(notifRepo, guard, logger)
	purger := &stubOrderPurger{}
	svc := NewService(db, NewGormRepository(db), user.NewGormRepository(db), purger, notifSvc, guard, logger)

	seller := &user.User{Name: "Selma Seller", Email: "selma@example.com", PasswordHash: "x", Role: user.RoleFacilitator}
	require.NoError(t, db.Create(seller).Error)

	return &testEnv{db: db, products: svc, purger: purger, notifRepo: notifRepo, seller: seller}
}

func (e *testEnv) sellerActor() auth.Actor {
	return auth.Actor{ID: e.seller.ID, Name: e.seller.Name, Role: string(e.seller.Role)}
}

func TestCreateProduct(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	resp, err := env.products.Create(ctx, env.sellerActor(), CreateRequest{
		Name:  "Watercolor Basics",
		Price: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, env.seller.ID, resp.SellerID)

	// Any authenticated user can list a product, not just facilitators.
	learner := &user.User{Name: "Liam Learner", Email: "liam@example.com", PasswordHash: "x", Role: user.RoleLearner}
	require.NoError(t, env.db.Create(learner).Error)
	learnerActor := auth.Actor{ID: learner.ID, Name: learner.Name, Role: string(learner.Role)}
	resp, err = env.products.Create(ctx, learnerActor, CreateRequest{Name: "Handmade Bookmarks", Price: 5})
	require.NoError(t, err)
	assert.Equal(t, learner.ID, resp.SellerID)
}

func TestDeleteProduct_AdminOnlyPurgesOrdersAndNotifiesSeller(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	created, err := env.products.Create(ctx, env.sellerActor(), CreateRequest{
		Name:  "Watercolor Basics",
		Price: 25,
	})
	require.NoError(t, err)

	// The seller cannot remove their own listing; that is an admin call.
	err = env.products.Delete(ctx, env.sellerActor(), created.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))

	admin := auth.Actor{ID: uuid.New(), Name: "Root", Role: "admin"}
	require.NoError(t, env.products.Delete(ctx, admin, created.ID.String()))

	require.Len(t, env.purger.purged, 1)
	assert.Equal(t, created.ID, env.purger.purged[0])

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.seller.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your product 'Watercolor Basics' was removed by an administrator.", notifications[0].Message)

	_, err = env.products.GetByID(ctx, created.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrNotFound))
}

func TestListProducts_Paginates(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.products.Create(ctx, env.sellerActor(), CreateRequest{
			Name:  fmt.Sprintf("Course %d", i),
			Price: 10,
		})
		require.NoError(t, err)
	}

	page, pagination, err := env.products.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.True(t, pagination.HasNext)
}
