// File: internal/order/service_integration_test.go
package order

import (
	"context"
	"fmt"
	"testing"

	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/product"
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
	db            *gorm.DB
	orders        Service
	notifications notification.Service
	notifRepo     notification.Repository
	seller        *user.User
	buyer         *user.User
	product       *product.Product
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
		&product.Product{},
		&Order{},
		&notification.Notification{},
	))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_pending_unique
		ON orders (product_id, buyer_id) WHERE status = 'pending'`).Error)

	guard := auth.NewGuard()
	logger := zap.NewNop()

	notifRepo := notification.NewGormRepository(db)
	notifSvc := notification.NewService(notifRepo, guard, logger)
	orderRepo := NewGormRepository(db)
	productRepo := product.NewGormRepository(db)
	orderSvc := NewService(db, orderRepo, productRepo, notifSvc, guard, logger)

	seller := &user.User{Name: "Selma Seller", Email: "selma@example.com", PasswordHash: "x", Role: user.RoleFacilitator}
	buyer := &user.User{Name: "Bella Buyer", Email: "bella@example.com", PasswordHash: "x", Role: user.RoleLearner}
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(buyer).Error)

	p := &product.Product{SellerID: seller.ID, Name: "Watercolor Basics", Price: 25}
	require.NoError(t, db.Create(p).Error)

	return &testEnv{
		db:            db,
		orders:        orderSvc,
		notifications: notifSvc,
		notifRepo:     notifRepo,
		seller:        seller,
		buyer:         buyer,
		product:       p,
	}
}

func (e *testEnv) sellerActor() auth.Actor {
	return auth.Actor{ID: e.seller.ID, Name: e.seller.Name, Role: string(e.seller.Role)}
}

func (e *testEnv) buyerActor() auth.Actor {
	return auth.Actor{ID: e.buyer.ID, Name: e.buyer.Name, Role: string(e.buyer.Role)}
}

func TestPlaceOrder_CreatesPendingOrderAndNotifiesSeller(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	resp, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, env.buyer.ID, resp.BuyerID)

	count, err := env.notifRepo.CountUnread(ctx, env.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.seller.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Bella Buyer placed an order for your product 'Watercolor Basics'.", notifications[0].Message)
	require.NotNil(t, notifications[0].OrderID)
	assert.Equal(t, resp.ID, *notifications[0].OrderID)
}

func TestPlaceOrder_DuplicatePendingRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)

	_, err = env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrConflict))

	// Only the first order's notification exists.
	count, err := env.notifRepo.CountUnread(ctx, env.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrder_AllowedAgainAfterDecision(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	first, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)

	_, err = env.orders.Reject(ctx, env.sellerActor(), first.ID.String())
	require.NoError(t, err)

	// The pending slot is free again once the first order is decided.
	_, err = env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)
}

func TestPlaceOrder_OwnProductRejected(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.orders.Place(context.Background(), env.sellerActor(), env.product.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrConflict))
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.orders.Place(context.Background(), env.buyerActor(), "3f9c1e9e-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrNotFound))
}

func TestAcceptOrder_NotifiesBuyerOnce(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	placed, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)

	accepted, err := env.orders.Accept(ctx, env.sellerActor(), placed.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.buyer.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your order for 'Watercolor Basics' has been accepted!", notifications[0].Message)

	// A decided order is final: accepting or rejecting again conflicts and
	// produces no further notifications.
	_, err = env.orders.Accept(ctx, env.sellerActor(), placed.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrConflict))

	_, err = env.orders.Reject(ctx, env.sellerActor(), placed.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrConflict))

	count, err := env.notifRepo.CountUnread(ctx, env.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRejectOrder_NotifiesBuyer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	placed, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)

	rejected, err := env.orders.Reject(ctx, env.sellerActor(), placed.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	notifications, _, err := env.notifRepo.ListByUser(ctx, env.buyer.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your order for 'Watercolor Basics' has been rejected!", notifications[0].Message)
}

func TestDecideOrder_OnlySellerMay(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	placed, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)

	// Neither the buyer nor an admin may decide the seller's order.
	_, err = env.orders.Accept(ctx, env.buyerActor(), placed.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))

	admin := auth.Actor{ID: uuid.New(), Name: "Root", Role: "admin"}
	_, err = env.orders.Reject(ctx, admin, placed.ID.String())
	require.Error(t, err)
	assert.True(t, common.IsErr(err, common.ErrForbidden))

	// The order is still pending for the real seller.
	_, err = env.orders.Accept(ctx, env.sellerActor(), placed.ID.String())
	require.NoError(t, err)
}

func TestListSellerOrders(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	second := &product.Product{SellerID: env.seller.ID, Name: "Oil Painting 101", Price: 40}
	require.NoError(t, env.db.Create(second).Error)

	_, err := env.orders.Place(ctx, env.buyerActor(), env.product.ID.String())
	require.NoError(t, err)
	_, err = env.orders.Place(ctx, env.buyerActor(), second.ID.String())
	require.NoError(t, err)

	orders, pagination, err := env.orders.ListSellerOrders(ctx, env.sellerActor(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(2), pagination.TotalItems)

	// The buyer sells nothing, so their seller view is empty.
	orders, _, err = env.orders.ListSellerOrders(ctx, env.buyerActor(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
