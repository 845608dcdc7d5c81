//go:build wireinject
// +build wireinject

// File: cmd/server/wire.go
package main

import (
	"skillmarket_backend/internal/app"
	"skillmarket_backend/internal/auth"
	"skillmarket_backend/internal/comment"
	"skillmarket_backend/internal/config"
	"skillmarket_backend/internal/jobs"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/order"
	"skillmarket_backend/internal/product"
	"skillmarket_backend/internal/tutorial"
	"skillmarket_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitializeServer assembles the full application graph.
func InitializeServer(cfg *config.Config, logger *zap.Logger, db *gorm.DB) (*app.Server, error) {
	wire.Build(
		auth.NewJWTTokenService,
		auth.NewGuard,

		user.NewGormRepository,
		user.NewService,
		user.NewHandler,

		product.NewGormRepository,
		product.NewService,
		product.NewHandler,

		tutorial.NewGormRepository,
		tutorial.NewService,
		tutorial.NewHandler,

		order.NewGormRepository,
		order.NewService,
		order.NewHandler,

		comment.NewGormRepository,
		comment.NewService,
		comment.NewHandler,

		notification.NewGormRepository,
		notification.NewService,
		notification.NewHandler,

		provideOrderPurger,
		provideCommentPurger,

		jobs.NewNotificationCleanupJob,
		app.NewServer,
	)
	return nil, nil
}
