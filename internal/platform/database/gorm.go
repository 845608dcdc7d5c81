// File: internal/platform/database/gorm.go
package database

import (
	"fmt"
	"time"

	"skillmarket_backend/internal/comment"
	"skillmarket_backend/internal/config"
	"skillmarket_backend/internal/notification"
	"skillmarket_backend/internal/order"
	"skillmarket_backend/internal/product"
	"skillmarket_backend/internal/tutorial"
	"skillmarket_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGORM creates a new GORM database connection pool.
func NewGORM(cfg *config.Config, appLogger *zap.Logger) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.GinMode == "debug" {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("Database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)
	return db, nil
}

// Migrate runs GORM auto-migrations for all application models and creates
// the indexes AutoMigrate cannot express.
func Migrate(db *gorm.DB, appLogger *zap.Logger) error {
	appLogger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&user.User{},
		&product.Product{},
		&tutorial.Tutorial{},
		&order.Order{},
		&comment.Comment{},
		&notification.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// A buyer may hold at most one pending order per product. The partial
	// unique index makes the check race-safe at the database level.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_pending_unique
		ON orders (product_id, buyer_id) WHERE status = 'pending'`).Error
	if err != nil {
		return fmt.Errorf("failed to create pending-order unique index: %w", err)
	}

	appLogger.Info("Database migrations completed successfully")
	return nil
}
