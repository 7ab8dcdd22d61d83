package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/rbac"
	rbacinfra "go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/statutory"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App memegang dependency bersama yang dipakai ketiga binary (api, worker,
// consumer). Koneksi Kafka writer hanya dibuka oleh worker.
type App struct {
	Config config.Config
	Logger *zap.Logger

	DB    *gorm.DB
	SQLDB *sql.DB
	Redis *redis.Client

	RBAC rbac.Service
}

func Build(cfg config.Config, logger *zap.Logger) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return nil, err
	}

	enforcer, err := rbacinfra.NewEnforcer(cfg.RBACModelPath, cfg.RBACPolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		RBAC:   rbac.NewService(enforcer),
	}, nil
}

// SeedRateTable memuat rate table dari file YAML untuk deployment baru.
// No-op bila file tidak dikonfigurasi atau company sudah punya rate table.
func (a *App) SeedRateTable(ctx context.Context) error {
	if a.Config.StatutoryRatesFile == "" || a.Config.DefaultCompanyID == "" {
		return nil
	}

	repo := statutory.NewRepository(a.DB)

	exists, err := repo.HasAny(ctx, a.Config.DefaultCompanyID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	table, err := statutory.LoadFile(a.Config.StatutoryRatesFile)
	if err != nil {
		return err
	}

	if err := repo.Create(ctx, a.Config.DefaultCompanyID, table); err != nil {
		return err
	}

	a.Logger.Info("statutory rate table seeded",
		zap.String("file", a.Config.StatutoryRatesFile),
		zap.String("company_id", a.Config.DefaultCompanyID),
		zap.Time("effective_from", table.EffectiveFrom),
	)
	return nil
}
