package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/envutil"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := envutil.GetEnv("POSTGRES_NAME", "platewise", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Tenant{},
		&types.Location{},
		&types.User{},
		&types.Allergen{},
		&types.MenuItemCategory{},
		&types.Ingredient{},
		&types.Recipe{},
		&types.InventoryItem{},
		&types.Label{},
		&types.Subscription{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}
