package services

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

//go:embed seed_data.yaml
var seedData []byte

type seedFile struct {
	Allergens []struct {
		Name        string `yaml:"name"`
		Severity    string `yaml:"severity"`
		Description string `yaml:"description"`
	} `yaml:"allergens"`
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
}

// defaultMenuCategories returns the starter category set copied into every new
// tenant. Sort order follows the file order.
func defaultMenuCategories() ([]types.MenuItemCategory, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedData, &file); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	out := make([]types.MenuItemCategory, 0, len(file.Categories))
	for i, entry := range file.Categories {
		out = append(out, types.MenuItemCategory{
			Name:        entry.Name,
			Description: entry.Description,
			SortOrder:   i,
		})
	}
	return out, nil
}

type SeedService interface {
	// SeedSystemData inserts the system allergen set, skipping names that
	// already exist. Safe to run on every startup.
	SeedSystemData(ctx context.Context) error
}

type seedService struct {
	db           *gorm.DB
	log          *logger.Logger
	allergenRepo repos.AllergenRepo
}

func NewSeedService(db *gorm.DB, baseLog *logger.Logger, allergenRepo repos.AllergenRepo) SeedService {
	return &seedService{
		db:           db,
		log:          baseLog.With("service", "seed"),
		allergenRepo: allergenRepo,
	}
}

func (s *seedService) SeedSystemData(ctx context.Context) error {
	var file seedFile
	if err := yaml.Unmarshal(seedData, &file); err != nil {
		return fmt.Errorf("parsing seed data: %w", err)
	}

	seeded := 0
	err := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		for _, entry := range file.Allergens {
			exists, eErr := s.allergenRepo.SystemNameExists(ctx, tx, entry.Name)
			if eErr != nil {
				return fmt.Errorf("checking allergen %q: %w", entry.Name, eErr)
			}
			if exists {
				continue
			}
			severity := entry.Severity
			if !types.ValidSeverity(severity) {
				severity = types.SeverityMedium
			}
			_, cErr := s.allergenRepo.Create(ctx, tx, &types.Allergen{
				Name:          entry.Name,
				Description:   entry.Description,
				Severity:      severity,
				IsSystemLevel: true,
			})
			if cErr != nil {
				return fmt.Errorf("seeding allergen %q: %w", entry.Name, cErr)
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if seeded > 0 {
		s.log.Info("seeded system allergens", "count", seeded)
	}
	return nil
}
